package server

// Server is the lifecycle of the development backend.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT arrives and then
	// shuts down gracefully. It blocks until the listener is closed.
	RunServer()

	// Shutdown stops accepting requests and waits up to five seconds for
	// in-flight ones.
	Shutdown()
}
