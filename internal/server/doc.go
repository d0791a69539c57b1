// Package server runs the development backend's HTTP server, including
// signal handling and graceful shutdown.
package server
