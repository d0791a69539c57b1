// Package http implements the HTTP transport of the development backend.
//
// It serves the sessions list, accepts posted messages and upgrades /ws to a
// WebSocket over which AI replies are pushed. Request tracing and access
// logging are handled here before requests reach the service layer.
package http
