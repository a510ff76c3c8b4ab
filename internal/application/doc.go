// Package application wires the create_env preview service: handler, router
// with its middleware, and the HTTP server, keeping the main package focused
// on CLI parsing and shutdown.
package application
