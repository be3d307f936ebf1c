// Package app wires the application together: configuration, the
// structured logger, the correction service, metrics, the chi router
// with its middleware chain, and the HTTP server lifecycle.
package app
