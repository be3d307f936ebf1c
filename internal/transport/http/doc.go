// Package http contains the HTTP transport layer: chi handlers for
// correction runs, snapshot listings and downloads, and health checks.
// Errors cross the wire as RFC 7807 problem details.
package http
