// Package httpapi is the REST boundary of the server: routing, the
// authentication middleware, JSON request/response shapes and the mapping
// of service errors to HTTP status codes.
package httpapi
