// Package client talks to the expense tracker REST API.
//
// HTTPClient keeps the bearer token returned by Register/Login and attaches
// it to every call under /api. Transport failures surface as ErrUnavailable,
// 401/403 answers as an *APIError that matches ErrUnauthorized, and any other
// non-2xx answer as an *APIError carrying the server's message.
package client
