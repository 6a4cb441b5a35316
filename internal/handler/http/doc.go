// Package http implements the HTTP transport of the admin panel.
//
// Handlers here are thin translators: they decode the request, call a single
// [service.AuthService] operation and map the result or the service error
// kind to a response. Request tracing, access logging, CORS, the request
// deadline and bearer authentication are applied as chi middleware.
package http
