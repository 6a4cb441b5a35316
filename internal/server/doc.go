// Package server runs the admin panel's HTTP listener, including startup,
// signal handling and graceful shutdown.
package server
