package server

// Server is the lifecycle contract of the admin panel's transport.
type Server interface {
	// RunServer serves requests until SIGTERM, SIGINT or SIGQUIT arrives,
	// then shuts down gracefully.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
