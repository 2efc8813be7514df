package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex  = "/"
	RouteHealth = "/api/health"

	// OAuth Routes
	RouteAuthAuthorize = "/api/auth/authorize"
)
