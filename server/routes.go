package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, s.IndexHandler())
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// OAuth login initiation
	s.RegisterRouteHandler("GET "+RouteAuthAuthorize, ChainMiddleware(s.AuthorizeHandler(), s.APIMiddleware()...))
}
