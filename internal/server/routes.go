package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// JSON-RPC endpoint
	mux.Handle("/mcp", s.app.MCPHandler)

	// Flat adapter routes for legacy clients
	mux.HandleFunc("/tools", s.app.LegacyHandler.ListTools)
	mux.HandleFunc("/resources", s.app.LegacyHandler.ListResources)
	mux.HandleFunc("/info", s.app.LegacyHandler.Info)
	mux.HandleFunc("/execute", s.app.LegacyHandler.Execute)

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
