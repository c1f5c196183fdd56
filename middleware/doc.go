/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms)
through the global zerolog logger.

# Metrics

WithMetrics records a Prometheus counter and duration histogram per route
pattern:

	mux.HandleFunc("POST /search/application-code",
		middleware.WithMetrics(m, "/search/application-code", handler))

# Admin Key

Mutating endpoints (refresh, clear, policy scrape) are guarded by
RequireAdminKey, which checks the X-Admin-Key header against the configured
secret in constant time:

	mux.HandleFunc("POST /data/clear",
		middleware.RequireAdminKey(cfg.AdminKey, handler))

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CodeSearchRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
