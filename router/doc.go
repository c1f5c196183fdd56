/*
Package router wires HTTP routes to their handlers.

NewRouter builds a ServeMux using Go 1.22 method routing. Every route runs
through request logging and per-pattern Prometheus metrics; mutating routes
(refresh, clear, policy scrape) additionally require the X-Admin-Key header.

	mux := router.NewRouter(deps, cfg)
	server := http.Server{Handler: middleware.CORS(mux)}

/metrics serves the Prometheus registry via promhttp.
*/
package router
