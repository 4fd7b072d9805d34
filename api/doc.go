// Package api provides the HTTP API layer for RSS Finder.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: discovery and health handlers
// - middleware/: request logging and per-IP rate limiting
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - JSON spec available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma validates query parameters and bodies from struct tags:
//
//	type DiscoverSiteInput struct {
//	    URL        string `query:"url" required:"true"`
//	    MaxResults int    `query:"maxResults" minimum:"0"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Rate limiting per IP address
// - CORS handling
//
// # Usage Example
//
//	limiter := middleware.NewRateLimiter(60, time.Minute)
//	defer limiter.Stop()
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:      logger,
//	    RateLimiter: limiter,
//	    Metrics:     m.Handler(),
//	})
//
//	handlers.RegisterHealth(humaAPI)
//	handlers.NewDiscoverHandler(service, defaults, 20, logger).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 422,
//	    "title": "Unprocessable Entity",
//	    "detail": "parse http://example.com/ failed: ..."
//	}
//
// Domain errors are mapped to HTTP status codes in handlers/errors.go.
package api
