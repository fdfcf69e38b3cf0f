package middleware

import "net/http"

// Chain wraps h so the first middleware sees the request first. The API is
// assembled as
//
//	Chain(mux, WithRequestID, RequestLogging, Recover, CORS(origins))
//
// which puts the request id in place before anything logs, and lets Recover
// answer a panic before CORS headers are lost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
