package middleware

import "net/http"

// securityHeaders applied to every response. connect-src allows ws/wss
// so the dashboard can open its live feed.
var securityHeaders = map[string]string{
	"X-XSS-Protection":          "1; mode=block",
	"X-Frame-Options":           "DENY",
	"X-Content-Type-Options":    "nosniff",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Content-Security-Policy":   "default-src 'self'; connect-src 'self' ws: wss:",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
}

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, value := range securityHeaders {
			w.Header().Set(name, value)
		}
		next.ServeHTTP(w, r)
	})
}
