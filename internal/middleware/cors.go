package middleware

import (
	"net/http"
	"strings"
)

type CORS struct {
	origins map[string]bool
	any     bool
}

// NewCORS builds an allow-list. A "*" entry allows every origin.
func NewCORS(allowedOrigins []string) *CORS {
	c := &CORS{origins: make(map[string]bool, len(allowedOrigins))}
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			c.any = true
			continue
		}
		if o != "" {
			c.origins[o] = true
		}
	}
	return c
}

func (c *CORS) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	return c.any || c.origins[strings.TrimRight(origin, "/")]
}

// Handler sets CORS headers for allowed origins only and answers preflight
// requests without reaching the router.
func (c *CORS) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if c.Allowed(origin) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			h.Set("Access-Control-Expose-Headers", "X-Request-ID")
			h.Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
