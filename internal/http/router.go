package httpserver

import "net/http"

// Routes defines HTTP endpoints. Nil entries are simply not mounted.
type Routes struct {
	Upload   http.Handler
	Readings http.Handler
	Summary  http.Handler
	Export   http.Handler
	Uploads  http.Handler
	Reset    http.Handler
	Live     http.Handler
	Health   http.Handler

	// Auth guards the mutating endpoints (upload, reset) when set.
	Auth func(http.Handler) http.Handler
}

// NewRouter sets up HTTP routing.
func NewRouter(routes Routes) http.Handler {
	guard := routes.Auth
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}

	mux := http.NewServeMux()
	if routes.Upload != nil {
		mux.Handle("/api/v1/readings/upload", method(http.MethodPost, guard(routes.Upload).ServeHTTP))
	}
	if routes.Readings != nil {
		mux.Handle("/api/v1/readings", method(http.MethodGet, routes.Readings.ServeHTTP))
	}
	if routes.Summary != nil {
		mux.Handle("/api/v1/readings/summary", method(http.MethodGet, routes.Summary.ServeHTTP))
	}
	if routes.Export != nil {
		mux.Handle("/api/v1/readings/export", method(http.MethodGet, routes.Export.ServeHTTP))
	}
	if routes.Uploads != nil {
		mux.Handle("/api/v1/uploads", method(http.MethodGet, routes.Uploads.ServeHTTP))
	}
	if routes.Reset != nil {
		mux.Handle("/api/v1/readings/reset", method(http.MethodPost, guard(routes.Reset).ServeHTTP))
	}
	if routes.Live != nil {
		mux.Handle("/api/v1/live", method(http.MethodGet, routes.Live.ServeHTTP))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health.ServeHTTP))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
