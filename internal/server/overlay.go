package server

import (
	"net/http"

	"lol-overlay/internal/config"
	"lol-overlay/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// OverlayServer serves the overlay directory (the overlay page and
// stats.json) to the streaming software. Responses are never cached so
// the browser source re-reads the freshly written snapshot each poll.
type OverlayServer struct {
	handler http.Handler
}

func NewOverlayServer(cfg *config.Config, logger zerolog.Logger) *OverlayServer {
	files := http.FileServer(http.Dir(cfg.OverlayDir))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", noStore(files))

	requestID := middleware.RequestID(logger)

	return &OverlayServer{handler: requestID(c.Handler(mux))}
}

func (s *OverlayServer) Handler() http.Handler {
	return s.handler
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		next.ServeHTTP(w, r)
	})
}
