package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"quote-run-service/internal/app"
)

// NewRouter mounts health, websocket play and the REST API.
func NewRouter(service *app.GameService, nextQuoteDelay time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", NewWSHandler(service, nextQuoteDelay).ServeWS)
	NewAPI(service).Routes(r)
	return r
}
