package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	qrcode "github.com/skip2/go-qrcode"

	"quote-run-service/internal/app"
	"quote-run-service/internal/domain"
)

// API exposes the run over plain HTTP. Each request reopens the player's
// session, which resumes from the persisted store.
type API struct {
	service *app.GameService
}

func NewAPI(service *app.GameService) *API {
	return &API{service: service}
}

// Routes mounts the API under /api.
func (a *API) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
		r.Route("/players/{playerID}", func(r chi.Router) {
			r.Get("/today", a.today)
			r.Post("/hints/{slot}", a.hint)
			r.Post("/answers", a.answer)
			r.Get("/share", a.share)
			r.Get("/share.png", a.shareQR)
			r.Get("/yesterday", a.yesterday)
		})
	})
}

type answerRequest struct {
	Text string `json:"text"`
}

func (a *API) today(w http.ResponseWriter, r *http.Request) {
	session, ok := a.open(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

func (a *API) hint(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, domain.ErrInvalidHintSlot)
		return
	}
	session, ok := a.open(w, r)
	if !ok {
		return
	}
	res, err := session.RevealHint(r.Context(), slot)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid answer payload", http.StatusBadRequest)
		return
	}
	session, ok := a.open(w, r)
	if !ok {
		return
	}
	res, err := session.SubmitAnswer(r.Context(), req.Text)
	if errors.Is(err, domain.ErrEmptyAnswer) {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) share(w http.ResponseWriter, r *http.Request) {
	session, ok := a.open(w, r)
	if !ok {
		return
	}
	text, err := session.ShareText()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func (a *API) shareQR(w http.ResponseWriter, r *http.Request) {
	session, ok := a.open(w, r)
	if !ok {
		return
	}
	text, err := session.ShareText()
	if err != nil {
		writeError(w, err)
		return
	}
	png, err := qrcode.Encode(text, qrcode.Medium, 256)
	if err != nil {
		log.Printf("qr encode failed: %v", err)
		http.Error(w, "could not render share image", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (a *API) yesterday(w http.ResponseWriter, r *http.Request) {
	session, ok := a.open(w, r)
	if !ok {
		return
	}
	items := session.Yesterday()
	if items == nil {
		items = []domain.YesterdayItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) open(w http.ResponseWriter, r *http.Request) (*app.Session, bool) {
	session, err := a.service.Open(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		log.Printf("open session failed: %v", err)
		http.Error(w, "could not load quotes", http.StatusServiceUnavailable)
		return nil, false
	}
	return session, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidHintSlot):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRunCompleted), errors.Is(err, domain.ErrRunInProgress), errors.Is(err, domain.ErrNoActiveQuote):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorPayload{Message: err.Error()})
}
