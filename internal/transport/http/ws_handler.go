package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quote-run-service/internal/app"
	"quote-run-service/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	delay    time.Duration
	upgrader websocket.Upgrader
}

// NewWSHandler wires the play channel. delay separates an answer result from
// the next quote.
func NewWSHandler(service *app.GameService, delay time.Duration) *WSHandler {
	return &WSHandler{
		service: service,
		delay:   delay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type hintPayload struct {
	Slot int `json:"slot"`
}

type answerPayload struct {
	Text string `json:"text"`
}

type joinedPayload struct {
	PlayerID string `json:"playerId"`
	RunID    int    `json:"runId"`
	DayKey   string `json:"dayKey"`
}

type sharePayload struct {
	Text string `json:"text"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and plays today's run for the player.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		playerID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := h.service.Open(r.Context(), playerID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "joined", Payload: joinedPayload{
		PlayerID: session.PlayerID(),
		RunID:    session.RunID(),
		DayKey:   session.DayKey(),
	}}
	send <- outboundMessage[any]{Type: "state", Payload: session.View()}
	send <- outboundMessage[any]{Type: "yesterday", Payload: session.Yesterday()}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "hint":
			var payload hintPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid hint payload")
				continue
			}
			res, err := session.RevealHint(r.Context(), payload.Slot)
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "hint", Payload: res}
			send <- outboundMessage[any]{Type: "state", Payload: session.View()}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("invalid answer payload")
				continue
			}
			res, err := session.SubmitAnswer(r.Context(), payload.Text)
			if errors.Is(err, domain.ErrEmptyAnswer) {
				send <- outboundMessage[any]{Type: "answerResult", Payload: res}
				continue
			}
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: res}
			if !res.Completed && h.delay > 0 {
				time.Sleep(h.delay)
			}
			send <- outboundMessage[any]{Type: "state", Payload: session.View()}
		case "share":
			text, err := session.ShareText()
			if err != nil {
				send <- errorMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "share", Payload: sharePayload{Text: text}}
		default:
			send <- errorMessage("unsupported message type")
		}
	}

	close(send)
	<-writerDone
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
