package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quizzler/internal/app"
	"quizzler/internal/domain"
	"quizzler/internal/present"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	sessions app.SessionRepository
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, sessions app.SessionRepository) *WSHandler {
	return &WSHandler{
		service:  service,
		sessions: sessions,
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

type startPayload struct {
	CategoryID string `json:"categoryId"`
}

type answerPayload struct {
	Choice string `json:"choice"`
}

type sessionPayload struct {
	SessionID string `json:"sessionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and gives each connection its
// own quiz engine. Messages are handled one at a time by the read loop, which
// is the engine's only caller.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	engine := h.sessions.Create(sessionID)
	defer h.sessions.Delete(sessionID)

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// keep draining so the read loop never blocks on a dead writer
				for range send {
				}
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{SessionID: sessionID}}
	h.sendCategories(r, send)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.sessions.Touch(sessionID)

		switch inbound.Type {
		case "categories":
			h.sendCategories(r, send)
		case "start":
			var payload startPayload
			if len(inbound.Payload) > 0 {
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					send <- errorMessage("bad_request", "invalid start payload")
					continue
				}
			}
			if err := h.service.Start(r.Context(), engine, payload.CategoryID); err != nil {
				send <- errorFrom(err)
				continue
			}
			h.sendQuestion(engine, send)
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage("bad_request", "invalid answer payload")
				continue
			}
			outcome, err := engine.SubmitAnswer(payload.Choice)
			if err != nil {
				send <- errorFrom(err)
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: present.Feedback(outcome, engine.Snapshot().Score)}
		case "next":
			outcome, err := engine.Advance()
			if err != nil {
				send <- errorFrom(err)
				continue
			}
			if outcome.Completed() {
				send <- outboundMessage[any]{Type: "completed", Payload: present.Result(outcome)}
				continue
			}
			h.sendQuestion(engine, send)
		case "reset":
			engine.Reset()
			send <- outboundMessage[any]{Type: "reset", Payload: engine.Snapshot()}
		default:
			send <- errorMessage("bad_request", "unsupported message type")
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) sendCategories(r *http.Request, send chan<- outboundMessage[any]) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		send <- errorFrom(err)
		return
	}
	send <- outboundMessage[any]{Type: "categories", Payload: categories}
}

func (h *WSHandler) sendQuestion(engine *app.Engine, send chan<- outboundMessage[any]) {
	view, err := present.Question(engine)
	if err != nil {
		send <- errorFrom(err)
		return
	}
	send <- outboundMessage[any]{Type: "question", Payload: view}
}

func errorMessage(code, message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Code: code, Message: message}}
}

func errorFrom(err error) outboundMessage[any] {
	return errorMessage(errorCode(err), err.Error())
}

// errorCode maps the error taxonomy onto stable protocol codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuestionSet):
		return "empty_question_set"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrNetworkFailure):
		return "network_failure"
	case errors.Is(err, domain.ErrBadStatus):
		return "bad_status"
	case errors.Is(err, domain.ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, domain.ErrNoQuestionsAvailable):
		return "no_questions_available"
	default:
		return "internal"
	}
}
