package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"geoquiz-service/internal/app"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/logging"
)

// WSOptions tunes per-connection quiz behavior.
type WSOptions struct {
	// TimeLimit arms a server-side timer per question; zero leaves time-outs to the client.
	TimeLimit    time.Duration
	DefaultCount int
	Observer     app.Observer
}

// WSHandler serves one quiz per WebSocket connection.
type WSHandler struct {
	questions app.QuestionSource
	history   app.HistoryStore
	opts      WSOptions
	upgrader  websocket.Upgrader
}

func NewWSHandler(questions app.QuestionSource, history app.HistoryStore, opts WSOptions) *WSHandler {
	if opts.DefaultCount <= 0 {
		opts.DefaultCount = 10
	}
	return &WSHandler{
		questions: questions,
		history:   history,
		opts:      opts,
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
	Category string `json:"category"`
	Format   string `json:"format"`
	Count    int    `json:"count"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and gives each connection its own QuizService.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug().Err(err).Msg("ws write error")
				cancel()
				return
			}
		}
	}()

	timer := &questionTimer{limit: h.opts.TimeLimit}
	defer timer.disarm()
	presenter := &wsPresenter{ctx: ctx, send: send, timer: timer}
	service := app.NewQuizService(h.questions, h.history, presenter, app.WithObserver(h.opts.Observer))

	actions := make(chan func(), 16)
	go func() {
		defer cancel()
		for {
			var inbound inboundMessage
			if err := conn.ReadJSON(&inbound); err != nil {
				return
			}
			action := h.dispatch(ctx, service, presenter, inbound)
			select {
			case actions <- action:
			case <-ctx.Done():
				return
			}
		}
	}()

	// All QuizService calls happen on this goroutine.
	for done := false; !done; {
		select {
		case action := <-actions:
			action()
		case <-timer.C():
			timer.disarm()
			service.TimeExpired(ctx)
		case <-ctx.Done():
			done = true
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(ctx context.Context, service *app.QuizService, presenter *wsPresenter, inbound inboundMessage) func() {
	switch inbound.Type {
	case "start":
		var payload startPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return presenter.errorAction("invalid start payload")
		}
		category, err := domain.ParseCategory(payload.Category)
		if err != nil {
			return presenter.errorAction(err.Error())
		}
		format, err := domain.ParseAnswerFormat(payload.Format)
		if err != nil {
			return presenter.errorAction(err.Error())
		}
		count := payload.Count
		if count == 0 {
			count = h.opts.DefaultCount
		}
		return func() {
			if err := service.StartQuiz(ctx, category, format, count); err != nil {
				presenter.OnError(err)
			}
		}
	case "answer":
		// A missing payload is an empty answer.
		var payload answerPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				return presenter.errorAction("invalid answer payload")
			}
		}
		return func() { service.SubmitAnswer(ctx, payload.Answer) }
	case "next":
		return func() {
			if err := service.NextQuestion(ctx); err != nil {
				presenter.OnError(err)
			}
		}
	case "timeout":
		return func() { service.TimeExpired(ctx) }
	case "history":
		return func() {
			if err := service.LoadQuizHistory(ctx); err != nil {
				presenter.OnError(err)
			}
		}
	default:
		return presenter.errorAction("unsupported message type")
	}
}

// wsPresenter turns quiz events into outbound messages and drives the question timer.
type wsPresenter struct {
	ctx   context.Context
	send  chan<- outboundMessage[any]
	timer *questionTimer
}

func (p *wsPresenter) OnStart(e domain.StartEvent) {
	e.Options = orEmpty(e.Options)
	p.emit("start", e)
	p.timer.arm()
}

func (p *wsPresenter) OnQuestion(e domain.QuestionEvent) {
	e.Options = orEmpty(e.Options)
	p.emit("question", e)
	p.timer.arm()
}

func (p *wsPresenter) OnFeedback(e domain.FeedbackEvent) {
	p.timer.disarm()
	p.emit("feedback", e)
}

func (p *wsPresenter) OnEnd(e domain.EndEvent) {
	p.timer.disarm()
	p.emit("end", e)
}

func (p *wsPresenter) OnHistory(entries []domain.HistoryEntry) {
	p.emit("history", entries)
}

func (p *wsPresenter) OnError(err error) {
	p.emit("error", errorPayload{Message: err.Error()})
}

func (p *wsPresenter) errorAction(message string) func() {
	return func() { p.emit("error", errorPayload{Message: message}) }
}

func (p *wsPresenter) emit(kind string, payload any) {
	select {
	case p.send <- outboundMessage[any]{Type: kind, Payload: payload}:
	case <-p.ctx.Done():
	}
}

// questionTimer is only touched from the connection's action loop.
type questionTimer struct {
	limit time.Duration
	timer *time.Timer
}

func (t *questionTimer) arm() {
	if t.limit <= 0 {
		return
	}
	t.disarm()
	t.timer = time.NewTimer(t.limit)
}

func (t *questionTimer) disarm() {
	if t.timer == nil {
		return
	}
	t.timer.Stop()
	t.timer = nil
}

// C returns the expiry channel, or nil (blocks forever) when disarmed.
func (t *questionTimer) C() <-chan time.Time {
	if t.timer == nil {
		return nil
	}
	return t.timer.C
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
