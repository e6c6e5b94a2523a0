package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/terra-clan/interview-assistant/internal/session"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ClientMessage is sent by the browser over the event stream
type ClientMessage struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := s.interview.Subscribe()
	defer unsubscribe()

	state := s.interview.State()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(session.Event{Type: session.EventState, State: &state}); err != nil {
		s.logger.Debug("websocket write error", "error", err)
		return
	}

	s.logger.Info("event stream connected", "remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	// Controller events -> WebSocket
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					s.logger.Debug("websocket write error", "error", err)
					return
				}
			}
		}
	}()

	// WebSocket -> controller
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug("websocket read error", "error", err)
				}
				return
			}

			var msg ClientMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				s.logger.Debug("invalid message format", "error", err)
				continue
			}

			switch msg.Type {
			case "draft":
				if _, err := s.interview.SetDraft(msg.Data); err != nil {
					s.logger.Debug("draft update rejected", "error", err)
				}
			case "ping":
			default:
				s.logger.Debug("unknown message type", "type", msg.Type)
			}
		}
	}()

	<-ctx.Done()
	// Unblocks the reader when the event side finished first
	conn.Close()
	wg.Wait()

	s.logger.Info("event stream disconnected", "remote_addr", r.RemoteAddr)
}
