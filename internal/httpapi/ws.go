package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cooltech/alex/internal/protocol"
)

// handleChatWS runs a chat conversation over one websocket connection.
// Replies are written by a single goroutine; the read loop feeds it through
// the outbound channel so writes never interleave.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	outbound := make(chan any, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-outbound:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteJSON(msg); err != nil {
					cancel()
					return
				}
				if t, ok := messageTypeOf(msg); ok {
					s.metrics.WSMessages.WithLabelValues("outbound", string(t)).Inc()
				}
			}
		}
	}()

	conn.SetReadLimit(64 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))

		parsed, err := protocol.ParseClientMessage(data)
		if err != nil {
			s.sendWS(ctx, outbound, protocol.ErrorEvent{
				Type:   protocol.TypeErrorEvent,
				Code:   "invalid_client_message",
				Detail: err.Error(),
			})
			continue
		}
		if t, ok := messageTypeOf(parsed); ok {
			s.metrics.WSMessages.WithLabelValues("inbound", string(t)).Inc()
		}

		switch msg := parsed.(type) {
		case protocol.UserMessage:
			reply, sess, err := s.assistant.SendMessage(ctx, msg.SessionID, msg.Message)
			if err != nil {
				s.sendWS(ctx, outbound, protocol.ErrorEvent{
					Type:   protocol.TypeErrorEvent,
					Code:   "chat_failed",
					Detail: err.Error(),
				})
				continue
			}
			s.sendWS(ctx, outbound, protocol.AssistantReply{
				Type:         protocol.TypeAssistantReply,
				SessionID:    sess.ID,
				Response:     reply.Text,
				Outcome:      reply.OutcomeLabel(),
				MessageCount: sess.TurnCount,
			})
		case protocol.ClientControl:
			s.handleWSControl(ctx, outbound, msg)
		}
	}

	cancel()
	close(outbound)
	<-writerDone
}

func (s *Server) handleWSControl(ctx context.Context, outbound chan<- any, msg protocol.ClientControl) {
	switch msg.Action {
	case "clear":
		if err := s.assistant.ClearSession(ctx, msg.SessionID); err != nil {
			s.sendWS(ctx, outbound, protocol.ErrorEvent{
				Type:   protocol.TypeErrorEvent,
				Code:   "session_not_found",
				Detail: err.Error(),
			})
			return
		}
		s.sendWS(ctx, outbound, protocol.SessionState{
			Type:      protocol.TypeSessionState,
			SessionID: msg.SessionID,
			Detail:    "cleared",
		})
	default:
		s.sendWS(ctx, outbound, protocol.ErrorEvent{
			Type:   protocol.TypeErrorEvent,
			Code:   "unsupported_action",
			Detail: "unknown control action: " + msg.Action,
		})
	}
}

func (s *Server) sendWS(ctx context.Context, outbound chan<- any, msg any) {
	select {
	case <-ctx.Done():
	case outbound <- msg:
	}
}

func messageTypeOf(v any) (protocol.MessageType, bool) {
	switch m := v.(type) {
	case protocol.UserMessage:
		return m.Type, true
	case protocol.ClientControl:
		return m.Type, true
	case protocol.AssistantReply:
		return m.Type, true
	case protocol.SessionState:
		return m.Type, true
	case protocol.ErrorEvent:
		return m.Type, true
	default:
		return "", false
	}
}
