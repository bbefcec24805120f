package chat

import (
	"context"
	"encoding/json"
	"time"

	"landeed-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Socket handles the realtime chat channel. Connection lifecycle:
// Disconnected -> Connected (no identity) -> Joined (identity = email).
type Socket struct {
	Hub     *Hub
	Service *Service
}

// inbound is the envelope for client events.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Upgrade gates the websocket route; non-upgrade requests get 426.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle runs one connection's read loop until disconnect.
func (s *Socket) Handle(conn *websocket.Conn) {
	client := NewClient(conn)
	go client.WritePump()

	joined := ""
	defer func() {
		if joined != "" {
			s.Hub.Leave(joined, client)
		}
		client.Close()
		_ = conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			client.Emit("error", fiber.Map{"message": "Invalid event payload"})
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		switch msg.Event {
		case "join":
			joined = s.handleJoin(client, joined, msg.Data)
		case "send_message":
			s.handleSend(ctx, client, msg.Data)
		case "mark_delivered":
			s.handleAdvance(ctx, client, msg.Data, models.MessageDelivered, "message_delivered")
		case "mark_read":
			s.handleAdvance(ctx, client, msg.Data, models.MessageRead, "message_read")
		default:
			client.Emit("error", fiber.Map{"message": "Unknown event: " + msg.Event})
		}
		cancel()
	}
}

func (s *Socket) handleJoin(client *Client, joined string, data json.RawMessage) string {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Email == "" {
		client.Emit("error", fiber.Map{"message": "Email is required to join"})
		return joined
	}
	// Re-joining under a new identity moves the connection.
	if joined != "" && joined != payload.Email {
		s.Hub.Leave(joined, client)
	}
	s.Hub.Join(payload.Email, client)
	log.Info().Str("email", payload.Email).Msg("Chat channel joined")
	return payload.Email
}

func (s *Socket) handleSend(ctx context.Context, client *Client, data json.RawMessage) {
	var payload struct {
		SenderEmail   string `json:"senderEmail"`
		ReceiverEmail string `json:"receiverEmail"`
		Message       string `json:"message"`
		PropertyID    string `json:"propertyId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		client.Emit("error", fiber.Map{"message": "Invalid message payload"})
		return
	}
	var propertyID *uuid.UUID
	if payload.PropertyID != "" {
		if id, err := uuid.Parse(payload.PropertyID); err == nil {
			propertyID = &id
		}
	}
	msg, err := s.Service.Send(ctx, SendInput{
		SenderEmail:   payload.SenderEmail,
		ReceiverEmail: payload.ReceiverEmail,
		Message:       payload.Message,
		PropertyID:    propertyID,
	})
	if err != nil {
		// Persistence failed: nothing is relayed, the sender alone hears about it.
		client.Emit("error", fiber.Map{"message": err.Error()})
		return
	}
	s.Hub.Broadcast(msg.ReceiverEmail, "receive_message", msg)
	// Echo to the sender's channel so other devices stay consistent.
	s.Hub.Broadcast(msg.SenderEmail, "message_sent", msg)
}

func (s *Socket) handleAdvance(ctx context.Context, client *Client, data json.RawMessage, target, event string) {
	var payload struct {
		MessageID string `json:"messageId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		client.Emit("error", fiber.Map{"message": "Invalid payload"})
		return
	}
	id, err := uuid.Parse(payload.MessageID)
	if err != nil {
		client.Emit("error", fiber.Map{"message": "Invalid message id"})
		return
	}
	msg, changed, err := s.Service.Advance(ctx, id, target)
	if err != nil {
		client.Emit("error", fiber.Map{"message": err.Error()})
		return
	}
	if changed {
		// Status updates flow back to the original sender's channel.
		s.Hub.Broadcast(msg.SenderEmail, event, fiber.Map{
			"messageId": msg.MessageID,
			"status":    msg.Status,
		})
	}
}
