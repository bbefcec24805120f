package chat

import (
	"landeed-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers is the HTTP surface over the message store. Hub is optional; when
// present, HTTP sends are also relayed to live connections.
type Handlers struct {
	Service *Service
	Hub     *Hub
}

// POST /api/chat/send
func (h *Handlers) Send(c *fiber.Ctx) error {
	var body struct {
		SenderEmail   string `json:"senderEmail"`
		ReceiverEmail string `json:"receiverEmail"`
		Message       string `json:"message"`
		PropertyID    string `json:"propertyId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	var propertyID *uuid.UUID
	if body.PropertyID != "" {
		id, err := uuid.Parse(body.PropertyID)
		if err != nil {
			return response.Error(c, "Invalid property id", fiber.StatusBadRequest)
		}
		propertyID = &id
	}
	msg, err := h.Service.Send(c.Context(), SendInput{
		SenderEmail:   body.SenderEmail,
		ReceiverEmail: body.ReceiverEmail,
		Message:       body.Message,
		PropertyID:    propertyID,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	if h.Hub != nil {
		h.Hub.Broadcast(msg.ReceiverEmail, "receive_message", msg)
		h.Hub.Broadcast(msg.SenderEmail, "message_sent", msg)
	}
	return response.Created(c, "Message sent", msg)
}

// GET /api/chat/history/:receiverEmail?userId=
func (h *Handlers) History(c *fiber.Ctx) error {
	messages, err := h.Service.History(c.Context(), c.Query("userId"), c.Params("receiverEmail"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Chat history fetched", messages)
}

// GET /api/chat/rooms?userId=
func (h *Handlers) Rooms(c *fiber.Ctx) error {
	rooms, err := h.Service.Rooms(c.Context(), c.Query("userId"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Chat rooms fetched", rooms)
}

// POST /api/chat/mark-read/:senderEmail — reader identity in body or query.
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	_ = c.BodyParser(&body)
	reader := body.Email
	if reader == "" {
		reader = c.Query("email")
	}
	if err := h.Service.MarkReadFrom(c.Context(), c.Params("senderEmail"), reader); err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Messages marked as read", nil)
}

// DELETE /api/chat/rooms/:conversationId — conversationId is "email1_email2".
func (h *Handlers) DeleteConversation(c *fiber.Ctx) error {
	deleted, err := h.Service.DeleteConversation(c.Context(), c.Params("conversationId"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"message":      "Conversation deleted successfully",
		"deletedCount": deleted,
	})
}

// POST /api/messages — legacy listing-scoped send.
func (h *Handlers) SaveMessage(c *fiber.Ctx) error {
	return h.Send(c)
}

// GET /api/messages/property/:propertyId
func (h *Handlers) MessagesForProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest)
	}
	messages, err := h.Service.HistoryForProperty(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Messages fetched", messages)
}

// GET /api/messages/property/:propertyId/users/:user1/:user2
func (h *Handlers) MessagesForPropertyBetween(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest)
	}
	messages, err := h.Service.HistoryForPropertyBetween(c.Context(), id, c.Params("user1"), c.Params("user2"))
	if err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, "Messages fetched", messages)
}

func (h *Handlers) mapError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrMissingFields, ErrUserIDRequired, ErrInvalidConversationID:
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case ErrUserNotFound, ErrMessageNotFound, ErrNoMessages:
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
}
