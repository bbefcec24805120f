package chat

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"landeed-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupChatApp(t *testing.T) (*fiber.App, *Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ChatMessage{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	h := &Handlers{Service: &Service{DB: db, Rdb: rdb}, Hub: NewHub()}
	app := fiber.New()
	app.Post("/api/chat/send", h.Send)
	app.Get("/api/chat/history/:receiverEmail", h.History)
	app.Get("/api/chat/rooms", h.Rooms)
	app.Post("/api/chat/mark-read/:senderEmail", h.MarkRead)
	app.Delete("/api/chat/rooms/:conversationId", h.DeleteConversation)
	return app, h, db
}

func TestSendHandler_PersistsAndRelays(t *testing.T) {
	app, h, db := setupChatApp(t)

	receiver := NewClient(nil)
	h.Hub.Join("b@example.com", receiver)

	body, _ := json.Marshal(map[string]string{
		"senderEmail":   "a@example.com",
		"receiverEmail": "b@example.com",
		"message":       "Is this still available?",
	})
	req := httptest.NewRequest("POST", "/api/chat/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.ChatMessage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	select {
	case ev := <-receiver.send:
		assert.Equal(t, "receive_message", ev.Event)
	default:
		t.Fatal("expected a relayed event for the receiver")
	}
}

func TestSendHandler_MissingFields(t *testing.T) {
	app, _, _ := setupChatApp(t)

	body, _ := json.Marshal(map[string]string{"senderEmail": "a@example.com"})
	req := httptest.NewRequest("POST", "/api/chat/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHistoryHandler_UnknownUser(t *testing.T) {
	app, _, _ := setupChatApp(t)

	req := httptest.NewRequest("GET", "/api/chat/history/b@example.com?userId=ghost@example.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestRoomsHandler(t *testing.T) {
	app, _, db := setupChatApp(t)
	u := &models.User{FullName: "A", Email: "a@example.com"}
	require.NoError(t, db.Create(u).Error)
	require.NoError(t, db.Create(&models.ChatMessage{
		SenderEmail:   "b@example.com",
		ReceiverEmail: "a@example.com",
		Message:       "hi",
		Status:        models.MessageSent,
		Timestamp:     time.Now().UTC(),
	}).Error)

	req := httptest.NewRequest("GET", "/api/chat/rooms?userId="+u.UserID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result struct {
		Data []RoomSummary `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Data, 1)
	assert.Equal(t, "b@example.com", result.Data[0].OtherUserEmail)
	assert.Equal(t, int64(1), result.Data[0].UnreadCount)
}

func TestMarkReadHandler_ReaderInQuery(t *testing.T) {
	app, _, db := setupChatApp(t)
	require.NoError(t, db.Create(&models.ChatMessage{
		SenderEmail:   "b@example.com",
		ReceiverEmail: "a@example.com",
		Message:       "hi",
		Status:        models.MessageSent,
		Timestamp:     time.Now().UTC(),
	}).Error)

	req := httptest.NewRequest("POST", "/api/chat/mark-read/b@example.com?email=a@example.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var m models.ChatMessage
	require.NoError(t, db.First(&m).Error)
	assert.Equal(t, models.MessageRead, m.Status)
}

func TestDeleteConversationHandler_Empty(t *testing.T) {
	app, _, _ := setupChatApp(t)

	req := httptest.NewRequest("DELETE", "/api/chat/rooms/a@example.com_b@example.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteConversationHandler_ReturnsCount(t *testing.T) {
	app, _, db := setupChatApp(t)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.ChatMessage{
			SenderEmail:   "a@example.com",
			ReceiverEmail: "b@example.com",
			Message:       "hi",
			Status:        models.MessageSent,
			Timestamp:     time.Now().UTC(),
		}).Error)
	}

	req := httptest.NewRequest("DELETE", "/api/chat/rooms/a@example.com_b@example.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, float64(2), result["deletedCount"])
}
