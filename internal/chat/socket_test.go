package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"landeed-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSocketTest(t *testing.T) (*Socket, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ChatMessage{}))
	return &Socket{Hub: NewHub(), Service: &Service{DB: db}}, db
}

func drain(c *Client) []Event {
	var out []Event
	for {
		select {
		case ev := <-c.send:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestSocketJoin_BindsIdentity(t *testing.T) {
	s, _ := setupSocketTest(t)
	client := NewClient(nil)

	joined := s.handleJoin(client, "", json.RawMessage(`{"email":"a@example.com"}`))
	assert.Equal(t, "a@example.com", joined)
	assert.True(t, s.Hub.Online("a@example.com"))
}

func TestSocketJoin_MissingEmail(t *testing.T) {
	s, _ := setupSocketTest(t)
	client := NewClient(nil)

	joined := s.handleJoin(client, "", json.RawMessage(`{}`))
	assert.Equal(t, "", joined)

	events := drain(client)
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Event)
}

func TestSocketJoin_RejoinMovesConnection(t *testing.T) {
	s, _ := setupSocketTest(t)
	client := NewClient(nil)

	joined := s.handleJoin(client, "", json.RawMessage(`{"email":"a@example.com"}`))
	joined = s.handleJoin(client, joined, json.RawMessage(`{"email":"a2@example.com"}`))
	assert.Equal(t, "a2@example.com", joined)
	assert.False(t, s.Hub.Online("a@example.com"))
	assert.True(t, s.Hub.Online("a2@example.com"))
}

func TestSocketSend_PersistsThenRelays(t *testing.T) {
	s, db := setupSocketTest(t)
	sender := NewClient(nil)
	receiver := NewClient(nil)
	s.Hub.Join("a@example.com", sender)
	s.Hub.Join("b@example.com", receiver)

	payload := json.RawMessage(`{"senderEmail":"a@example.com","receiverEmail":"b@example.com","message":"hi"}`)
	s.handleSend(context.Background(), sender, payload)

	var count int64
	require.NoError(t, db.Model(&models.ChatMessage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	recvEvents := drain(receiver)
	require.Len(t, recvEvents, 1)
	assert.Equal(t, "receive_message", recvEvents[0].Event)

	sentEvents := drain(sender)
	require.Len(t, sentEvents, 1)
	assert.Equal(t, "message_sent", sentEvents[0].Event)
}

func TestSocketSend_ValidationErrorGoesToSenderOnly(t *testing.T) {
	s, db := setupSocketTest(t)
	sender := NewClient(nil)
	receiver := NewClient(nil)
	s.Hub.Join("a@example.com", sender)
	s.Hub.Join("b@example.com", receiver)

	payload := json.RawMessage(`{"senderEmail":"a@example.com"}`)
	s.handleSend(context.Background(), sender, payload)

	var count int64
	require.NoError(t, db.Model(&models.ChatMessage{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	events := drain(sender)
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Event)
	assert.Empty(t, drain(receiver))
}

func TestSocketMarkRead_NotifiesOriginalSender(t *testing.T) {
	s, db := setupSocketTest(t)
	sender := NewClient(nil)
	s.Hub.Join("a@example.com", sender)

	m := &models.ChatMessage{
		SenderEmail:   "a@example.com",
		ReceiverEmail: "b@example.com",
		Message:       "hi",
		Status:        models.MessageSent,
		Timestamp:     time.Now().UTC(),
	}
	require.NoError(t, db.Create(m).Error)

	reader := NewClient(nil)
	payload, _ := json.Marshal(map[string]string{"messageId": m.MessageID.String()})
	s.handleAdvance(context.Background(), reader, payload, models.MessageRead, "message_read")

	events := drain(sender)
	require.Len(t, events, 1)
	assert.Equal(t, "message_read", events[0].Event)

	// Re-reading is a silent no-op.
	s.handleAdvance(context.Background(), reader, payload, models.MessageRead, "message_read")
	assert.Empty(t, drain(sender))
	assert.Empty(t, drain(reader))
}
