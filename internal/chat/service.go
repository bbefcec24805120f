package chat

import (
	"context"
	"time"

	"landeed-backend/internal/models"
	"landeed-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service is the message store plus the derived conversation view. Redis keeps
// incremental unread counters so the rooms endpoint does not rescan the whole
// history per request; the DB remains the source of truth and counters are
// rebuilt from it on a miss.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

func unreadKey(owner, peer string) string {
	return "chat:unread:" + owner + ":" + peer
}

type SendInput struct {
	SenderEmail   string
	ReceiverEmail string
	Message       string
	PropertyID    *uuid.UUID
}

// Send persists a message in sent state. Persistence always happens before any
// live relay; the caller only relays when this returns nil.
func (s *Service) Send(ctx context.Context, in SendInput) (*models.ChatMessage, error) {
	if in.SenderEmail == "" || in.ReceiverEmail == "" || in.Message == "" {
		return nil, ErrMissingFields
	}
	msg := &models.ChatMessage{
		SenderEmail:   in.SenderEmail,
		ReceiverEmail: in.ReceiverEmail,
		Message:       in.Message,
		PropertyID:    in.PropertyID,
		Status:        models.MessageSent,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	if s.Rdb != nil {
		if err := s.Rdb.Incr(ctx, unreadKey(in.ReceiverEmail, in.SenderEmail)).Err(); err != nil {
			log.Warn().Err(err).Msg("Unread counter increment failed")
		}
	}
	return msg, nil
}

// History returns both directions of the conversation between the resolved
// user and receiverEmail, oldest first. Ordering is total: timestamp with the
// message id as tiebreak.
func (s *Service) History(ctx context.Context, userKey, receiverEmail string) ([]models.ChatMessage, error) {
	user, err := s.resolveUser(ctx, userKey)
	if err != nil {
		return nil, err
	}
	var out []models.ChatMessage
	if err := s.DB.WithContext(ctx).
		Where("(sender_email = ? AND receiver_email = ?) OR (sender_email = ? AND receiver_email = ?)",
			user.Email, receiverEmail, receiverEmail, user.Email).
		Order("timestamp ASC, message_id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// RoomSummary is the derived, non-persisted conversation view.
type RoomSummary struct {
	OtherUser       *models.User `json:"otherUser"`
	OtherUserEmail  string       `json:"otherUserEmail"`
	LastMessage     string       `json:"lastMessage"`
	LastMessageTime time.Time    `json:"lastMessageTime"`
	UnreadCount     int64        `json:"unreadCount"`
}

// Rooms groups the user's messages by chat partner, newest conversation
// first. Unread counts come from Redis counters when available and are
// recomputed from the scan otherwise.
func (s *Service) Rooms(ctx context.Context, userKey string) ([]RoomSummary, error) {
	user, err := s.resolveUser(ctx, userKey)
	if err != nil {
		return nil, err
	}
	var messages []models.ChatMessage
	if err := s.DB.WithContext(ctx).
		Where("sender_email = ? OR receiver_email = ?", user.Email, user.Email).
		Order("timestamp DESC, message_id").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	order := make([]string, 0)
	rooms := make(map[string]*RoomSummary)
	scanned := make(map[string]int64)
	for _, m := range messages {
		other := m.SenderEmail
		if m.SenderEmail == user.Email {
			other = m.ReceiverEmail
		}
		if _, ok := rooms[other]; !ok {
			order = append(order, other)
			rooms[other] = &RoomSummary{
				OtherUserEmail:  other,
				LastMessage:     m.Message,
				LastMessageTime: m.Timestamp,
			}
		}
		if m.ReceiverEmail == user.Email && m.Status != models.MessageRead {
			scanned[other]++
		}
	}

	out := make([]RoomSummary, 0, len(order))
	for _, other := range order {
		room := rooms[other]
		room.UnreadCount = s.unreadCount(ctx, user.Email, other, scanned[other])
		var otherUser models.User
		if err := s.DB.WithContext(ctx).Where("email = ?", other).First(&otherUser).Error; err == nil {
			room.OtherUser = &otherUser
		}
		out = append(out, *room)
	}
	return out, nil
}

// unreadCount prefers the Redis counter, repairing it from the scan value on
// miss or error.
func (s *Service) unreadCount(ctx context.Context, owner, peer string, scanned int64) int64 {
	if s.Rdb == nil {
		return scanned
	}
	n, err := s.Rdb.Get(ctx, unreadKey(owner, peer)).Int64()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Unread counter read failed")
		}
		if scanned > 0 {
			_ = s.Rdb.Set(ctx, unreadKey(owner, peer), scanned, 0).Err()
		}
		return scanned
	}
	return n
}

// MarkReadFrom bulk-advances every unread message from senderEmail to
// readerEmail to read and resets the unread counter.
func (s *Service) MarkReadFrom(ctx context.Context, senderEmail, readerEmail string) error {
	if senderEmail == "" || readerEmail == "" {
		return ErrUserIDRequired
	}
	res := s.DB.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("sender_email = ? AND receiver_email = ? AND status <> ?",
			senderEmail, readerEmail, models.MessageRead).
		Update("status", models.MessageRead)
	if res.Error != nil {
		return res.Error
	}
	if s.Rdb != nil {
		if err := s.Rdb.Del(ctx, unreadKey(readerEmail, senderEmail)).Err(); err != nil {
			log.Warn().Err(err).Msg("Unread counter reset failed")
		}
	}
	return nil
}

// Advance moves one message's delivery status forward. Transitions are
// monotonic: a read message never regresses, and re-advancing to the same or
// a lower status is a no-op. Returns the message and whether it changed.
func (s *Service) Advance(ctx context.Context, messageID uuid.UUID, target string) (*models.ChatMessage, bool, error) {
	targetRank := models.StatusRank(target)
	if targetRank <= models.StatusRank(models.MessageSent) {
		return nil, false, ErrMessageNotFound
	}

	var allowed []string
	for _, st := range []string{models.MessageSent, models.MessageDelivered} {
		if models.StatusRank(st) < targetRank {
			allowed = append(allowed, st)
		}
	}
	res := s.DB.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("message_id = ? AND status IN ?", messageID, allowed).
		Update("status", target)
	if res.Error != nil {
		return nil, false, res.Error
	}

	var msg models.ChatMessage
	if err := s.DB.WithContext(ctx).Where("message_id = ?", messageID).First(&msg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, ErrMessageNotFound
		}
		return nil, false, err
	}

	changed := res.RowsAffected > 0
	if changed && target == models.MessageRead && s.Rdb != nil {
		key := unreadKey(msg.ReceiverEmail, msg.SenderEmail)
		if n, err := s.Rdb.Decr(ctx, key).Result(); err == nil && n < 0 {
			_ = s.Rdb.Set(ctx, key, 0, 0).Err()
		}
	}
	return &msg, changed, nil
}

// DeleteConversation removes every message between the two identities in the
// composite key "email1_email2", in either direction.
func (s *Service) DeleteConversation(ctx context.Context, conversationID string) (int64, error) {
	a, b, ok := validation.SplitConversationID(conversationID)
	if !ok {
		return 0, ErrInvalidConversationID
	}
	res := s.DB.WithContext(ctx).
		Where("(sender_email = ? AND receiver_email = ?) OR (sender_email = ? AND receiver_email = ?)",
			a, b, b, a).
		Delete(&models.ChatMessage{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNoMessages
	}
	if s.Rdb != nil {
		_ = s.Rdb.Del(ctx, unreadKey(a, b), unreadKey(b, a)).Err()
	}
	return res.RowsAffected, nil
}

// HistoryForProperty returns all messages scoped to one listing, oldest first
// (legacy listing-detail conversation path).
func (s *Service) HistoryForProperty(ctx context.Context, propertyID uuid.UUID) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	if err := s.DB.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("timestamp ASC, message_id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// HistoryForPropertyBetween narrows the listing-scoped history to two users.
func (s *Service) HistoryForPropertyBetween(ctx context.Context, propertyID uuid.UUID, a, b string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	if err := s.DB.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Where("(sender_email = ? AND receiver_email = ?) OR (sender_email = ? AND receiver_email = ?)", a, b, b, a).
		Order("timestamp ASC, message_id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// resolveUser accepts a user id or an email (the denormalized fallback key).
func (s *Service) resolveUser(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, ErrUserIDRequired
	}
	var user models.User
	q := s.DB.WithContext(ctx)
	if id, err := uuid.Parse(key); err == nil {
		q = q.Where("user_id = ?", id)
	} else {
		q = q.Where("email = ?", key)
	}
	if err := q.First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
