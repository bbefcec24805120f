package chat

import "errors"

var (
	ErrMissingFields         = errors.New("Sender, receiver and message are required")
	ErrUserIDRequired        = errors.New("User ID is required")
	ErrUserNotFound          = errors.New("User not found")
	ErrMessageNotFound       = errors.New("Message not found")
	ErrNoMessages            = errors.New("No messages found to delete")
	ErrInvalidConversationID = errors.New("Invalid conversation ID format")
)
