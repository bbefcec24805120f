package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("user@example"))
	assert.False(t, IsValidEmail("not an email"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("secret1"))
	assert.False(t, IsValidPassword("12345"))
}

func TestSplitConversationID(t *testing.T) {
	a, b, ok := SplitConversationID("a@example.com_b@example.com")
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", a)
	assert.Equal(t, "b@example.com", b)

	// Only the first separator splits; emails never contain underscores
	// before the domain in this system, but the remainder stays intact.
	a, b, ok = SplitConversationID("a@example.com_b_c@example.com")
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", a)
	assert.Equal(t, "b_c@example.com", b)

	_, _, ok = SplitConversationID("no-separator")
	assert.False(t, ok)
	_, _, ok = SplitConversationID("_b@example.com")
	assert.False(t, ok)
	_, _, ok = SplitConversationID("a@example.com_")
	assert.False(t, ok)
}
