package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMailLogLine(t *testing.T) {
	ev := PasswordResetEvent{
		Email:       "doremi@example.com",
		Username:    "doremi",
		ResetLink:   "http://localhost:3000/reset-password/tok",
		ValidMins:   15,
		RequestedAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}

	line := mailLogLine(ev)
	assert.Contains(t, line, "doremi@example.com")
	assert.Contains(t, line, `"doremi"`)
	assert.Contains(t, line, "http://localhost:3000/reset-password/tok")
	assert.Contains(t, line, "valid=15m")
	assert.True(t, line[len(line)-1] == '\n')
}

func TestHandleMessage_BadPayload(t *testing.T) {
	err := handleMessage([]byte("not json"))
	assert.Error(t, err)
}
