// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// MailQueueName is the durable queue carrying password-reset mail jobs.
const MailQueueName = "mail.password-reset"

// PasswordResetEvent is published when a user requests a password reset.
// It carries everything the mail consumer needs to compose and deliver
// the message without querying the primary database.
type PasswordResetEvent struct {
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	ResetLink   string    `json:"reset_link"`
	ValidMins   int       `json:"valid_mins"`
	RequestedAt time.Time `json:"requested_at"`
}
