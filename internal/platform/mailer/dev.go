package mailer

import (
	"context"

	"github.com/google/uuid"

	"github.com/bumiauto/web-api/pkg/logger"
)

// Dev logs messages instead of sending them.
type Dev struct{}

func NewDev() *Dev {
	return &Dev{}
}

func (d *Dev) Send(ctx context.Context, msg Message) (string, error) {
	id := uuid.NewString()
	logger.InfoContext(ctx, "[DEV MAIL] message delivered to log",
		"id", id,
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return id, nil
}
