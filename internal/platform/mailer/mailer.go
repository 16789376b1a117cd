// Package mailer delivers the form notification emails. Three backends
// share one interface: MailerSend for production, SMTP for self-hosted
// setups and Mailpit, and Dev which only logs.
package mailer

import "context"

type Message struct {
	To      string
	ToName  string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

type Service interface {
	Send(ctx context.Context, msg Message) (string, error)
}
