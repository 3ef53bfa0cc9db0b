package port

import "context"

// MailMessage is a single outbound email.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}

// Mailer dispatches outbound mail. Delivery is best-effort from the
// caller's perspective: a failed send does not roll back the state
// change that triggered it.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}
