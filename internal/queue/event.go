// Package queue defines message payloads exchanged over the message
// broker, the publisher that enqueues them and the background
// consumer that delivers them.
package queue

// EmailRequestedEvent is published whenever the application wants an
// email sent: welcome mail, OTP codes, password-change notices. It
// carries everything a downstream mailer needs without querying the
// primary database. The body never contains a password.
type EmailRequestedEvent struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	RequestedAt string `json:"requested_at"`
}
