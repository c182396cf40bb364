// Package mailer is the delivery boundary for outbound one-time codes.
// Actual transport (SMTP, provider API) is wired by the operator; the
// default sender just logs, which is enough for development and tests.
package mailer

import "log"

// Sender delivers a one-time password reset code to an address.
type Sender interface {
	SendOTP(email, username, code string) error
}

// LogSender writes the code to the process log instead of sending mail.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendOTP(email, username, code string) error {
	log.Printf("password reset OTP for %s <%s>: %s", username, email, code)
	return nil
}
