package mailer

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConsoleMailer writes messages to the log instead of delivering them.
// Used in development and in tests, where the recorded messages can be
// inspected.
type ConsoleMailer struct {
	log *zap.Logger

	mu   sync.Mutex
	sent []Message

	// FailNext makes the next Send attempt fail. Test hook for the
	// dispatch-failure path.
	FailNext bool
}

var _ Mailer = (*ConsoleMailer)(nil)

// NewConsoleMailer creates a console-backed mailer
func NewConsoleMailer(log *zap.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

// Send records the message and logs it
func (m *ConsoleMailer) Send(msg *Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return "", fmt.Errorf("sending email: console mailer failure requested")
	}

	m.sent = append(m.sent, *msg)
	m.log.Info("email dispatched (console)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return "console-" + uuid.New().String(), nil
}

// Sent returns a copy of every message sent so far
func (m *ConsoleMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
