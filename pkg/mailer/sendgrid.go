package mailer

import (
	"fmt"
	"net/http"

	"school-service/pkg/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridMailer delivers mail through the SendGrid v3 API
type SendgridMailer struct {
	key  string
	from *sgmail.Email
	log  *zap.Logger
}

var _ Mailer = (*SendgridMailer)(nil)

// NewSendgridMailer creates a SendGrid-backed mailer from the mail configuration
func NewSendgridMailer(cfg *config.MailConfig, log *zap.Logger) *SendgridMailer {
	return &SendgridMailer{
		key:  cfg.SendgridKey,
		from: sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		log:  log,
	}
}

// Send makes a single delivery attempt and surfaces any transport error
func (m *SendgridMailer) Send(msg *Message) (string, error) {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.To))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(
		sgmail.NewContent("text/plain", msg.TextBody),
		sgmail.NewContent("text/html", msg.HTMLBody),
	)

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(v3)

	res, err := sendgrid.API(req)
	if err != nil {
		return "", fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.log.Error("sendgrid rejected message",
			zap.Int("status", res.StatusCode),
			zap.String("body", res.Body))
		return "", fmt.Errorf("sending email: status %d", res.StatusCode)
	}

	messageID := res.Headers["X-Message-Id"]
	if len(messageID) > 0 {
		return messageID[0], nil
	}
	return "", nil
}
