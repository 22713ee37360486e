package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendEndpoint = "/v3/mail/send"

type SendGrid struct {
	APIKey   string
	From     string
	FromName string
	Host     string // 为空则使用 api.sendgrid.com
}

func NewSendGrid(apiKey, from, fromName string) *SendGrid {
	return &SendGrid{APIKey: apiKey, From: from, FromName: fromName}
}

// Send 每次构造新的 request，sendgrid.Client 会改写自身 Body，不能并发复用
func (s *SendGrid) Send(ctx context.Context, m Message) error {
	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.FromName, s.From),
		m.Subject,
		sgmail.NewEmail(m.ToName, m.To),
		m.Text, "",
	)
	req := sendgrid.GetRequest(s.APIKey, sendEndpoint, s.Host)
	req.Method = "POST"
	req.Body = sgmail.GetRequestBody(msg)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", m.To, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send to %s: status %d: %s", m.To, resp.StatusCode, resp.Body)
	}
	return nil
}
