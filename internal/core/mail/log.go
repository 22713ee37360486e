package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer 未配置 SendGrid key 时使用，只记录日志
type LogMailer struct{ Log *zap.Logger }

func (l LogMailer) Send(_ context.Context, m Message) error {
	l.Log.Info("mail (not sent)", zap.String("to", m.To), zap.String("subject", m.Subject))
	return nil
}

// New 有 key 用 SendGrid，否则退化为 LogMailer
func New(apiKey, from, fromName string, log *zap.Logger) Mailer {
	if apiKey == "" {
		return LogMailer{Log: log}
	}
	return NewSendGrid(apiKey, from, fromName)
}
