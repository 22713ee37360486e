package mail

import (
	"context"
	"fmt"
)

// Message 纯文本邮件
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

func Welcome(email, name string) Message {
	return Message{
		To: email, ToName: name,
		Subject: "Welcome to Task Manager",
		Text:    fmt.Sprintf("Thanks for joining, %s. Let us know how you get along with the app.", name),
	}
}

func Cancellation(email, name string) Message {
	return Message{
		To: email, ToName: name,
		Subject: "Your Task Manager account was removed",
		Text:    fmt.Sprintf("Goodbye, %s. Your account and all of its tasks have been deleted.", name),
	}
}
