//go:build firebase
// +build firebase

package notify

import (
	"context"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FirebaseSender struct {
	client *messaging.Client
}

func NewFirebaseSender(ctx context.Context, credentialsFile string) (Sender, error) {
	if strings.TrimSpace(credentialsFile) == "" {
		return NoopSender{}, nil
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseSender{client: client}, nil
}

func (s *FirebaseSender) Broadcast(ctx context.Context, topic, title, body string, data map[string]string) error {
	if s == nil || s.client == nil {
		return nil
	}
	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	return withRetry(ctx, sendAttempts, initialBackoff, func(ctx context.Context) error {
		_, err := s.client.Send(ctx, msg)
		return err
	})
}
