package notify

import (
	"context"
	"time"
)

const (
	TopicNews = "news"

	sendAttempts   = 3
	initialBackoff = 300 * time.Millisecond
)

type Sender interface {
	Broadcast(ctx context.Context, topic, title, body string, data map[string]string) error
}

// withRetry calls send up to attempts times, doubling the wait after each
// failure, and returns the last error.
func withRetry(ctx context.Context, attempts int, backoff time.Duration, send func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := send(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return lastErr
}
