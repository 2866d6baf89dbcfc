package notify

import "context"

type NoopSender struct{}

func (NoopSender) Broadcast(_ context.Context, _, _, _ string, _ map[string]string) error {
	return nil
}
