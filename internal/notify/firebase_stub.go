//go:build !firebase
// +build !firebase

package notify

import "context"

func NewFirebaseSender(_ context.Context, _ string) (Sender, error) {
	return NoopSender{}, nil
}
