package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ResetCodeStream is consumed by the mail worker that delivers reset codes.
	ResetCodeStream = "notifications:password-reset"
	streamMaxLen    = 10000
)

// ResetNotifier publishes reset codes to a Redis stream for delivery.
type ResetNotifier struct {
	client *redis.Client
	stream string
}

func NewResetNotifier(client *redis.Client, stream string) *ResetNotifier {
	if stream == "" {
		stream = ResetCodeStream
	}
	return &ResetNotifier{client: client, stream: stream}
}

func (n *ResetNotifier) SendResetCode(ctx context.Context, email, code string) error {
	err := n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"type":      "password_reset_code",
			"email":     email,
			"code":      code,
			"issued_at": time.Now().UTC().Format(time.RFC3339),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish reset code: %w", err)
	}
	return nil
}
