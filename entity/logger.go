package entity

import "context"

// Logger specifies a contextual, structured logger.
// Key-value pairs follow the message, as in "row", 3, "url", url.
type Logger interface {
	Info(ctx context.Context, msg string, kv ...any)
	Error(ctx context.Context, msg string, err error, kv ...any)
}
