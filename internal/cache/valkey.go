// Package cache provides the Valkey (Redis-compatible) client used by
// the distributed stylesheet cache.
package cache

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectValkey dials a Valkey server and verifies it with a bounded
// ping. The styling cache is the only consumer, so the client stays on
// the default logical database.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	addr := net.JoinHostPort(host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}
