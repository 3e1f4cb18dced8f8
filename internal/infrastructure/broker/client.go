package broker

import (
	"context"
	"strings"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	redis  *redis.Client
	stream string
}

// NewClient connects to redis and makes sure the stream and its consumer
// group exist, so events published before the ingest workers start are kept.
func NewClient(cfg Config) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URI)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)
	ctx := context.Background()

	err = rdb.XGroupCreateMkStream(ctx, cfg.StreamName, cfg.GroupName, "$").Err()
	if err != nil && !isBusyGroup(err) {
		logger.Error("failed to create stream group", "stream", cfg.StreamName, "err", err)
		_ = rdb.Close()

		return nil, err
	}

	return &Client{
		redis:  rdb,
		stream: cfg.StreamName,
	}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.redis.Close()
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}
