package broker

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultPublishTimeout = 3 * time.Second

type Publisher struct {
	client  *Client
	timeout time.Duration
}

func NewPublisher(client *Client, cfg PublisherConfig) *Publisher {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}

	return &Publisher{
		client:  client,
		timeout: timeout,
	}
}

func (p *Publisher) Publish(ctx context.Context, message string) error {
	if p.client == nil || p.client.redis == nil {
		return errors.New("redis not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.client.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: p.client.stream,
		Values: map[string]interface{}{"body": message},
	}).Err()
}
