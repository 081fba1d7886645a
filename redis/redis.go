// Package redis fans committed store events out over Redis pub/sub and keeps
// a short activity feed for the admin dashboard.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meinhoongagan/taskr/store"
)

const (
	feedKey     = "taskr:activity"
	feedLength  = 100
	bufferSize  = 256
	pushTimeout = 2 * time.Second
)

type Publisher struct {
	client  *redis.Client
	channel string
	events  chan store.Event
}

// New connects to addr and verifies the connection.
func New(ctx context.Context, addr, channel string) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("✅ Connected to Redis")
	return &Publisher{
		client:  client,
		channel: channel,
		events:  make(chan store.Event, bufferSize),
	}, nil
}

// Observer queues events for Run. Events are dropped when the queue is full
// so store writers never wait on Redis.
func (p *Publisher) Observer() store.Observer {
	return func(ev store.Event) {
		select {
		case p.events <- ev:
		default:
			log.Printf("redis: dropping %s event for %s, queue full", ev.Kind, ev.EntityID)
		}
	}
}

// Run publishes queued events until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-p.events:
			if err := p.publish(ctx, ev); err != nil {
				log.Printf("redis: publish %s: %v", ev.Kind, err)
			}
		}
	}
}

func (p *Publisher) publish(ctx context.Context, ev store.Event) error {
	payload, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()
	_, err = p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Publish(ctx, p.channel, payload)
		pipe.LPush(ctx, feedKey, payload)
		pipe.LTrim(ctx, feedKey, 0, feedLength-1)
		return nil
	})
	return err
}

// Recent returns up to n of the latest events, newest first.
func (p *Publisher) Recent(ctx context.Context, n int) ([]store.Event, error) {
	if n <= 0 || n > feedLength {
		n = feedLength
	}
	raw, err := p.client.LRange(ctx, feedKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]store.Event, 0, len(raw))
	for _, r := range raw {
		ev, err := decodeEvent(r)
		if err != nil {
			log.Printf("redis: skipping malformed feed entry: %v", err)
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (p *Publisher) Close() error {
	return p.client.Close()
}

func encodeEvent(ev store.Event) (string, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeEvent(s string) (store.Event, error) {
	var ev store.Event
	err := json.Unmarshal([]byte(s), &ev)
	return ev, err
}
