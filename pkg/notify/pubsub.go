package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"

	"github.com/openswoop/syllabank/pkg/ingest"
)

// Refreshed is the event published after a listing has been synced.
type Refreshed struct {
	ListingURL string       `json:"listingUrl"`
	Stats      ingest.Stats `json:"stats"`
	SyncedAt   time.Time    `json:"syncedAt"`
}

// Topic is the subset of a pubsub topic the Publisher needs.
type Topic interface {
	Publish(ctx context.Context, msg *pubsub.Message) *pubsub.PublishResult
}

type Publisher struct {
	client *pubsub.Client
	topic  Topic
}

func NewPublisher(ctx context.Context, projectID, topicID string) (*Publisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &Publisher{client: client, topic: client.Topic(topicID)}, nil
}

// NewTopicPublisher publishes to an existing topic.
func NewTopicPublisher(topic Topic) *Publisher {
	return &Publisher{topic: topic}
}

// CatalogRefreshed publishes an event and waits for the server to accept it.
func (p *Publisher) CatalogRefreshed(ctx context.Context, listingURL string, stats ingest.Stats) error {
	msg, err := json.Marshal(Refreshed{
		ListingURL: listingURL,
		Stats:      stats,
		SyncedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	// Publish an event
	res := p.topic.Publish(ctx, &pubsub.Message{
		Data:       msg,
		Attributes: map[string]string{"listingUrl": listingURL},
	})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
