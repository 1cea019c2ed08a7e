package notify

import (
	"context"
	"encoding/json"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/openswoop/syllabank/pkg/ingest"
)

func TestPublisher_CatalogRefreshed(t *testing.T) {
	ctx := context.Background()
	srv := pstest.NewServer()
	defer srv.Close()

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client, err := pubsub.NewClient(ctx, "syllabank-test", option.WithGRPCConn(conn))
	require.NoError(t, err)
	defer client.Close()

	topic, err := client.CreateTopic(ctx, "catalog-refreshed")
	require.NoError(t, err)
	defer topic.Stop()

	stats := ingest.Stats{Total: 3, Imported: 1, Skipped: 1, Failed: 1}
	pub := NewTopicPublisher(topic)
	require.NoError(t, pub.CatalogRefreshed(ctx, "https://www.ocw.titech.ac.jp/listing", stats))
	require.NoError(t, pub.Close())

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "https://www.ocw.titech.ac.jp/listing", msgs[0].Attributes["listingUrl"])

	var event Refreshed
	require.NoError(t, json.Unmarshal(msgs[0].Data, &event))
	assert.Equal(t, "https://www.ocw.titech.ac.jp/listing", event.ListingURL)
	assert.Equal(t, stats, event.Stats)
	assert.False(t, event.SyncedAt.IsZero())
}

func TestPublisher_CatalogRefreshedMissingTopic(t *testing.T) {
	ctx := context.Background()
	srv := pstest.NewServer()
	defer srv.Close()

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client, err := pubsub.NewClient(ctx, "syllabank-test", option.WithGRPCConn(conn))
	require.NoError(t, err)
	defer client.Close()

	topic := client.Topic("missing")
	defer topic.Stop()

	err = NewTopicPublisher(topic).CatalogRefreshed(ctx, "https://www.ocw.titech.ac.jp/listing", ingest.Stats{})
	assert.Error(t, err)
}
