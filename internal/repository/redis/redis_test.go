package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"young-ats/internal/domain"
	repo "young-ats/internal/repository/redis"
	pkgredis "young-ats/pkg/redis"
)

func TestNewEventPublisher_NilClientIsNoop(t *testing.T) {
	pub := repo.NewEventPublisher(nil)

	err := pub.Publish(context.Background(), domain.CandidateEvent{Type: domain.EventStageChanged, LegacyID: "x"})
	assert.NoError(t, err)
}

// Runs only when TEST_REDIS_URL points at a disposable Redis.
func TestRedisIntegration(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	rdb, err := pkgredis.Connect(ctx, pkgredis.Config{URL: url})
	require.NoError(t, err)
	defer rdb.Close()

	t.Run("session lifecycle", func(t *testing.T) {
		sessions := repo.NewSessionRepository(rdb)
		s := &domain.Session{
			ID:        uuid.NewString(),
			User:      domain.User{Email: "ana@youngempreendimentos.com.br", Role: domain.RoleUser},
			CreatedAt: time.Now().UTC(),
			ExpiresAt: time.Now().UTC().Add(time.Minute),
		}
		require.NoError(t, sessions.Save(ctx, s))

		got, err := sessions.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s.User, got.User)

		require.NoError(t, sessions.Delete(ctx, s.ID))
		_, err = sessions.Get(ctx, s.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("publish reaches subscribers", func(t *testing.T) {
		sub := rdb.Subscribe(ctx, domain.EventStageChanged)
		defer sub.Close()
		_, err := sub.Receive(ctx)
		require.NoError(t, err)

		pub := repo.NewEventPublisher(rdb)
		require.NoError(t, pub.Publish(ctx, domain.CandidateEvent{
			Type:      domain.EventStageChanged,
			LegacyID:  "c1",
			FromStage: domain.StageInscrito,
			ToStage:   domain.StageConsiderado,
		}))

		select {
		case msg := <-sub.Channel():
			assert.Contains(t, msg.Payload, `"legacyId":"c1"`)
		case <-time.After(2 * time.Second):
			t.Fatal("no message received")
		}
	})
}
