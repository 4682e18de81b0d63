package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
)

func TestRedisConversationCap(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	rdb, err := NewRedisClient(ctx, RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })

	repo := NewRedisConversationRepo(rdb)
	user := "test-" + uuid.NewString()
	t.Cleanup(func() { rdb.Del(context.Background(), conversationKey(user)) })

	for i := 0; i < 12; i++ {
		_, err := repo.Append(ctx, user, 20,
			ConversationEntry{Role: ChatRoleUser, Content: fmt.Sprintf("q%d", i)},
			ConversationEntry{Role: ChatRoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	log, err := repo.Get(ctx, user)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(log.Entries) != 20 {
		t.Fatalf("entries = %d, want 20", len(log.Entries))
	}
	if log.Entries[0].Content != "q2" {
		t.Errorf("oldest = %q, want q2", log.Entries[0].Content)
	}
}
