package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig selects an optional redis backend for conversation logs.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

const conversationKeyPrefix = "careerpath:conversation:"

// RedisConversationRepo keeps each conversation log in a redis list,
// trimmed on every append.
type RedisConversationRepo struct {
	rdb *redis.Client
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewRedisConversationRepo returns a ConversationRepo backed by rdb.
func NewRedisConversationRepo(rdb *redis.Client) *RedisConversationRepo {
	return &RedisConversationRepo{rdb: rdb}
}

func conversationKey(userID string) string {
	return conversationKeyPrefix + userID
}

func (r *RedisConversationRepo) Get(ctx context.Context, userID string) (*ConversationLog, error) {
	raw, err := r.rdb.LRange(ctx, conversationKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read conversation: %w", err)
	}
	return decodeConversation(userID, raw)
}

func (r *RedisConversationRepo) Append(ctx context.Context, userID string, limit int, entries ...ConversationEntry) (*ConversationLog, error) {
	values := make([]any, len(entries))
	for i, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encode conversation entry: %w", err)
		}
		values[i] = string(b)
	}

	key := conversationKey(userID)
	var rng *redis.StringSliceCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(values) > 0 {
			pipe.RPush(ctx, key, values...)
		}
		if limit > 0 {
			pipe.LTrim(ctx, key, int64(-limit), -1)
		}
		rng = pipe.LRange(ctx, key, 0, -1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("append conversation: %w", err)
	}
	return decodeConversation(userID, rng.Val())
}

func decodeConversation(userID string, raw []string) (*ConversationLog, error) {
	log := &ConversationLog{UserID: userID, Entries: make([]ConversationEntry, 0, len(raw))}
	for _, s := range raw {
		var e ConversationEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("decode conversation entry: %w", err)
		}
		log.Entries = append(log.Entries, e)
	}
	return log, nil
}
