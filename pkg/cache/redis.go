package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"quizprep-server/internal/models"
)

const (
	resultTTL   = 24 * time.Hour
	subjectsKey = "subjects"
)

type RedisCache struct {
    client *redis.Client
    ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
    client := redis.NewClient(&redis.Options{
        Addr: addr,
    })
    return &RedisCache{
        client: client,
        ctx:    context.Background(),
    }
}

// SetResult caches a quiz result by id. Results are immutable, so a stale
// entry can never disagree with the database.
func (c *RedisCache) SetResult(result *models.QuizResult) error {
    data, err := json.Marshal(result)
    if err != nil {
        return err
    }

    key := "result:" + result.ID
    return c.client.Set(c.ctx, key, data, resultTTL).Err()
}

func (c *RedisCache) GetResult(id string) (*models.QuizResult, error) {
    key := "result:" + id
    data, err := c.client.Get(c.ctx, key).Bytes()
    if err != nil {
        return nil, err
    }

    var result models.QuizResult
    err = json.Unmarshal(data, &result)
    return &result, err
}

func (c *RedisCache) SetSubjects(subjects []string) error {
    data, err := json.Marshal(subjects)
    if err != nil {
        return err
    }
    return c.client.Set(c.ctx, subjectsKey, data, time.Hour).Err()
}

func (c *RedisCache) GetSubjects() ([]string, error) {
    data, err := c.client.Get(c.ctx, subjectsKey).Bytes()
    if err != nil {
        return nil, err
    }

    var subjects []string
    err = json.Unmarshal(data, &subjects)
    return subjects, err
}

// InvalidateSubjects drops the cached subject list after any question write.
func (c *RedisCache) InvalidateSubjects() error {
    return c.client.Del(c.ctx, subjectsKey).Err()
}
