package repository

import (
	"context"
	"encoding/json"
	"math/rand"
	"music_learning_backend/internal/model"
	"music_learning_backend/pkg/logger"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizLoader loads a quiz from the primary store; nil, nil means not found.
type QuizLoader interface {
	FindByID(ctx context.Context, id string) (*model.Quiz, error)
}

// QuizCache is a read-through Redis cache in front of the quiz table.
// Quizzes are stored as JSON under quiz:{id}. A nil client disables caching.
// Redis failures degrade to reading the loader.
type QuizCache struct {
	client *redis.Client
	loader QuizLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuizCache(client *redis.Client, loader QuizLoader, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	if c.client == nil {
		return c.loader.FindByID(ctx, id)
	}

	if quiz, ok := c.get(ctx, id); ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(id, func() (interface{}, error) {
		// 可能已被其他请求回填
		if quiz, ok := c.get(ctx, id); ok {
			return quiz, nil
		}

		quiz, err := c.loader.FindByID(ctx, id)
		if err != nil || quiz == nil {
			return quiz, err
		}

		payload, err := json.Marshal(quiz)
		if err == nil {
			if err := c.client.Set(ctx, c.key(id), payload, c.ttlWithJitter()).Err(); err != nil {
				logger.Log.Warn("quiz cache write failed", zap.String("quiz_id", id), zap.Error(err))
			}
		}
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}
	quiz, _ := result.(*model.Quiz)
	if quiz == nil {
		return nil, nil
	}
	// singleflight shares one pointer between callers
	return cloneQuiz(quiz), nil
}

// Invalidate drops the cached copy after the quiz was changed.
func (c *QuizCache) Invalidate(ctx context.Context, id string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		logger.Log.Warn("quiz cache invalidate failed", zap.String("quiz_id", id), zap.Error(err))
	}
}

func (c *QuizCache) get(ctx context.Context, id string) (*model.Quiz, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("quiz cache read failed", zap.String("quiz_id", id), zap.Error(err))
		}
		return nil, false
	}
	var quiz model.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, false
	}
	return &quiz, true
}

func (c *QuizCache) key(id string) string {
	return "quiz:" + id
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func cloneQuiz(q *model.Quiz) *model.Quiz {
	out := *q
	out.Questions = make([]model.QuizQuestion, len(q.Questions))
	copy(out.Questions, q.Questions)
	return &out
}
