package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// CachedProvider decorates an EmbeddingProvider with a Redis lookaside
// cache keyed by a hash of the input text. Cache failures are non-fatal:
// the request falls through to the wrapped provider.
type CachedProvider struct {
	inner EmbeddingProvider
	rdb   *redis.Client
}

func NewCachedProvider(inner EmbeddingProvider, rdb *redis.Client) EmbeddingProvider {
	if rdb == nil {
		return inner
	}
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
	}
}

func (p *CachedProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	ctx := context.Background()
	key := cacheKey(text, taskType)

	if raw, err := p.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached EmbeddingResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	resp, err := p.inner.Generate(text, taskType)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(resp); err == nil {
		// Best effort; a failed SET must not fail the request.
		p.rdb.Set(ctx, key, raw, cacheTTL)
	}

	return resp, nil
}

func cacheKey(text, taskType string) string {
	sum := sha256.Sum256([]byte(taskType + "\x00" + text))
	return fmt.Sprintf("embedding:%x", sum)
}
