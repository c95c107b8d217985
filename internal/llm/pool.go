package llm

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Pool hands out providers for configs, constructing each distinct
// provider/model/baseURL combination at most once. Safe for concurrent use.
type Pool struct {
	mu        sync.Mutex
	providers *gocache.Cache
}

// NewPool creates an empty provider pool.
func NewPool() *Pool {
	return &Pool{
		providers: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// Get returns the provider for the given config, constructing it on first use.
// A nil provider (provider name "") is returned as (nil, nil); callers treat
// that as heuristics-only mode.
func (p *Pool) Get(config Config) (Provider, error) {
	key := config.Key()

	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, found := p.providers.Get(key); found {
		if cached == nil {
			return nil, nil
		}
		return cached.(Provider), nil
	}

	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	if provider == nil {
		p.providers.Set(key, nil, gocache.NoExpiration)
		return nil, nil
	}

	p.providers.Set(key, provider, gocache.NoExpiration)
	return provider, nil
}
