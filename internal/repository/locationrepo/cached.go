package locationrepo

import (
	"context"
	"encoding/json"
	"time"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/pkg/cache"
	"gowarehouse/internal/pkg/logger"
)

// CachedResolver aplica a estratégia cache-aside sobre outro LocationResolver.
// Falhas do cache nunca interrompem a resolução: o resolver de origem é sempre a fonte da verdade.
// Identificadores desconhecidos não são cacheados.
type CachedResolver struct {
	next   domain.LocationResolver
	cache  cache.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedResolver envolve next com o cache informado.
func NewCachedResolver(next domain.LocationResolver, cacheClient cache.Client, ttl time.Duration, logger logger.Logger) *CachedResolver {
	return &CachedResolver{
		next:   next,
		cache:  cacheClient,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(identifier string) string {
	return "location:" + identifier
}

// ResolveByIdentifier implementa domain.LocationResolver.
func (c *CachedResolver) ResolveByIdentifier(ctx context.Context, identifier string) (domain.Location, bool, error) {
	key := cacheKey(identifier)

	// --- 1. Leitura do cache ---
	cached, err := c.cache.Get(ctx, key)
	if err == nil {
		var l domain.Location
		if json.Unmarshal([]byte(cached), &l) == nil {
			return l, true, nil
		}
		c.logger.Warn("Entrada de cache de localização corrompida; ignorando.", map[string]interface{}{"key": key})
	} else if err != cache.ErrCacheMiss {
		c.logger.Warn("Falha ao ler cache de localização.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	// --- 2. Resolver de origem ---
	l, found, err := c.next.ResolveByIdentifier(ctx, identifier)
	if err != nil || !found {
		return l, found, err
	}

	// --- 3. Escrita no cache ---
	payload, err := json.Marshal(l)
	if err == nil {
		if setErr := c.cache.Set(ctx, key, payload, c.ttl); setErr != nil {
			c.logger.Warn("Falha ao gravar cache de localização.", map[string]interface{}{"key": key, "error": setErr.Error()})
		}
	}

	return l, true, nil
}
