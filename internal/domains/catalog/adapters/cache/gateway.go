// Package cache decorates the catalog gateway with a redis read-through
// cache. Reads are served from redis when possible; every write invalidates.
// A failing redis never fails the request, the call falls through to the
// remote gateway.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orderdesk/orderdesk/internal/domains/catalog/domain"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/ports"
)

const (
	listKey    = "catalog:products:all"
	productKey = "catalog:product:"
	defaultTTL = 5 * time.Minute
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway caches catalog reads in redis in front of another gateway.
type Gateway struct {
	next   ports.Gateway
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the cache gateway.
type Option func(*Gateway)

// WithTTL overrides the cache entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(g *Gateway) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGateway wraps a gateway with the redis cache.
func NewGateway(next ports.Gateway, client *redis.Client, opts ...Option) *Gateway {
	g := &Gateway{
		next:   next,
		redis:  client,
		ttl:    defaultTTL,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// ListProducts serves the full catalog from cache when present.
func (g *Gateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	data, err := g.redis.Get(ctx, listKey).Bytes()
	if err == nil {
		var products []domain.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		g.logger.Warn("dropping undecodable cached product list", slog.String("key", listKey))
	} else if !errors.Is(err, redis.Nil) {
		g.logger.Warn("redis read failed, falling through", slog.String("error", err.Error()))
	}

	products, err := g.next.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	g.store(ctx, listKey, products)
	return products, nil
}

// GetProduct serves one product from cache when present.
func (g *Gateway) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	key := productKey + id
	data, err := g.redis.Get(ctx, key).Bytes()
	if err == nil {
		var product domain.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return product, nil
		}
		g.logger.Warn("dropping undecodable cached product", slog.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		g.logger.Warn("redis read failed, falling through", slog.String("error", err.Error()))
	}

	product, err := g.next.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	g.store(ctx, key, product)
	return product, nil
}

// CreateProduct writes through and invalidates the list.
func (g *Gateway) CreateProduct(ctx context.Context, draft domain.Draft) (domain.Product, error) {
	product, err := g.next.CreateProduct(ctx, draft)
	if err != nil {
		return domain.Product{}, err
	}
	g.invalidate(ctx, listKey)
	return product, nil
}

// UpdateProduct writes through and invalidates the product and the list.
func (g *Gateway) UpdateProduct(ctx context.Context, id string, draft domain.Draft) (domain.Product, error) {
	product, err := g.next.UpdateProduct(ctx, id, draft)
	if err != nil {
		return domain.Product{}, err
	}
	g.invalidate(ctx, productKey+id, listKey)
	return product, nil
}

// DeleteProduct writes through and invalidates the product and the list.
func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	if err := g.next.DeleteProduct(ctx, id); err != nil {
		return err
	}
	g.invalidate(ctx, productKey+id, listKey)
	return nil
}

// AdjustStock writes through and invalidates the product and the list.
func (g *Gateway) AdjustStock(ctx context.Context, id string, delta int64) (domain.Product, error) {
	product, err := g.next.AdjustStock(ctx, id, delta)
	if err != nil {
		return domain.Product{}, err
	}
	g.invalidate(ctx, productKey+id, listKey)
	return product, nil
}

func (g *Gateway) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		g.logger.Warn("failed to encode cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := g.redis.Set(ctx, key, data, g.ttl).Err(); err != nil {
		g.logger.Warn("redis write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (g *Gateway) invalidate(ctx context.Context, keys ...string) {
	if err := g.redis.Del(ctx, keys...).Err(); err != nil {
		g.logger.Warn("redis invalidation failed", slog.String("error", err.Error()))
	}
}
