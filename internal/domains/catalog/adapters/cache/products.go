package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

const (
	defaultLocalSize = 1024
	defaultTTL       = 5 * time.Minute
	redisKeyPrefix   = "catalog:product:"
)

// ProductRepository is a read-through cache in front of the product store.
// Lookups are served from an in-process expirable LRU, then from Redis when
// configured, then from the inner repository. Writes invalidate both layers
// synchronously; a failed Redis invalidation is logged and ignored so the
// store stays the source of truth.
type ProductRepository struct {
	inner  ports.ProductRepository
	local  *expirable.LRU[uuid.UUID, *domain.Product]
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*ProductRepository)

// WithRedis adds the distributed layer. A nil client leaves it disabled.
func WithRedis(client *redis.Client) Option {
	return func(r *ProductRepository) {
		r.redis = client
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(r *ProductRepository) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *ProductRepository) {
		r.logger = logger
	}
}

// NewProductRepository wraps inner with the caching layers.
func NewProductRepository(inner ports.ProductRepository, opts ...Option) *ProductRepository {
	r := &ProductRepository{inner: inner, ttl: defaultTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.local = expirable.NewLRU[uuid.UUID, *domain.Product](defaultLocalSize, nil, r.ttl)
	return r
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.inner.Create(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, product.ID)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.inner.Update(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, product.ID)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if product, ok := r.lookup(ctx, id); ok {
		return product, nil
	}
	product, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, product)
	return product, nil
}

func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter, sort ports.Sort, page pagination.Request) ([]*domain.Product, int64, error) {
	return r.inner.List(ctx, filter, sort, page)
}

// ResolveActive serves cached sellable products and batches the misses into a
// single inner lookup.
func (r *ProductRepository) ResolveActive(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	var resolved []*domain.Product
	var misses []uuid.UUID
	for _, id := range ids {
		product, ok := r.lookup(ctx, id)
		if ok && product.Sellable() {
			resolved = append(resolved, product)
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return resolved, nil
	}
	fetched, err := r.inner.ResolveActive(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, product := range fetched {
		r.store(ctx, product)
		resolved = append(resolved, product)
	}
	return resolved, nil
}

func (r *ProductRepository) lookup(ctx context.Context, id uuid.UUID) (*domain.Product, bool) {
	if product, ok := r.local.Get(id); ok {
		return product, true
	}
	if r.redis == nil {
		return nil, false
	}
	payload, err := r.redis.Get(ctx, redisKeyPrefix+id.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logWarn(ctx, "redis product lookup failed", err)
		}
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		r.logWarn(ctx, "cached product payload is corrupt", err)
		return nil, false
	}
	r.local.Add(id, &product)
	return &product, true
}

func (r *ProductRepository) store(ctx context.Context, product *domain.Product) {
	r.local.Add(product.ID, product)
	if r.redis == nil {
		return
	}
	payload, err := json.Marshal(product)
	if err != nil {
		r.logWarn(ctx, "product cache marshal failed", err)
		return
	}
	if err := r.redis.Set(ctx, redisKeyPrefix+product.ID.String(), payload, jitteredTTL(r.ttl)).Err(); err != nil {
		r.logWarn(ctx, "redis product cache write failed", err)
	}
}

func (r *ProductRepository) invalidate(ctx context.Context, id uuid.UUID) {
	r.local.Remove(id)
	if r.redis == nil {
		return
	}
	if err := r.redis.Del(ctx, redisKeyPrefix+id.String()).Err(); err != nil {
		r.logWarn(ctx, "redis product cache invalidation failed", err)
	}
}

// jitteredTTL spreads expirations up to 10% past the base TTL so a burst of
// cached reads does not expire at once.
func jitteredTTL(base time.Duration) time.Duration {
	return base + time.Duration(rand.Int63n(int64(base)/10+1))
}

func (r *ProductRepository) logWarn(ctx context.Context, msg string, err error) {
	if r.logger == nil {
		return
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, msg, slog.String("error", err.Error()))
}
