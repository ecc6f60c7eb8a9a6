// Package redis implementa cache.Cache sobre go-redis.
// Los errores de red se tratan como miss (Get) o se ignoran (Set/Delete):
// el cache nunca hace fallar una operación del servicio.
package redis

import (
	"context"
	"time"

	rdb "github.com/redis/go-redis/v9"

	"github.com/jefer15/debt-management-back/internal/cache"
)

type Cache struct {
	c      *rdb.Client
	prefix string
}

// New crea un cache redis. prefix (opcional) separa namespaces
// cuando la instancia se comparte con otros usos.
func New(addr string, db int, prefix string) cache.Cache {
	return &Cache{
		c:      rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		prefix: prefix,
	}
}

// NewWithClient envuelve un cliente redis ya construido (tests, pooling compartido).
func NewWithClient(c *rdb.Client, prefix string) cache.Cache {
	return &Cache{c: c, prefix: prefix}
}

func (r *Cache) Get(k string) ([]byte, bool) {
	b, err := r.c.Get(context.Background(), r.prefix+k).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *Cache) Set(k string, v []byte, ttl time.Duration) {
	_ = r.c.Set(context.Background(), r.prefix+k, v, ttl).Err()
}

func (r *Cache) Delete(k string) { _ = r.c.Del(context.Background(), r.prefix+k).Err() }
