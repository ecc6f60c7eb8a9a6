// Package cache define el contrato del cache de lectura del servicio.
//
// El cache es advisory: la fuente de verdad es siempre el repositorio.
// Los backends tragan sus errores — una falla de lectura se reporta como
// miss y una falla de escritura se ignora, nunca se propaga al caller.
package cache

import "time"

// Cache es un cache clave/valor con TTL por entrada.
type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}
