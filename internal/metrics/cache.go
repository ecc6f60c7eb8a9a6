package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Métricas Prometheus del cache. Viven en un paquete aparte para evitar
// ciclos de import entre el servicio de deudas y los paquetes HTTP.

var (
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "debt_cache_hits_total",
		Help: "Lecturas servidas desde el cache",
	}, []string{"entity"}) // entity: list|debt|summary

	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "debt_cache_misses_total",
		Help: "Lecturas que fueron al repositorio",
	}, []string{"entity"})

	CacheInvalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "debt_cache_invalidations_total",
		Help: "Claves de cache descartadas tras una mutación",
	}, []string{"entity"})
)

// RegisterCache registra las métricas de cache en el registry dado
// (el default si es nil).
func RegisterCache(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{CacheHits, CacheMisses, CacheInvalidations} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
