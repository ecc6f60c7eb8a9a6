// Package repository define los tipos del dominio y los contratos de
// persistencia. Las implementaciones concretas viven en internal/store.
//
// Los repositorios son adaptadores de almacenamiento puros: no cachean,
// no validan reglas de negocio. Eso es responsabilidad de los services.
package repository
