package locationrepo

import (
	"context"

	"gowarehouse/internal/domain"
)

// DefaultLocations é o catálogo de localizações conhecido pela operação de fulfilment.
// A migração 00002 semeia a mesma lista na tabela locations.
var DefaultLocations = []domain.Location{
	{Identifier: "ZWOLLE-001", MaxNumberOfWarehouses: 1, MaxCapacity: 40},
	{Identifier: "ZWOLLE-002", MaxNumberOfWarehouses: 2, MaxCapacity: 50},
	{Identifier: "AMSTERDAM-001", MaxNumberOfWarehouses: 5, MaxCapacity: 100},
	{Identifier: "AMSTERDAM-002", MaxNumberOfWarehouses: 3, MaxCapacity: 75},
	{Identifier: "TILBURG-001", MaxNumberOfWarehouses: 1, MaxCapacity: 40},
	{Identifier: "HELMOND-001", MaxNumberOfWarehouses: 1, MaxCapacity: 45},
	{Identifier: "EINDHOVEN-001", MaxNumberOfWarehouses: 2, MaxCapacity: 70},
	{Identifier: "VETSBY-001", MaxNumberOfWarehouses: 1, MaxCapacity: 90},
}

// Catalog resolve localizações a partir de uma lista fixa em memória.
type Catalog struct {
	byID map[string]domain.Location
}

// NewCatalog indexa as localizações informadas; sem argumentos usa DefaultLocations.
func NewCatalog(locations ...domain.Location) *Catalog {
	if len(locations) == 0 {
		locations = DefaultLocations
	}
	byID := make(map[string]domain.Location, len(locations))
	for _, l := range locations {
		byID[l.Identifier] = l
	}
	return &Catalog{byID: byID}
}

// ResolveByIdentifier implementa domain.LocationResolver.
func (c *Catalog) ResolveByIdentifier(_ context.Context, identifier string) (domain.Location, bool, error) {
	l, ok := c.byID[identifier]
	return l, ok, nil
}
