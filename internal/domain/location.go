package domain

import "context"

// Location é um site físico com teto de capacidade para os armazéns nele instalados.
type Location struct {
	Identifier            string `json:"identifier"`
	MaxNumberOfWarehouses int    `json:"max_number_of_warehouses"`
	MaxCapacity           int    `json:"max_capacity"`
}

// LocationResolver resolve um identificador de localização.
// Identificador desconhecido devolve found=false sem erro; erro indica falha de infraestrutura.
type LocationResolver interface {
	ResolveByIdentifier(ctx context.Context, identifier string) (Location, bool, error)
}
