package domain

import (
	"context"
	"time"
)

// Warehouse representa uma unidade de armazém identificada pelo código de unidade de negócio.
// ArchivedAt nulo significa ativo; uma vez preenchido, o armazém é somente leitura.
// Version é o token de concorrência otimista (OCC), incrementado a cada mutação persistida.
type Warehouse struct {
	ID               string     `json:"id"`
	BusinessUnitCode string     `json:"business_unit_code"`
	Location         string     `json:"location"`
	Capacity         int        `json:"capacity"`
	Stock            int        `json:"stock"`
	CreatedAt        time.Time  `json:"created_at"`
	ArchivedAt       *time.Time `json:"archived_at,omitempty"`
	Version          int64      `json:"version"`
}

// IsArchived indica se o armazém está no estado terminal.
func (w Warehouse) IsArchived() bool {
	return w.ArchivedAt != nil
}

// WarehouseDraft é o payload de entrada para a criação de um armazém.
// Stock ausente vale 0.
type WarehouseDraft struct {
	BusinessUnitCode string `json:"business_unit_code"`
	Location         string `json:"location"`
	Capacity         int    `json:"capacity"`
	Stock            int    `json:"stock"`
}

// WarehouseReplacement contém os campos mutáveis sobrescritos por uma substituição.
type WarehouseReplacement struct {
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	Stock    int    `json:"stock"`
}

// --- Filtros, Ordenação e Paginação ---

// SortField define as colunas permitidas para ordenação.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByCapacity  SortField = "capacity"
)

// SortOrder define a direção da ordenação.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// WarehouseFilter define os parâmetros de busca e paginação de armazéns ativos.
// Page começa em 0. MinCapacity/MaxCapacity são inclusivos quando definidos.
type WarehouseFilter struct {
	Location    string
	MinCapacity *int
	MaxCapacity *int
	SortBy      SortField
	Order       SortOrder
	Page        int
	PageSize    int
}

// Normalize aplica a lista branca de ordenação e limita a paginação a [1, MaxPageSize].
func (f WarehouseFilter) Normalize() WarehouseFilter {
	if f.SortBy != SortByCapacity {
		f.SortBy = SortByCreatedAt
	}
	if f.Order != SortDesc {
		f.Order = SortAsc
	}
	if f.Page < 0 {
		f.Page = 0
	}
	switch {
	case f.PageSize == 0:
		f.PageSize = DefaultPageSize
	case f.PageSize < 1:
		f.PageSize = 1
	case f.PageSize > MaxPageSize:
		f.PageSize = MaxPageSize
	}
	return f
}

// Offset devolve a quantidade de registros a pular para a página atual.
func (f WarehouseFilter) Offset() int {
	return f.Page * f.PageSize
}

// --- Interfaces de Contrato ---

// WarehouseStore é a porta de persistência que o núcleo consome.
// Create deve sinalizar violação de unicidade como apperror.ErrDuplicateCode.
// Update é um compare-and-swap: só grava se a versão armazenada for expectedVersion,
// caso contrário devolve apperror.ErrConcurrentModification.
type WarehouseStore interface {
	FindByCode(ctx context.Context, code string) (Warehouse, bool, error)
	Create(ctx context.Context, warehouse Warehouse) (Warehouse, error)
	Update(ctx context.Context, warehouse Warehouse, expectedVersion int64) (Warehouse, error)
	Search(ctx context.Context, filter WarehouseFilter) ([]Warehouse, error)
}
