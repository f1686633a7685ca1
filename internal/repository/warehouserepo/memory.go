package warehouserepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/errors"
)

// MemoryRepository implementa domain.WarehouseStore em memória, com as mesmas
// garantias de unicidade e compare-and-swap do repositório PostgreSQL.
// Leituras devolvem cópias, nunca um registro parcialmente escrito.
type MemoryRepository struct {
	mu     sync.RWMutex
	byCode map[string]domain.Warehouse
}

// NewMemoryRepository cria um repositório vazio.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byCode: make(map[string]domain.Warehouse)}
}

func clone(w domain.Warehouse) domain.Warehouse {
	if w.ArchivedAt != nil {
		t := *w.ArchivedAt
		w.ArchivedAt = &t
	}
	return w
}

// FindByCode busca um armazém (ativo ou arquivado) pelo código.
func (r *MemoryRepository) FindByCode(_ context.Context, code string) (domain.Warehouse, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.byCode[code]
	if !ok {
		return domain.Warehouse{}, false, nil
	}
	return clone(w), true, nil
}

// Create insere o armazém com versão 1; código existente devolve ErrDuplicateCode.
func (r *MemoryRepository) Create(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	if err := ctx.Err(); err != nil {
		return domain.Warehouse{}, errors.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[warehouse.BusinessUnitCode]; exists {
		return domain.Warehouse{}, errors.NewConflictError(errors.ErrDuplicateCode,
			fmt.Sprintf("Armazém com código %s já existe.", warehouse.BusinessUnitCode))
	}

	if warehouse.ID == "" {
		warehouse.ID = uuid.New().String()
	}
	warehouse.Version = 1
	stored := clone(warehouse)
	r.byCode[warehouse.BusinessUnitCode] = stored
	return clone(stored), nil
}

// Update aplica o compare-and-swap sobre a versão armazenada.
func (r *MemoryRepository) Update(ctx context.Context, warehouse domain.Warehouse, expectedVersion int64) (domain.Warehouse, error) {
	if err := ctx.Err(); err != nil {
		return domain.Warehouse{}, errors.NewInternalError("Operação cancelada.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byCode[warehouse.BusinessUnitCode]
	if !ok || current.Version != expectedVersion {
		return domain.Warehouse{}, errors.NewConflictError(errors.ErrConcurrentModification,
			fmt.Sprintf("O armazém %s foi modificado por outra operação. Tente novamente.", warehouse.BusinessUnitCode))
	}

	current.Location = warehouse.Location
	current.Capacity = warehouse.Capacity
	current.Stock = warehouse.Stock
	if current.ArchivedAt == nil && warehouse.ArchivedAt != nil {
		t := *warehouse.ArchivedAt
		current.ArchivedAt = &t
	}
	current.Version++

	r.byCode[current.BusinessUnitCode] = current
	return clone(current), nil
}

// Search lista armazéns ativos com os mesmos filtros, ordenação e paginação do PostgreSQL.
func (r *MemoryRepository) Search(_ context.Context, filter domain.WarehouseFilter) ([]domain.Warehouse, error) {
	filter = filter.Normalize()

	r.mu.RLock()
	matches := make([]domain.Warehouse, 0, len(r.byCode))
	for _, w := range r.byCode {
		if w.IsArchived() {
			continue
		}
		if filter.Location != "" && w.Location != filter.Location {
			continue
		}
		if filter.MinCapacity != nil && w.Capacity < *filter.MinCapacity {
			continue
		}
		if filter.MaxCapacity != nil && w.Capacity > *filter.MaxCapacity {
			continue
		}
		matches = append(matches, clone(w))
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if filter.Order == domain.SortDesc {
			return lessBy(filter.SortBy, matches[j], matches[i])
		}
		return lessBy(filter.SortBy, matches[i], matches[j])
	})

	start := filter.Offset()
	if start >= len(matches) {
		return []domain.Warehouse{}, nil
	}
	end := start + filter.PageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], nil
}

func lessBy(field domain.SortField, a, b domain.Warehouse) bool {
	switch field {
	case domain.SortByCapacity:
		if a.Capacity != b.Capacity {
			return a.Capacity < b.Capacity
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	return a.BusinessUnitCode < b.BusinessUnitCode
}
