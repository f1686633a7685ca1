package warehouseservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/metrics"
)

// Service implementa as operações do ciclo de vida do armazém sobre as portas
// domain.WarehouseStore e domain.LocationResolver.
// Não guarda estado mutável: é seguro para uso concorrente.
type Service struct {
	store     domain.WarehouseStore
	locations domain.LocationResolver
	logger    logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option configura o Service.
type Option func(*Service)

// WithClock substitui o relógio usado para createdAt/archivedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics registra o resultado de cada operação nos contadores informados.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService cria e retorna uma nova instância do Serviço de Armazéns.
func NewService(store domain.WarehouseStore, locations domain.LocationResolver, logger logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		locations: locations,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetWarehouse busca um armazém (ativo ou arquivado) pelo código de unidade de negócio.
func (s *Service) GetWarehouse(ctx context.Context, code string) (domain.Warehouse, error) {
	s.logger.Debug("Iniciando busca de armazém por código no serviço.", map[string]interface{}{"code": code})

	warehouse, err := s.findExisting(ctx, code)
	if err != nil {
		return domain.Warehouse{}, err
	}
	return warehouse, nil
}

// SearchWarehouses lista armazéns ativos segundo o filtro (normalizado antes da consulta).
func (s *Service) SearchWarehouses(ctx context.Context, filter domain.WarehouseFilter) ([]domain.Warehouse, error) {
	filter = filter.Normalize()
	s.logger.Debug("Iniciando busca de armazéns no serviço.", map[string]interface{}{
		"location":  filter.Location,
		"sort_by":   filter.SortBy,
		"order":     filter.Order,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})

	if filter.MinCapacity != nil && filter.MaxCapacity != nil && *filter.MinCapacity > *filter.MaxCapacity {
		return nil, apperror.NewValidationError(nil, "A capacidade mínima não pode ser maior que a máxima.")
	}

	warehouses, err := s.store.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Falha ao buscar armazéns no repositório.", err)
		return nil, internal("Falha interna ao buscar armazéns.", err)
	}

	s.logger.Debug("Busca de armazéns concluída.", map[string]interface{}{"count": len(warehouses)})
	return warehouses, nil
}

// findExisting carrega o armazém ou devolve ErrWarehouseNotFound.
func (s *Service) findExisting(ctx context.Context, code string) (domain.Warehouse, error) {
	warehouse, found, err := s.store.FindByCode(ctx, code)
	if err != nil {
		s.logger.Error("Falha ao buscar armazém no repositório.", err)
		return domain.Warehouse{}, internal("Falha interna ao buscar armazém.", err)
	}
	if !found {
		return domain.Warehouse{}, apperror.NewNotFoundError(apperror.ErrWarehouseNotFound,
			fmt.Sprintf("Armazém com código '%s' não existe.", code))
	}
	return warehouse, nil
}

// checkBounds valida localização, capacidade e estoque contra o teto da localização.
// Limites são inclusivos.
func (s *Service) checkBounds(ctx context.Context, locationID string, capacity, stock int) error {
	location, found, err := s.locations.ResolveByIdentifier(ctx, locationID)
	if err != nil {
		s.logger.Error("Falha ao resolver localização.", err)
		return internal("Falha interna ao resolver localização.", err)
	}
	if !found {
		return apperror.NewValidationError(apperror.ErrInvalidLocation,
			fmt.Sprintf("Localização '%s' não é válida.", locationID))
	}

	if capacity > location.MaxCapacity {
		return apperror.NewValidationError(apperror.ErrCapacityExceedsLocation,
			fmt.Sprintf("Capacidade do armazém (%d) excede a capacidade máxima da localização (%d).", capacity, location.MaxCapacity))
	}
	if stock > capacity {
		return apperror.NewValidationError(apperror.ErrStockExceedsCapacity,
			fmt.Sprintf("Estoque do armazém (%d) excede a capacidade do armazém (%d).", stock, capacity))
	}
	return nil
}

// validateFields aplica as regras de formato comuns a criação e substituição.
func validateFields(locationID string, capacity, stock int) error {
	if strings.TrimSpace(locationID) == "" {
		return apperror.NewValidationError(apperror.ErrInvalidLocation, "A localização do armazém não pode ser vazia.")
	}
	if capacity < 0 {
		return apperror.NewValidationError(apperror.ErrInvalidWarehouse, "A capacidade do armazém não pode ser negativa.")
	}
	if stock < 0 {
		return apperror.NewValidationError(apperror.ErrInvalidWarehouse, "O estoque do armazém não pode ser negativo.")
	}
	return nil
}

// internal preserva AppErrors já tipados e encapsula os demais como InternalError.
func internal(msg string, err error) error {
	if _, ok := err.(apperror.AppError); ok {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
