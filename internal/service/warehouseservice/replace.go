package warehouseservice

import (
	"context"
	"errors"
	"fmt"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/metrics"
)

// ReplaceWarehouse sobrescreve location, capacity e stock de um armazém ativo.
// businessUnitCode, createdAt e archivedAt são preservados. A escrita é condicionada
// à versão lida, de modo que substituições e arquivamentos concorrentes nunca se perdem.
func (s *Service) ReplaceWarehouse(ctx context.Context, code string, replacement domain.WarehouseReplacement) (replaced domain.Warehouse, err error) {
	defer func() { s.metrics.Observe(metrics.OpReplace, err) }()

	s.logger.Debug("Iniciando substituição de armazém no serviço.", map[string]interface{}{
		"code":     code,
		"location": replacement.Location,
		"capacity": replacement.Capacity,
		"stock":    replacement.Stock,
	})

	existing, err := s.findExisting(ctx, code)
	if err != nil {
		return domain.Warehouse{}, err
	}

	// Arquivado nunca é substituível, independentemente dos novos campos.
	if existing.IsArchived() {
		s.logger.Warn("Tentativa de substituir armazém arquivado.", map[string]interface{}{"code": code})
		return domain.Warehouse{}, apperror.NewValidationError(apperror.ErrArchivedImmutable,
			fmt.Sprintf("Armazém com código '%s' está arquivado e não pode ser substituído.", code))
	}

	if err := validateFields(replacement.Location, replacement.Capacity, replacement.Stock); err != nil {
		return domain.Warehouse{}, err
	}
	if err := s.checkBounds(ctx, replacement.Location, replacement.Capacity, replacement.Stock); err != nil {
		s.logger.Warn("Falha na validação da substituição.", map[string]interface{}{"code": code, "error": err.Error()})
		return domain.Warehouse{}, err
	}

	expectedVersion := existing.Version
	existing.Location = replacement.Location
	existing.Capacity = replacement.Capacity
	existing.Stock = replacement.Stock

	replaced, err = s.store.Update(ctx, existing, expectedVersion)
	if err != nil {
		if errors.Is(err, apperror.ErrConcurrentModification) {
			s.metrics.ObserveConflict(metrics.OpReplace)
			s.logger.Warn("Conflito de versão ao substituir armazém.", map[string]interface{}{"code": code, "expected_version": expectedVersion})
			return domain.Warehouse{}, err
		}
		s.logger.Error("Falha ao substituir armazém no repositório.", err)
		return domain.Warehouse{}, internal("Falha interna ao substituir armazém.", err)
	}

	s.logger.Info("Armazém substituído com sucesso.", map[string]interface{}{"code": code, "version": replaced.Version})
	return replaced, nil
}
