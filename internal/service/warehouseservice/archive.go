package warehouseservice

import (
	"context"
	"errors"
	"fmt"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/metrics"
)

// ArchiveWarehouse leva um armazém ativo ao estado arquivado (terminal).
// Arquivar duas vezes é erro (ErrAlreadyArchived), não sucesso idempotente.
// Um conflito de versão é devolvido ao chamador sem nova tentativa.
func (s *Service) ArchiveWarehouse(ctx context.Context, code string) (archived domain.Warehouse, err error) {
	defer func() { s.metrics.Observe(metrics.OpArchive, err) }()

	s.logger.Debug("Iniciando arquivamento de armazém no serviço.", map[string]interface{}{"code": code})

	existing, err := s.findExisting(ctx, code)
	if err != nil {
		return domain.Warehouse{}, err
	}

	if existing.IsArchived() {
		s.logger.Warn("Armazém já arquivado.", map[string]interface{}{"code": code})
		return domain.Warehouse{}, apperror.NewValidationError(apperror.ErrAlreadyArchived,
			fmt.Sprintf("Armazém com código '%s' já está arquivado.", code))
	}

	expectedVersion := existing.Version
	archivedAt := s.now()
	existing.ArchivedAt = &archivedAt

	archived, err = s.store.Update(ctx, existing, expectedVersion)
	if err != nil {
		if errors.Is(err, apperror.ErrConcurrentModification) {
			s.metrics.ObserveConflict(metrics.OpArchive)
			s.logger.Warn("Conflito de versão ao arquivar armazém.", map[string]interface{}{"code": code, "expected_version": expectedVersion})
			return domain.Warehouse{}, err
		}
		s.logger.Error("Falha ao arquivar armazém no repositório.", err)
		return domain.Warehouse{}, internal("Falha interna ao arquivar armazém.", err)
	}

	s.logger.Info("Armazém arquivado com sucesso.", map[string]interface{}{"code": code, "version": archived.Version})
	return archived, nil
}
