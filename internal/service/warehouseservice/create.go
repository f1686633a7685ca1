package warehouseservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/metrics"
)

// CreateWarehouse valida e insere um novo armazém ativo.
//
// A verificação prévia de código e a constraint de unicidade da porta de persistência
// fecham juntas a janela de corrida entre criadores concorrentes do mesmo código:
// os dois caminhos devolvem o mesmo apperror.ErrDuplicateCode.
func (s *Service) CreateWarehouse(ctx context.Context, draft domain.WarehouseDraft) (created domain.Warehouse, err error) {
	defer func() { s.metrics.Observe(metrics.OpCreate, err) }()

	draft.BusinessUnitCode = strings.TrimSpace(draft.BusinessUnitCode)
	s.logger.Debug("Iniciando criação de armazém no serviço.", map[string]interface{}{
		"code":     draft.BusinessUnitCode,
		"location": draft.Location,
		"capacity": draft.Capacity,
		"stock":    draft.Stock,
	})

	if draft.BusinessUnitCode == "" {
		return domain.Warehouse{}, apperror.NewValidationError(apperror.ErrInvalidWarehouse,
			"O código de unidade de negócio não pode ser vazio.")
	}
	if err := validateFields(draft.Location, draft.Capacity, draft.Stock); err != nil {
		return domain.Warehouse{}, err
	}

	// 1. Unicidade (inclui armazéns arquivados: o código permanece reservado)
	_, exists, err := s.store.FindByCode(ctx, draft.BusinessUnitCode)
	if err != nil {
		s.logger.Error("Falha ao verificar unicidade do código.", err)
		return domain.Warehouse{}, internal("Falha interna ao criar armazém.", err)
	}
	if exists {
		s.logger.Warn("Código de unidade de negócio já existe.", map[string]interface{}{"code": draft.BusinessUnitCode})
		return domain.Warehouse{}, duplicate(draft.BusinessUnitCode)
	}

	// 2-4. Localização, capacidade e estoque
	if err := s.checkBounds(ctx, draft.Location, draft.Capacity, draft.Stock); err != nil {
		s.logger.Warn("Falha na validação do armazém.", map[string]interface{}{"code": draft.BusinessUnitCode, "error": err.Error()})
		return domain.Warehouse{}, err
	}

	// 5-6. Persistência
	created, err = s.store.Create(ctx, domain.Warehouse{
		BusinessUnitCode: draft.BusinessUnitCode,
		Location:         draft.Location,
		Capacity:         draft.Capacity,
		Stock:            draft.Stock,
		CreatedAt:        s.now(),
	})
	if err != nil {
		if errors.Is(err, apperror.ErrDuplicateCode) {
			s.metrics.ObserveConflict(metrics.OpCreate)
			s.logger.Warn("Criação concorrente perdeu a corrida pela constraint de unicidade.", map[string]interface{}{"code": draft.BusinessUnitCode})
			return domain.Warehouse{}, duplicate(draft.BusinessUnitCode)
		}
		s.logger.Error("Falha ao criar armazém no repositório.", err)
		return domain.Warehouse{}, internal("Falha interna ao criar armazém.", err)
	}

	s.logger.Info("Armazém criado com sucesso.", map[string]interface{}{
		"id":      created.ID,
		"code":    created.BusinessUnitCode,
		"version": created.Version,
	})
	return created, nil
}

func duplicate(code string) error {
	return apperror.NewConflictError(apperror.ErrDuplicateCode,
		fmt.Sprintf("Armazém com código '%s' já existe.", code))
}
