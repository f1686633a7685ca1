package warehouserepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/database"
	"gowarehouse/internal/pkg/logger"
)

// Nome da constraint UNIQUE de business_unit_code (ver sql/00001_create_warehouses.sql).
const codeConstraint = "warehouses_business_unit_code_key"

const warehouseColumns = `id, business_unit_code, location, capacity, stock, created_at, archived_at, version`

// WarehouseRepository implementa domain.WarehouseStore sobre PostgreSQL.
type WarehouseRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewWarehouseRepository cria e retorna uma nova instância do Repositório de Armazéns.
func NewWarehouseRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *WarehouseRepository {
	return &WarehouseRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWarehouse(row rowScanner) (domain.Warehouse, error) {
	var (
		w          domain.Warehouse
		archivedAt sql.NullTime
	)
	err := row.Scan(
		&w.ID, &w.BusinessUnitCode, &w.Location, &w.Capacity, &w.Stock,
		&w.CreatedAt, &archivedAt, &w.Version,
	)
	if err != nil {
		return domain.Warehouse{}, err
	}
	if archivedAt.Valid {
		t := archivedAt.Time.UTC()
		w.ArchivedAt = &t
	}
	w.CreatedAt = w.CreatedAt.UTC()
	return w, nil
}

// FindByCode busca um armazém (ativo ou arquivado) pelo código de unidade de negócio.
func (r *WarehouseRepository) FindByCode(ctx context.Context, code string) (domain.Warehouse, bool, error) {
	r.logger.Debug("Iniciando FindByCode no repositório.", map[string]interface{}{"code": code})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + warehouseColumns + `
        FROM warehouses
        WHERE business_unit_code = $1`

	w, err := scanWarehouse(r.DB.QueryRowContext(ctxTimeout, query, code))
	if err == sql.ErrNoRows {
		return domain.Warehouse{}, false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar armazém no DB.", err)
		return domain.Warehouse{}, false, errors.NewDBError("Falha ao buscar armazém", err)
	}

	return w, true, nil
}

// Create insere um novo armazém com versão 1.
// A constraint UNIQUE resolve a corrida entre criadores concorrentes do mesmo código.
func (r *WarehouseRepository) Create(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	r.logger.Debug("Iniciando Create no repositório.", map[string]interface{}{"code": warehouse.BusinessUnitCode})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if warehouse.ID == "" {
		warehouse.ID = uuid.New().String()
	}
	warehouse.Version = 1

	query := `
        INSERT INTO warehouses (id, business_unit_code, location, capacity, stock, created_at, archived_at, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + warehouseColumns

	created, err := scanWarehouse(r.DB.QueryRowContext(ctxTimeout, query,
		warehouse.ID, warehouse.BusinessUnitCode, warehouse.Location, warehouse.Capacity, warehouse.Stock,
		warehouse.CreatedAt, nullTime(warehouse.ArchivedAt), warehouse.Version,
	))
	if database.IsUniqueViolation(err, codeConstraint) {
		r.logger.Warn("Violação de unicidade ao inserir armazém.", map[string]interface{}{"code": warehouse.BusinessUnitCode})
		return domain.Warehouse{}, errors.NewConflictError(errors.ErrDuplicateCode,
			fmt.Sprintf("Armazém com código %s já existe.", warehouse.BusinessUnitCode))
	}
	if err != nil {
		r.logger.Error("Falha ao inserir armazém no DB.", err)
		return domain.Warehouse{}, errors.NewDBError("Falha ao criar armazém", err)
	}

	r.logger.Info("Armazém inserido.", map[string]interface{}{"id": created.ID, "code": created.BusinessUnitCode})
	return created, nil
}

// Update grava location, capacity, stock e archived_at com controle de concorrência otimista.
// business_unit_code e created_at nunca são escritos; archived_at já definido nunca é alterado.
func (r *WarehouseRepository) Update(ctx context.Context, warehouse domain.Warehouse, expectedVersion int64) (domain.Warehouse, error) {
	r.logger.Debug("Iniciando Update no repositório.", map[string]interface{}{
		"code":             warehouse.BusinessUnitCode,
		"expected_version": expectedVersion,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE warehouses
        SET location = $1, capacity = $2, stock = $3,
            archived_at = COALESCE(archived_at, $4),
            version = version + 1
        WHERE business_unit_code = $5 AND version = $6
        RETURNING ` + warehouseColumns

	updated, err := scanWarehouse(r.DB.QueryRowContext(ctxTimeout, query,
		warehouse.Location, warehouse.Capacity, warehouse.Stock, nullTime(warehouse.ArchivedAt),
		warehouse.BusinessUnitCode, expectedVersion,
	))
	if err == sql.ErrNoRows {
		r.logger.Warn("Falha no controle de concorrência otimista (OCC). Versão do registro desatualizada.", map[string]interface{}{
			"code":             warehouse.BusinessUnitCode,
			"expected_version": expectedVersion,
		})
		return domain.Warehouse{}, errors.NewConflictError(errors.ErrConcurrentModification,
			fmt.Sprintf("O armazém %s foi modificado por outra operação. Tente novamente.", warehouse.BusinessUnitCode))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar armazém no DB.", err)
		return domain.Warehouse{}, errors.NewDBError("Falha ao atualizar armazém", err)
	}

	r.logger.Info("Armazém atualizado.", map[string]interface{}{"code": updated.BusinessUnitCode, "new_version": updated.Version})
	return updated, nil
}

// Search lista armazéns ativos com filtros, ordenação da lista branca e paginação.
func (r *WarehouseRepository) Search(ctx context.Context, filter domain.WarehouseFilter) ([]domain.Warehouse, error) {
	filter = filter.Normalize()
	r.logger.Debug("Iniciando Search no repositório.", map[string]interface{}{
		"location":  filter.Location,
		"sort_by":   filter.SortBy,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query, args := buildSearchQuery(filter)

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao executar Search query.", err)
		return nil, errors.NewDBError("Falha ao buscar armazéns", err)
	}
	defer rows.Close()

	warehouses := []domain.Warehouse{}
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear armazém na iteração de Search.", err)
			return nil, errors.NewDBError("Falha ao mapear armazéns do DB", err)
		}
		warehouses = append(warehouses, w)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de armazéns.", err)
		return nil, errors.NewDBError("Erro após iteração de armazéns", err)
	}

	return warehouses, nil
}

// buildSearchQuery monta a consulta parametrizada. filter deve estar normalizado.
func buildSearchQuery(filter domain.WarehouseFilter) (string, []interface{}) {
	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(`SELECT ` + warehouseColumns + ` FROM warehouses WHERE archived_at IS NULL`)

	if filter.Location != "" {
		args = append(args, filter.Location)
		fmt.Fprintf(&sb, " AND location = $%d", len(args))
	}
	if filter.MinCapacity != nil {
		args = append(args, *filter.MinCapacity)
		fmt.Fprintf(&sb, " AND capacity >= $%d", len(args))
	}
	if filter.MaxCapacity != nil {
		args = append(args, *filter.MaxCapacity)
		fmt.Fprintf(&sb, " AND capacity <= $%d", len(args))
	}

	column := "created_at"
	if filter.SortBy == domain.SortByCapacity {
		column = "capacity"
	}
	direction := "ASC"
	if filter.Order == domain.SortDesc {
		direction = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s, business_unit_code %s", column, direction, direction)

	args = append(args, filter.PageSize, filter.Offset())
	fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return sb.String(), args
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
