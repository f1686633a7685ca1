package locationrepo

import (
	"context"
	"database/sql"
	"time"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// LocationRepository resolve localizações a partir da tabela locations.
type LocationRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewLocationRepository cria e retorna uma nova instância do Repositório de Localizações.
func NewLocationRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *LocationRepository {
	return &LocationRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// ResolveByIdentifier implementa domain.LocationResolver.
func (r *LocationRepository) ResolveByIdentifier(ctx context.Context, identifier string) (domain.Location, bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT identifier, max_number_of_warehouses, max_capacity
        FROM locations
        WHERE identifier = $1`

	var l domain.Location
	err := r.DB.QueryRowContext(ctxTimeout, query, identifier).Scan(
		&l.Identifier, &l.MaxNumberOfWarehouses, &l.MaxCapacity,
	)
	if err == sql.ErrNoRows {
		r.logger.Debug("Localização desconhecida.", map[string]interface{}{"identifier": identifier})
		return domain.Location{}, false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar localização no DB.", err)
		return domain.Location{}, false, errors.NewDBError("Falha ao buscar localização", err)
	}

	return l, true, nil
}
