package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperror "gowarehouse/internal/errors"
)

// Operações do ciclo de vida rotuladas nas métricas.
const (
	OpCreate  = "create"
	OpArchive = "archive"
	OpReplace = "replace"
)

// Metrics agrupa os contadores das operações de armazém.
type Metrics struct {
	// Operations conta operações concluídas.
	// Labels: operation, outcome (success | failure)
	Operations *prometheus.CounterVec

	// Failures conta falhas por tipo.
	// Labels: operation, kind
	Failures *prometheus.CounterVec

	// Conflicts conta rejeições na fronteira de persistência (OCC e unicidade).
	// Labels: operation
	Conflicts *prometheus.CounterVec
}

// NewMetrics cria e registra os contadores. registry nil usa o registrador padrão.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warehouse_operations_total",
				Help: "Total de operações de armazém por resultado",
			},
			[]string{"operation", "outcome"},
		),
		Failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warehouse_operation_failures_total",
				Help: "Total de falhas de operações de armazém por tipo",
			},
			[]string{"operation", "kind"},
		),
		Conflicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warehouse_persistence_conflicts_total",
				Help: "Total de conflitos detectados na persistência (versão ou código duplicado)",
			},
			[]string{"operation"},
		),
	}
}

// Observe registra o resultado de uma operação. Seguro para receptor nil.
func (m *Metrics) Observe(operation string, err error) {
	if m == nil {
		return
	}
	if err == nil {
		m.Operations.WithLabelValues(operation, "success").Inc()
		return
	}

	m.Operations.WithLabelValues(operation, "failure").Inc()
	m.Failures.WithLabelValues(operation, KindLabel(err)).Inc()
}

// ObserveConflict registra um conflito devolvido pela porta de persistência.
func (m *Metrics) ObserveConflict(operation string) {
	if m == nil {
		return
	}
	m.Conflicts.WithLabelValues(operation).Inc()
}

var kindLabels = map[error]string{
	apperror.ErrInvalidWarehouse:        "invalid_warehouse",
	apperror.ErrDuplicateCode:           "duplicate_code",
	apperror.ErrInvalidLocation:         "invalid_location",
	apperror.ErrCapacityExceedsLocation: "capacity_exceeds_location",
	apperror.ErrStockExceedsCapacity:    "stock_exceeds_capacity",
	apperror.ErrWarehouseNotFound:       "not_found",
	apperror.ErrAlreadyArchived:         "already_archived",
	apperror.ErrArchivedImmutable:       "archived_immutable",
	apperror.ErrConcurrentModification:  "concurrent_modification",
}

// KindLabel devolve o rótulo do tipo de falha; erros sem tipo viram "internal".
func KindLabel(err error) string {
	if label, ok := kindLabels[apperror.KindOf(err)]; ok {
		return label
	}
	return "internal"
}
