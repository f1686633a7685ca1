package errors

import (
	"errors"
	"fmt"
)

// AppError é a interface central para todos os erros customizados do núcleo de armazéns.
// Ela permite que o chamador acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "CONFLICT")
	Unwrap() error    // Expõe o tipo de falha (sentinela) ou o erro subjacente
}

// Categorias expostas ao chamador. O mapeamento para códigos numéricos pertence à camada de transporte.
const (
	CategoryValidation = "VALIDATION_ERROR"
	CategoryNotFound   = "NOT_FOUND"
	CategoryConflict   = "CONFLICT"
	CategoryInternal   = "INTERNAL_ERROR"
)

// --- Tipos de falha do ciclo de vida do armazém ---
// Use errors.Is(err, ErrX) para distinguir o tipo.

var (
	ErrInvalidWarehouse        = errors.New("dados do armazém inválidos")
	ErrDuplicateCode           = errors.New("código de unidade de negócio duplicado")
	ErrInvalidLocation         = errors.New("localização inválida")
	ErrCapacityExceedsLocation = errors.New("capacidade excede o máximo da localização")
	ErrStockExceedsCapacity    = errors.New("estoque excede a capacidade")
	ErrWarehouseNotFound       = errors.New("armazém não encontrado")
	ErrAlreadyArchived         = errors.New("armazém já arquivado")
	ErrArchivedImmutable       = errors.New("armazém arquivado não pode ser alterado")
	ErrConcurrentModification  = errors.New("modificação concorrente detectada")
)

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa entrada inválida ou violação de regra de negócio.
type ValidationError struct {
	Msg    string
	Reason error
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return CategoryValidation }
func (e *ValidationError) Unwrap() error    { return e.Reason }

// NewValidationError cria um novo erro de validação. reason pode ser nil.
func NewValidationError(reason error, msg string) AppError {
	return &ValidationError{Msg: msg, Reason: reason}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg    string
	Reason error
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return CategoryNotFound }
func (e *NotFoundError) Unwrap() error    { return e.Reason }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(reason error, msg string) AppError {
	return &NotFoundError{Msg: msg, Reason: reason}
}

// ConflictError representa um conflito de estado (código duplicado, OCC).
type ConflictError struct {
	Msg    string
	Reason error
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return CategoryConflict }
func (e *ConflictError) Unwrap() error    { return e.Reason }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(reason error, msg string) AppError {
	return &ConflictError{Msg: msg, Reason: reason}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return CategoryInternal }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro interno (falhas de infraestrutura ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// CategoryOf devolve a categoria de qualquer erro; erros não tipados são internos.
func CategoryOf(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Category()
	}
	return CategoryInternal
}

// KindOf devolve o sentinela de falha carregado por err, ou nil se não houver um.
func KindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

var kinds = []error{
	ErrInvalidWarehouse,
	ErrDuplicateCode,
	ErrInvalidLocation,
	ErrCapacityExceedsLocation,
	ErrStockExceedsCapacity,
	ErrWarehouseNotFound,
	ErrAlreadyArchived,
	ErrArchivedImmutable,
	ErrConcurrentModification,
}
