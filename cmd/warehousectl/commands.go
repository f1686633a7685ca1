package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"gowarehouse/config"
	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
)

// warehouseService é o subconjunto do serviço usado pelos comandos.
type warehouseService interface {
	CreateWarehouse(ctx context.Context, draft domain.WarehouseDraft) (domain.Warehouse, error)
	GetWarehouse(ctx context.Context, code string) (domain.Warehouse, error)
	ArchiveWarehouse(ctx context.Context, code string) (domain.Warehouse, error)
	ReplaceWarehouse(ctx context.Context, code string, replacement domain.WarehouseReplacement) (domain.Warehouse, error)
	SearchWarehouses(ctx context.Context, filter domain.WarehouseFilter) ([]domain.Warehouse, error)
}

// usageError indica argumentos de linha de comando inválidos.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// run executa um comando e escreve o resultado em JSON em out.
func run(ctx context.Context, svc warehouseService, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return &usageError{msg: "nenhum comando informado"}
	}

	command, rest := args[0], args[1:]
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	code := fs.String("code", "", "código de unidade de negócio")
	location := fs.String("location", "", "identificador da localização")
	capacity := fs.Int("capacity", 0, "capacidade do armazém")
	stock := fs.Int("stock", 0, "estoque do armazém")

	var result interface{}
	switch command {
	case "create":
		if err := parse(fs, rest); err != nil {
			return err
		}
		w, err := svc.CreateWarehouse(ctx, domain.WarehouseDraft{
			BusinessUnitCode: *code,
			Location:         *location,
			Capacity:         *capacity,
			Stock:            *stock,
		})
		if err != nil {
			return err
		}
		result = w

	case "get":
		if err := parseWithCode(fs, rest, code); err != nil {
			return err
		}
		w, err := svc.GetWarehouse(ctx, *code)
		if err != nil {
			return err
		}
		result = w

	case "archive":
		if err := parseWithCode(fs, rest, code); err != nil {
			return err
		}
		w, err := svc.ArchiveWarehouse(ctx, *code)
		if err != nil {
			return err
		}
		result = w

	case "replace":
		if err := parseWithCode(fs, rest, code); err != nil {
			return err
		}
		w, err := svc.ReplaceWarehouse(ctx, *code, domain.WarehouseReplacement{
			Location: *location,
			Capacity: *capacity,
			Stock:    *stock,
		})
		if err != nil {
			return err
		}
		result = w

	case "search":
		minCapacity := fs.Int("min-capacity", -1, "capacidade mínima (inclusiva)")
		maxCapacity := fs.Int("max-capacity", -1, "capacidade máxima (inclusiva)")
		sortBy := fs.String("sort", string(domain.SortByCreatedAt), "campo de ordenação: capacity ou createdAt")
		order := fs.String("order", string(domain.SortAsc), "direção: asc ou desc")
		page := fs.Int("page", 0, "página (começa em 0)")
		pageSize := fs.Int("page-size", cfg.SearchDefaultPageSize, "tamanho da página")
		if err := parse(fs, rest); err != nil {
			return err
		}

		filter := domain.WarehouseFilter{
			Location: *location,
			SortBy:   domain.SortField(*sortBy),
			Order:    domain.SortOrder(*order),
			Page:     *page,
			PageSize: *pageSize,
		}
		if *minCapacity >= 0 {
			filter.MinCapacity = minCapacity
		}
		if *maxCapacity >= 0 {
			filter.MaxCapacity = maxCapacity
		}

		warehouses, err := svc.SearchWarehouses(ctx, filter)
		if err != nil {
			return err
		}
		if warehouses == nil {
			warehouses = []domain.Warehouse{}
		}
		result = warehouses

	default:
		return &usageError{msg: fmt.Sprintf("comando desconhecido: %s", command)}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return &usageError{msg: fmt.Sprintf("%s: %v", fs.Name(), err)}
	}
	return nil
}

func parseWithCode(fs *flag.FlagSet, args []string, code *string) error {
	if err := parse(fs, args); err != nil {
		return err
	}
	if *code == "" {
		return &usageError{msg: fmt.Sprintf("%s: -code é obrigatório", fs.Name())}
	}
	return nil
}

// exitCode traduz a categoria do erro em código de saída do processo.
func exitCode(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return 2
	}
	switch apperror.CategoryOf(err) {
	case apperror.CategoryValidation:
		return 3
	case apperror.CategoryNotFound:
		return 4
	case apperror.CategoryConflict:
		return 5
	default:
		return 1
	}
}
