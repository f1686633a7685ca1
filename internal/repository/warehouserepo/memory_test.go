package warehouserepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/repository/warehouserepo"
)

func seed(t *testing.T, repo *warehouserepo.MemoryRepository, code, location string, capacity int, createdAt time.Time) domain.Warehouse {
	t.Helper()
	w, err := repo.Create(context.Background(), domain.Warehouse{
		BusinessUnitCode: code,
		Location:         location,
		Capacity:         capacity,
		CreatedAt:        createdAt,
	})
	require.NoError(t, err)
	return w
}

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	repo := warehouserepo.NewMemoryRepository()
	ctx := context.Background()

	created := seed(t, repo, "MWH.001", "ZWOLLE-001", 40, time.Now().UTC())
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(1), created.Version)

	found, ok, err := repo.FindByCode(ctx, "MWH.001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, created, found)

	_, ok, err = repo.FindByCode(ctx, "MWH.404")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Create(ctx, domain.Warehouse{BusinessUnitCode: "MWH.001"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateCode)
}

func TestMemoryRepository_UpdateIsCompareAndSwap(t *testing.T) {
	repo := warehouserepo.NewMemoryRepository()
	ctx := context.Background()
	created := seed(t, repo, "MWH.001", "ZWOLLE-001", 40, time.Now().UTC())

	changed := created
	changed.Capacity = 30
	updated, err := repo.Update(ctx, changed, created.Version)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, 30, updated.Capacity)

	stale := created
	stale.Capacity = 35
	_, err = repo.Update(ctx, stale, created.Version)
	assert.ErrorIs(t, err, apperror.ErrConcurrentModification)

	current, _, _ := repo.FindByCode(ctx, "MWH.001")
	assert.Equal(t, 30, current.Capacity)
}

func TestMemoryRepository_ArchivedAtNeverClearedOrChanged(t *testing.T) {
	repo := warehouserepo.NewMemoryRepository()
	ctx := context.Background()
	created := seed(t, repo, "MWH.001", "ZWOLLE-001", 40, time.Now().UTC())

	archivedAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	toArchive := created
	toArchive.ArchivedAt = &archivedAt
	archived, err := repo.Update(ctx, toArchive, created.Version)
	require.NoError(t, err)

	later := archivedAt.Add(time.Hour)
	rewrite := archived
	rewrite.ArchivedAt = &later
	after, err := repo.Update(ctx, rewrite, archived.Version)
	require.NoError(t, err)
	require.NotNil(t, after.ArchivedAt)
	assert.True(t, archivedAt.Equal(*after.ArchivedAt))

	cleared := after
	cleared.ArchivedAt = nil
	after, err = repo.Update(ctx, cleared, after.Version)
	require.NoError(t, err)
	assert.NotNil(t, after.ArchivedAt)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := warehouserepo.NewMemoryRepository()
	ctx := context.Background()
	created := seed(t, repo, "MWH.001", "ZWOLLE-001", 40, time.Now().UTC())

	archivedAt := time.Now().UTC()
	created.ArchivedAt = &archivedAt
	archived, err := repo.Update(ctx, created, 1)
	require.NoError(t, err)

	*archived.ArchivedAt = archivedAt.Add(24 * time.Hour)

	stored, _, _ := repo.FindByCode(ctx, "MWH.001")
	assert.True(t, archivedAt.Equal(*stored.ArchivedAt))
}

func TestMemoryRepository_Search(t *testing.T) {
	repo := warehouserepo.NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed(t, repo, "SEARCH-001", "AMSTERDAM-001", 80, base)
	seed(t, repo, "SEARCH-002", "AMSTERDAM-001", 50, base.Add(time.Minute))
	seed(t, repo, "SEARCH-003", "ZWOLLE-001", 30, base.Add(2*time.Minute))
	seed(t, repo, "SEARCH-004", "TILBURG-001", 40, base.Add(3*time.Minute))
	archived := seed(t, repo, "SEARCH-ARCHIVED", "AMSTERDAM-001", 60, base.Add(4*time.Minute))
	archivedAt := base.Add(time.Hour)
	archived.ArchivedAt = &archivedAt
	_, err := repo.Update(ctx, archived, archived.Version)
	require.NoError(t, err)

	codes := func(ws []domain.Warehouse) []string {
		out := make([]string, 0, len(ws))
		for _, w := range ws {
			out = append(out, w.BusinessUnitCode)
		}
		return out
	}

	t.Run("only active warehouses, default order by creation", func(t *testing.T) {
		result, err := repo.Search(ctx, domain.WarehouseFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"SEARCH-001", "SEARCH-002", "SEARCH-003", "SEARCH-004"}, codes(result))
	})

	t.Run("location filter", func(t *testing.T) {
		result, err := repo.Search(ctx, domain.WarehouseFilter{Location: "AMSTERDAM-001"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"SEARCH-001", "SEARCH-002"}, codes(result))
	})

	t.Run("capacity range is inclusive", func(t *testing.T) {
		minCap, maxCap := 30, 50
		result, err := repo.Search(ctx, domain.WarehouseFilter{MinCapacity: &minCap, MaxCapacity: &maxCap})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"SEARCH-002", "SEARCH-003", "SEARCH-004"}, codes(result))
	})

	t.Run("sort by capacity both directions", func(t *testing.T) {
		asc, err := repo.Search(ctx, domain.WarehouseFilter{SortBy: domain.SortByCapacity})
		require.NoError(t, err)
		assert.Equal(t, []string{"SEARCH-003", "SEARCH-004", "SEARCH-002", "SEARCH-001"}, codes(asc))

		desc, err := repo.Search(ctx, domain.WarehouseFilter{SortBy: domain.SortByCapacity, Order: domain.SortDesc})
		require.NoError(t, err)
		assert.Equal(t, []string{"SEARCH-001", "SEARCH-002", "SEARCH-004", "SEARCH-003"}, codes(desc))
	})

	t.Run("pages are disjoint and contiguous", func(t *testing.T) {
		var all []string
		for page := 0; page < 3; page++ {
			result, err := repo.Search(ctx, domain.WarehouseFilter{SortBy: domain.SortByCapacity, Page: page, PageSize: 2})
			require.NoError(t, err)
			all = append(all, codes(result)...)
		}
		assert.Equal(t, []string{"SEARCH-003", "SEARCH-004", "SEARCH-002", "SEARCH-001"}, all)
	})
}

func TestMemoryRepository_ConcurrentCreateSameCode(t *testing.T) {
	repo := warehouserepo.NewMemoryRepository()
	const workers = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := repo.Create(context.Background(), domain.Warehouse{
				BusinessUnitCode: "DUPLICATE",
				Location:         fmt.Sprintf("LOC-%d", i),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, apperror.ErrDuplicateCode) {
				dupes++
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, dupes)
}
