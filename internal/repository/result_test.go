package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/nimlines-backend/internal/apperror"
	"github.com/rocketscienceinc/nimlines-backend/internal/entity"
	"github.com/rocketscienceinc/nimlines-backend/internal/nimlines"
	"github.com/rocketscienceinc/nimlines-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoFactory func(t *testing.T) (context.Context, ResultRepository)

var backends = map[string]repoFactory{
	"redis": func(t *testing.T) (context.Context, ResultRepository) {
		ctx, st := suite.New(t)
		return ctx, NewResultRepository(st.Storage)
	},
	"sqlite": func(t *testing.T) (context.Context, ResultRepository) {
		ctx, st := suite.NewSQLite(t)
		return ctx, NewSQLiteResultRepository(st.SQLite.Connection)
	},
}

func newResult(id string, finishedAt time.Time) *entity.Result {
	return &entity.Result{
		ID:         id,
		Layout:     []int{1, 3, 5},
		Winner:     nimlines.PlayerTwo,
		Rounds:     3,
		Moves:      5,
		FinishedAt: finishedAt,
	}
}

func TestResultRepository_Save(t *testing.T) {
	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			ctx, resultRepo := newRepo(t)

			// Given: a finished match
			result := newResult("123", time.Now())

			// When: Save is called
			err := resultRepo.Save(ctx, result)

			// Then: no error should be returned
			require.NoError(t, err)
		})
	}
}

func TestResultRepository_GetByID(t *testing.T) {
	for name, newRepo := range backends {
		t.Run(name+"/Success", func(t *testing.T) {
			ctx, resultRepo := newRepo(t)

			// Given: a stored result
			result := newResult("123", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
			require.NoError(t, resultRepo.Save(ctx, result))

			// When: GetByID is called with its ID
			retrieved, err := resultRepo.GetByID(ctx, result.ID)

			// Then: the retrieved result should match the saved one
			require.NoError(t, err)
			assert.Equal(t, result.ID, retrieved.ID)
			assert.Equal(t, result.Layout, retrieved.Layout)
			assert.Equal(t, nimlines.PlayerTwo, retrieved.Winner)
			assert.Equal(t, result.Rounds, retrieved.Rounds)
			assert.Equal(t, result.Moves, retrieved.Moves)
			assert.True(t, result.FinishedAt.Equal(retrieved.FinishedAt))
		})

		t.Run(name+"/NotFound", func(t *testing.T) {
			ctx, resultRepo := newRepo(t)

			// When: GetByID is called with an unknown ID
			retrieved, err := resultRepo.GetByID(ctx, "9999999")

			// Then: a not found error should be returned
			require.ErrorIs(t, err, ErrResultNotFound)
			assert.ErrorIs(t, err, apperror.ErrNotFound)
			assert.Nil(t, retrieved)
		})
	}
}

func TestResultRepository_List(t *testing.T) {
	for name, newRepo := range backends {
		t.Run(name+"/Newest first", func(t *testing.T) {
			ctx, resultRepo := newRepo(t)

			// Given: three results saved in order
			start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
			for i, id := range []string{"a", "b", "c"} {
				require.NoError(t, resultRepo.Save(ctx, newResult(id, start.Add(time.Duration(i)*time.Minute))))
			}

			// When: the two most recent results are listed
			results, err := resultRepo.List(ctx, 2)

			// Then: the newest results come first
			require.NoError(t, err)
			require.Len(t, results, 2)
			assert.Equal(t, "c", results[0].ID)
			assert.Equal(t, "b", results[1].ID)
		})

		t.Run(name+"/Empty", func(t *testing.T) {
			ctx, resultRepo := newRepo(t)

			// When: nothing is stored
			results, err := resultRepo.List(ctx, 5)

			// Then: an empty list is returned
			require.NoError(t, err)
			assert.Empty(t, results)
		})

		t.Run(name+"/Zero limit", func(t *testing.T) {
			ctx, resultRepo := newRepo(t)
			require.NoError(t, resultRepo.Save(ctx, newResult("a", time.Now())))

			// When: the limit is zero
			results, err := resultRepo.List(ctx, 0)

			// Then: nothing is returned
			require.NoError(t, err)
			assert.Empty(t, results)
		})
	}
}

func TestSQLiteResultRepository_DuplicateID(t *testing.T) {
	ctx, st := suite.NewSQLite(t)
	resultRepo := NewSQLiteResultRepository(st.SQLite.Connection)

	// Given: a stored result
	require.NoError(t, resultRepo.Save(ctx, newResult("dup", time.Now())))

	// When: another result with the same ID is saved
	err := resultRepo.Save(ctx, newResult("dup", time.Now()))

	// Then: the insert is rejected
	require.Error(t, err)
}
