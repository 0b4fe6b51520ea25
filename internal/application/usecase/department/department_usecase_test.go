package department_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	departmentUC "github.com/tumai/space-api/internal/application/usecase/department"
	"github.com/tumai/space-api/internal/testutil/memrepo"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

func TestCreateThenGet(t *testing.T) {
	store := memrepo.NewStore()
	uc := departmentUC.NewDepartmentUseCase(store.Departments(), logger.NewNopLogger())

	created, err := uc.ExecuteCreate(context.Background(), departmentUC.CreateDepartmentInput{
		Handle: "CS",
		Name:   "Computer Science",
	})
	require.NoError(t, err)

	got, err := uc.ExecuteGet(context.Background(), "CS")
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Nil(t, got.Description)
}

func TestCreate_Validation(t *testing.T) {
	uc := departmentUC.NewDepartmentUseCase(memrepo.NewStore().Departments(), logger.NewNopLogger())

	_, err := uc.ExecuteCreate(context.Background(), departmentUC.CreateDepartmentInput{Handle: "", Name: "X"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	_, err = uc.ExecuteCreate(context.Background(), departmentUC.CreateDepartmentInput{Handle: "this-handle-is-way-too-long", Name: "X"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestCreate_DuplicateHandle(t *testing.T) {
	uc := departmentUC.NewDepartmentUseCase(memrepo.NewStore().Departments(), logger.NewNopLogger())
	in := departmentUC.CreateDepartmentInput{Handle: "CS", Name: "Computer Science"}

	_, err := uc.ExecuteCreate(context.Background(), in)
	require.NoError(t, err)
	_, err = uc.ExecuteCreate(context.Background(), in)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestList_SortedByHandle(t *testing.T) {
	uc := departmentUC.NewDepartmentUseCase(memrepo.NewStore().Departments(), logger.NewNopLogger())
	for _, in := range []departmentUC.CreateDepartmentInput{
		{Handle: "MKT", Name: "Marketing"},
		{Handle: "CS", Name: "Computer Science"},
	} {
		_, err := uc.ExecuteCreate(context.Background(), in)
		require.NoError(t, err)
	}

	deps, err := uc.ExecuteList(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "CS", deps[0].Handle)
	assert.Equal(t, "MKT", deps[1].Handle)
}

func TestGet_Missing(t *testing.T) {
	uc := departmentUC.NewDepartmentUseCase(memrepo.NewStore().Departments(), logger.NewNopLogger())
	_, err := uc.ExecuteGet(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
