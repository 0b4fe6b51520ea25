package department

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/tumai/space-api/internal/domain/department"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

var tracer = otel.Tracer("department_usecase")

type DepartmentUseCase struct {
	departmentRepo department.Repository
	logger         logger.Logger
}

func NewDepartmentUseCase(repo department.Repository, log logger.Logger) *DepartmentUseCase {
	return &DepartmentUseCase{departmentRepo: repo, logger: log}
}

func (uc *DepartmentUseCase) ExecuteList(ctx context.Context) ([]*department.Department, error) {
	ctx, span := tracer.Start(ctx, "ListDepartments")
	defer span.End()

	deps, err := uc.departmentRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list departments failed: %w", err)
	}
	return deps, nil
}

func (uc *DepartmentUseCase) ExecuteGet(ctx context.Context, handle string) (*department.Department, error) {
	ctx, span := tracer.Start(ctx, "GetDepartment")
	defer span.End()
	span.SetAttributes(attribute.String("department.handle", handle))

	d, err := uc.departmentRepo.FindByHandle(ctx, handle)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("get department failed: %w", err)
	}
	return d, nil
}

type CreateDepartmentInput struct {
	Handle      string
	Name        string
	Description *string
}

func (uc *DepartmentUseCase) ExecuteCreate(ctx context.Context, input CreateDepartmentInput) (*department.Department, error) {
	ctx, span := tracer.Start(ctx, "CreateDepartment")
	defer span.End()

	d := &department.Department{
		Handle:      input.Handle,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := d.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.departmentRepo.Save(ctx, d); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create department failed: %w", err)
	}

	uc.logger.Info("Department created", zap.String("handle", d.Handle))
	return d, nil
}
