package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	departmentUC "github.com/tumai/space-api/internal/application/usecase/department"
	membershipUC "github.com/tumai/space-api/internal/application/usecase/membership"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

type DepartmentHandler struct {
	departmentUseCase *departmentUC.DepartmentUseCase
	membershipUseCase *membershipUC.MembershipUseCase
	logger            logger.Logger
}

func NewDepartmentHandler(dUC *departmentUC.DepartmentUseCase, mUC *membershipUC.MembershipUseCase, log logger.Logger) *DepartmentHandler {
	return &DepartmentHandler{departmentUseCase: dUC, membershipUseCase: mUC, logger: log}
}

func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	deps, err := h.departmentUseCase.ExecuteList(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	out := make([]DepartmentOut, len(deps))
	for i, d := range deps {
		out[i] = ToDepartmentOut(d)
	}
	respond(c, http.StatusOK, "Department list successfully received", out)
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	d, err := h.departmentUseCase.ExecuteGet(c.Request.Context(), c.Param("handle"))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Retrieved Department successfully", ToDepartmentOut(d))
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dataBody[DepartmentIn]
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for department", err))
		return
	}
	d, err := h.departmentUseCase.ExecuteCreate(c.Request.Context(), req.Data.toInput())
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Created department", ToDepartmentOut(d))
}

func (h *DepartmentHandler) ListDepartmentMemberships(c *gin.Context) {
	ms, err := h.membershipUseCase.ExecuteListByDepartment(c.Request.Context(), c.Param("handle"))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Department memberships successfully received", toMembershipOuts(ms))
}
