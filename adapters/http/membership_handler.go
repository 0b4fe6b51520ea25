package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	membershipUC "github.com/tumai/space-api/internal/application/usecase/membership"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

type MembershipHandler struct {
	membershipUseCase *membershipUC.MembershipUseCase
	logger            logger.Logger
}

func NewMembershipHandler(uc *membershipUC.MembershipUseCase, log logger.Logger) *MembershipHandler {
	return &MembershipHandler{membershipUseCase: uc, logger: log}
}

func (h *MembershipHandler) ListProfileMemberships(c *gin.Context) {
	profileID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	ms, err := h.membershipUseCase.ExecuteListByProfile(c.Request.Context(), profileID)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Profile memberships successfully received", toMembershipOuts(ms))
}

func (h *MembershipHandler) AddMembership(c *gin.Context) {
	profileID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dataBody[MembershipIn]
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for membership", err))
		return
	}
	m, err := h.membershipUseCase.ExecuteAdd(c.Request.Context(), req.Data.toInput(profileID))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Created department membership", ToMembershipOut(m))
}

func (h *MembershipHandler) RemoveMembership(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.membershipUseCase.ExecuteRemove(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	respondEmpty(c, http.StatusOK, "Department membership successfully deleted")
}
