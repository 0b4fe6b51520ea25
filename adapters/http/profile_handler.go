package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	profileUC "github.com/tumai/space-api/internal/application/usecase/profile"
	"github.com/tumai/space-api/internal/domain/profile"
	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/logger"
)

// ProfileUseCases groups the profile operations the handler serves.
type ProfileUseCases struct {
	Create        *profileUC.CreateProfileUseCase
	List          *profileUC.ListProfilesUseCase
	Get           *profileUC.GetProfileUseCase
	Update        *profileUC.UpdateProfileUseCase
	Delete        *profileUC.DeleteProfileUseCase
	UploadPicture *profileUC.UploadPictureUseCase
}

type ProfileHandler struct {
	useCases  ProfileUseCases
	presenter profilePresenter
	logger    logger.Logger
}

func NewProfileHandler(ucs ProfileUseCases, decodeJobHistory bool, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		useCases:  ucs,
		presenter: profilePresenter{decodeJobHistory: decodeJobHistory, now: time.Now},
		logger:    log,
	}
}

func (h *ProfileHandler) CreateProfiles(c *gin.Context) {
	var req dataListBody[ProfileInCreate]
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profiles", err))
		return
	}
	inputs := make([]profileUC.CreateProfileInput, len(req.Data))
	for i, in := range req.Data {
		inputs[i] = in.toInput()
	}

	created, err := h.useCases.Create.ExecuteBatch(c.Request.Context(), inputs)
	if err != nil {
		c.Error(err)
		return
	}
	out := make([]ProfileOut, len(created))
	for i, p := range created {
		out[i] = h.presenter.ToProfileOut(p, nil)
	}
	respond(c, http.StatusCreated, "Created profiles", out)
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req dataBody[ProfileInCreate]
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile", err))
		return
	}
	p, err := h.useCases.Create.Execute(c.Request.Context(), req.Data.toInput())
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Created profile", h.presenter.ToProfileOut(p, nil))
}

func (h *ProfileHandler) listProfiles(c *gin.Context) ([]*profile.Profile, bool) {
	page, err := queryInt(c, "page")
	if err != nil {
		c.Error(err)
		return nil, false
	}
	pageSize, err := queryInt(c, "page_size")
	if err != nil {
		c.Error(err)
		return nil, false
	}
	output, err := h.useCases.List.Execute(c.Request.Context(), profileUC.ListProfilesInput{Page: page, PageSize: pageSize})
	if err != nil {
		c.Error(err)
		return nil, false
	}
	return output.Profiles, true
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, ok := h.listProfiles(c)
	if !ok {
		return
	}
	out := make([]ProfileOut, len(profiles))
	for i, p := range profiles {
		out[i] = h.presenter.ToProfileOut(p, nil)
	}
	respond(c, http.StatusOK, "Admin Profile list successfully received", out)
}

func (h *ProfileHandler) ListPublicProfiles(c *gin.Context) {
	profiles, ok := h.listProfiles(c)
	if !ok {
		return
	}
	out := make([]ProfileOutPublic, len(profiles))
	for i, p := range profiles {
		out[i] = h.presenter.ToProfileOutPublic(p)
	}
	respond(c, http.StatusOK, "PublicProfile list successfully received", out)
}

func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	output, err := h.useCases.Get.Execute(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Retrieved public profile successfully", h.presenter.ToProfileOutPublic(output.Profile))
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	output, err := h.useCases.Get.Execute(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Retrieved profile successfully", h.presenter.ToProfileOut(output.Profile, output.Memberships))
}

func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	identityID, ok := GetIdentityIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("identity not found in context", nil))
		return
	}
	output, err := h.useCases.Get.ExecuteByIdentity(c.Request.Context(), identityID)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Complete internally visible Profile", h.presenter.ToProfileOut(output.Profile, output.Memberships))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req dataBody[ProfileInUpdate]
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}
	p, err := h.useCases.Update.Execute(c.Request.Context(), profileUC.UpdateProfileInput{ProfileID: id, Patch: req.Data.toPatch()})
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Updated profile", h.presenter.ToProfileOut(p, nil))
}

func (h *ProfileHandler) UpdateCurrentProfile(c *gin.Context) {
	identityID, ok := GetIdentityIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("identity not found in context", nil))
		return
	}
	var req dataBody[ProfileInUpdate]
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}
	current, err := h.useCases.Get.ExecuteByIdentity(c.Request.Context(), identityID)
	if err != nil {
		c.Error(err)
		return
	}
	p, err := h.useCases.Update.Execute(c.Request.Context(), profileUC.UpdateProfileInput{
		ProfileID: current.Profile.ID,
		Patch:     req.Data.toPatch(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, "Updated current profile", h.presenter.ToProfileOut(p, nil))
}

func (h *ProfileHandler) DeleteProfiles(c *gin.Context) {
	ids, err := queryIDs(c, "profile_ids")
	if err != nil {
		c.Error(err)
		return
	}
	deleted, err := h.useCases.Delete.ExecuteBatch(c.Request.Context(), ids)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Profile list successfully deleted", deleted)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	deleted, err := h.useCases.Delete.Execute(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if !deleted {
		respondError(c, http.StatusBadRequest, "deletion was not possible!")
		return
	}
	respondEmpty(c, http.StatusOK, "Profile successfully deleted")
}

func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	p, err := h.useCases.UploadPicture.Execute(c.Request.Context(), id, file)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, "Uploaded profile picture", h.presenter.ToProfileOut(p, nil))
}
