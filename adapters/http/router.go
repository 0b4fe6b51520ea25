package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tumai/space-api/pkg/auth"
	"github.com/tumai/space-api/pkg/logger"
)

// RouterDeps wires the handlers into routes. A nil BatchLimiter disables
// rate limiting of batch profile creation. An empty AdminRole leaves the
// admin routes open.
type RouterDeps struct {
	Departments  *DepartmentHandler
	Profiles     *ProfileHandler
	Memberships  *MembershipHandler
	JWT          *auth.JWTService
	BatchLimiter RateLimiter
	AdminRole    string
	Logger       logger.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(deps.Logger))
	router.Use(ErrorMiddleware(deps.Logger))

	authMiddleware := AuthMiddleware(deps.JWT, deps.Logger)
	adminOnly := []gin.HandlerFunc{}
	if deps.AdminRole != "" {
		adminOnly = append(adminOnly, authMiddleware, RequireRole(deps.AdminRole))
	}
	admin := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, adminOnly...), h)
	}

	router.GET("/health", func(c *gin.Context) {
		respondEmpty(c, http.StatusOK, "UP")
	})

	router.GET("/departments/", deps.Departments.ListDepartments)
	department := router.Group("/department")
	{
		department.POST("/", deps.Departments.CreateDepartment)
		department.GET("/:handle", deps.Departments.GetDepartment)
		department.GET("/:handle/memberships", deps.Departments.ListDepartmentMemberships)
	}

	profiles := router.Group("/profiles")
	{
		profiles.POST("/", RateLimit(deps.BatchLimiter, "profiles_batch_create", deps.Logger), deps.Profiles.CreateProfiles)
		profiles.GET("/", deps.Profiles.ListPublicProfiles)
		profiles.GET("/admin", admin(deps.Profiles.ListProfiles)...)
		profiles.DELETE("/", admin(deps.Profiles.DeleteProfiles)...)
	}

	profile := router.Group("/profile")
	{
		profile.POST("/", deps.Profiles.CreateProfile)
		profile.GET("/", authMiddleware, deps.Profiles.GetCurrentProfile)
		profile.PATCH("/", authMiddleware, deps.Profiles.UpdateCurrentProfile)

		profile.GET("/:id", deps.Profiles.GetPublicProfile)
		profile.GET("/:id/admin", admin(deps.Profiles.GetProfile)...)
		profile.PATCH("/:id", deps.Profiles.UpdateProfile)
		profile.DELETE("/:id", deps.Profiles.DeleteProfile)
		profile.PUT("/:id/picture", deps.Profiles.UploadPicture)
		profile.GET("/:id/memberships", deps.Memberships.ListProfileMemberships)
		profile.POST("/:id/memberships", deps.Memberships.AddMembership)
	}

	router.DELETE("/membership/:id", deps.Memberships.RemoveMembership)

	return router
}
