package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/auth"
	"resumeforge/internal/config"
	"resumeforge/internal/storage"
	"resumeforge/internal/store"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	st *store.Store,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	cfg *config.Config,
) {
	authHandler := NewAuthHandler(db, authService, redisClient, logger,
		cfg.Auth.LoginRatePerHr, cfg.Auth.LoginLockAfter, cfg.Auth.LoginLockTTL)
	resumeHandler := NewResumeHandler(st, logger)
	catalogHandler := NewCatalogHandler(st, logger)
	shareHandler := NewShareHandler(st, redisClient, logger, cfg.Share.TokenTTL)
	assetHandler := NewAssetHandler(st, storageClient, logger, cfg.Assets.ClamdAddr, cfg.Assets.MaxBytes)

	authMiddleware := middleware.AuthMiddleware(authService)
	adminOnly := middleware.RequireAdmin()

	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.GET("/me", authMiddleware, authHandler.Me)
		}

		// 匿名访问：公开页与分享链接。
		v1.GET("/public/resumes/:slug", resumeHandler.GetPublicResume)
		v1.GET("/shared/:token", shareHandler.ResolveShareLink)

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)

			resumeGroup.POST("/:id/share", shareHandler.CreateShareLink)
			resumeGroup.DELETE("/:id/share/:token", shareHandler.RevokeShareLink)

			resumeGroup.POST("/:id/sections", resumeHandler.CreateSection)
			resumeGroup.GET("/:id/sections", resumeHandler.ListSections)
			resumeGroup.POST("/:id/experiences", resumeHandler.CreateWorkExperience)
			resumeGroup.GET("/:id/experiences", resumeHandler.ListWorkExperiences)
			resumeGroup.POST("/:id/skills", resumeHandler.CreateTechnicalSkill)
			resumeGroup.GET("/:id/skills", resumeHandler.ListTechnicalSkills)
			resumeGroup.POST("/:id/educations", resumeHandler.CreateEducation)
			resumeGroup.GET("/:id/educations", resumeHandler.ListEducations)
			resumeGroup.POST("/:id/projects", resumeHandler.CreateProject)
			resumeGroup.GET("/:id/projects", resumeHandler.ListProjects)
			resumeGroup.POST("/:id/certifications", resumeHandler.CreateCertification)
			resumeGroup.GET("/:id/certifications", resumeHandler.ListCertifications)
			resumeGroup.POST("/:id/awards", resumeHandler.CreateAward)
			resumeGroup.GET("/:id/awards", resumeHandler.ListAwards)
			resumeGroup.POST("/:id/languages", resumeHandler.CreateSpokenLanguage)
			resumeGroup.GET("/:id/languages", resumeHandler.ListSpokenLanguages)
		}

		// 子实体按自身 ID 修改/删除，归属校验在存储层完成。
		authed := v1.Group("")
		authed.Use(authMiddleware)
		{
			authed.PUT("/sections/:id", resumeHandler.UpdateSection)
			authed.DELETE("/sections/:id", resumeHandler.DeleteSection)
			authed.PUT("/experiences/:id", resumeHandler.UpdateWorkExperience)
			authed.DELETE("/experiences/:id", resumeHandler.DeleteWorkExperience)
			authed.PUT("/skills/:id", resumeHandler.UpdateTechnicalSkill)
			authed.DELETE("/skills/:id", resumeHandler.DeleteTechnicalSkill)
			authed.PUT("/educations/:id", resumeHandler.UpdateEducation)
			authed.DELETE("/educations/:id", resumeHandler.DeleteEducation)
			authed.PUT("/projects/:id", resumeHandler.UpdateProject)
			authed.DELETE("/projects/:id", resumeHandler.DeleteProject)
			authed.PUT("/certifications/:id", resumeHandler.UpdateCertification)
			authed.DELETE("/certifications/:id", resumeHandler.DeleteCertification)
			authed.PUT("/awards/:id", resumeHandler.UpdateAward)
			authed.DELETE("/awards/:id", resumeHandler.DeleteAward)
			authed.PUT("/languages/:id", resumeHandler.UpdateSpokenLanguage)
			authed.DELETE("/languages/:id", resumeHandler.DeleteSpokenLanguage)
		}

		techGroup := v1.Group("/technologies")
		techGroup.Use(authMiddleware)
		{
			techGroup.GET("", catalogHandler.ListTechnologies)
			techGroup.GET("/:id", catalogHandler.GetTechnology)
			techGroup.POST("", adminOnly, catalogHandler.CreateTechnology)
			techGroup.PUT("/:id", adminOnly, catalogHandler.UpdateTechnology)
			techGroup.DELETE("/:id", adminOnly, catalogHandler.DeleteTechnology)
			techGroup.POST("/:id/icon", adminOnly, assetHandler.UploadTechnologyIcon)
		}

		templateGroup := v1.Group("/templates")
		templateGroup.Use(authMiddleware)
		{
			templateGroup.GET("", catalogHandler.ListTemplates)
			templateGroup.GET("/:id", catalogHandler.GetTemplate)
			templateGroup.POST("", adminOnly, catalogHandler.CreateTemplate)
			templateGroup.PUT("/:id", adminOnly, catalogHandler.UpdateTemplate)
			templateGroup.POST("/:id/deactivate", adminOnly, catalogHandler.DeactivateTemplate)
			templateGroup.DELETE("/:id", adminOnly, catalogHandler.DeleteTemplate)
			templateGroup.POST("/:id/thumbnail", adminOnly, assetHandler.UploadTemplateThumbnail)
		}

		assetGroup := v1.Group("/assets")
		assetGroup.Use(authMiddleware)
		{
			assetGroup.GET("/view", assetHandler.GetAssetURL)
		}
	}
}
