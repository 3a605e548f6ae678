package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/api/handlers"
	"github.com/collegeconnect/backend/internal/api/middleware"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	Search    *handlers.SearchHandler
	Admin     *handlers.AdminHandler
	Super     *handlers.SuperHandler
	Companies *handlers.CompanyHandler
	Skills    *handlers.SkillHandler
	Posts     *handlers.PostHandler
	Portfolio *handlers.PortfolioHandler
	Analytics *handlers.AnalyticsHandler
	Support   *handlers.SupportHandler

	// UploadsDir serves locally stored files when set; empty when uploads go
	// to a bucket.
	UploadsDir string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if d.UploadsDir != "" {
		r.Static("/uploads", d.UploadsDir)
	}

	api := r.Group("/api")

	// Public
	auth := api.Group("/auth")
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh-token", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)
	auth.POST("/recover-password", d.Auth.RecoverPassword)

	// Authenticated
	authed := api.Group("/")
	authed.Use(middleware.JWTAuth())

	authed.POST("/search/analyze", d.Search.Analyze)

	users := authed.Group("/users")
	users.GET("", d.Users.Search)
	users.GET("/me", d.Users.Me)
	users.PUT("/me/profile", d.Users.UpdateProfile)
	users.PUT("/me/career", d.Users.ReplaceCareer)
	users.POST("/me/resume", d.Users.UploadResume)
	users.POST("/me/parse-resume", d.Users.ParseResume)
	users.GET("/:username", d.Users.GetByUsername)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireCollegeAdmin())
	admin.GET("/users", d.Admin.ListUsers)
	admin.POST("/users/parse-csv", d.Admin.ParseCSV)
	admin.POST("/users/sync", d.Admin.SyncUsers)
	admin.PUT("/users/bulk-update-role", d.Admin.BulkUpdateRole)

	super := authed.Group("/super")
	super.Use(middleware.RequireSuperAdmin())
	super.GET("/colleges", d.Super.ListColleges)
	super.POST("/colleges", d.Super.CreateCollege)
	super.POST("/colleges/:id/admins", d.Super.CreateCollegeAdmin)
	super.POST("/companies", d.Companies.Create)
	super.PUT("/companies/:id", d.Companies.Update)
	super.DELETE("/companies/:id", d.Companies.Delete)
	super.POST("/skills", d.Skills.Create)
	super.PUT("/skills/:id", d.Skills.Update)
	super.DELETE("/skills/:id", d.Skills.Delete)

	companies := authed.Group("/companies")
	companies.GET("", d.Companies.List)
	companies.GET("/search", d.Companies.Search)

	skills := authed.Group("/skills")
	skills.GET("", d.Skills.List)
	skills.GET("/search", d.Skills.Search)

	posts := authed.Group("/posts")
	posts.GET("", d.Posts.Feed)
	posts.POST("", d.Posts.Create)
	posts.GET("/:id", d.Posts.Get)
	posts.DELETE("/:id", d.Posts.Delete)
	posts.POST("/:id/like", d.Posts.ToggleLike)
	posts.GET("/:id/comments", d.Posts.ListComments)
	posts.POST("/:id/comments", d.Posts.AddComment)

	portfolio := authed.Group("/portfolio")
	portfolio.GET("", d.Portfolio.List)
	portfolio.POST("", d.Portfolio.Create)
	portfolio.PUT("/:id", d.Portfolio.Update)
	portfolio.DELETE("/:id", d.Portfolio.Delete)

	analytics := authed.Group("/analytics")
	analytics.GET("/countries", d.Analytics.Countries)
	analytics.GET("/departments", d.Analytics.Departments)
	analytics.GET("/employers", d.Analytics.Employers)
	analytics.GET("/skills", d.Analytics.Skills)
	analytics.GET("/designations", d.Analytics.Designations)
	analytics.GET("/summary", d.Analytics.Summary)
	analytics.GET("/batch-trends", d.Analytics.BatchTrends)

	dashboard := authed.Group("/dashboard")
	dashboard.GET("/skills-distribution", d.Analytics.SkillsDistribution)
	dashboard.GET("/experience-distribution", d.Analytics.ExperienceDistribution)
	dashboard.GET("/company-distribution", d.Analytics.CompanyDistribution)

	support := authed.Group("/support")
	support.GET("", d.Support.List)
	support.POST("", d.Support.Create)
	support.GET("/:id", d.Support.Get)
	support.PUT("/:id/status", d.Support.UpdateStatus)
	support.GET("/:id/comments", d.Support.ListComments)
	support.POST("/:id/comments", d.Support.AddComment)
}
