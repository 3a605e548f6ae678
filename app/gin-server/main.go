package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/collegeconnect/backend/config"
	"github.com/collegeconnect/backend/internal/api/handlers"
	"github.com/collegeconnect/backend/internal/api/middleware"
	"github.com/collegeconnect/backend/internal/api/routes"
	"github.com/collegeconnect/backend/internal/cache"
	"github.com/collegeconnect/backend/internal/logger"
	"github.com/collegeconnect/backend/internal/models"
	"github.com/collegeconnect/backend/internal/providers/llm"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/storage"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()
	ctx := context.Background()

	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("postgres init failed")
	}
	if err := models.Migrate(config.PostgresDB); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	log.Info("postgres connected")

	if err := config.InitRedis(); err != nil {
		log.WithError(err).Fatal("redis init failed")
	}
	var c cache.Cache
	if config.RedisClient != nil {
		c = cache.NewRedisCache(config.RedisClient)
		log.Info("redis connected")
	}

	var uploader storage.Uploader
	uploadsDir := ""
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, bucket)
		if err != nil {
			log.WithError(err).Fatal("gcs init failed")
		}
		defer gcs.Close()
		uploader = gcs
	} else {
		uploadsDir = os.Getenv("UPLOADS_DIR")
		if uploadsDir == "" {
			uploadsDir = "uploads"
		}
		uploader = storage.NewLocalUploader(uploadsDir)
	}

	var provider llm.Provider
	if projectID := os.Getenv("GEMINI_PROJECT_ID"); projectID != "" {
		location := os.Getenv("GEMINI_LOCATION")
		if location == "" {
			location = "us-central1"
		}
		gemini, err := llm.NewVertexGemini(ctx, projectID, location, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.WithError(err).Fatal("vertex init failed")
		}
		defer gemini.Close()
		provider = gemini
	} else {
		log.Warn("GEMINI_PROJECT_ID is not set; query analysis falls back to name search and resume parsing is disabled")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db := config.PostgresDB
	userRepo := pgrepo.NewUserRepo(db)
	collegeRepo := pgrepo.NewCollegeRepo(db)
	catalogRepo := pgrepo.NewCatalogRepo(db)
	postRepo := pgrepo.NewPostRepo(db)
	portfolioRepo := pgrepo.NewPortfolioRepo(db)
	supportRepo := pgrepo.NewSupportRepo(db)
	analyticsRepo := pgrepo.NewAnalyticsRepo(db)

	var analyzer services.QueryAnalyzer
	if provider != nil {
		analyzer = services.NewLLMQueryAnalyzer(provider)
	}

	authSvc := services.NewAuthService(userRepo, collegeRepo, services.DefaultAuthConfig(secret))
	userSvc := services.NewUserService(userRepo, uploader)
	searchSvc := services.NewSearchService(userRepo, analyzer)
	resumeSvc := services.NewResumeService(provider)
	adminSvc := services.NewAdminService(userRepo)
	collegeSvc := services.NewCollegeService(collegeRepo, userRepo)
	catalogSvc := services.NewCatalogService(catalogRepo)
	postSvc := services.NewPostService(postRepo)
	portfolioSvc := services.NewPortfolioService(portfolioRepo)
	supportSvc := services.NewSupportService(supportRepo)
	analyticsSvc := services.NewAnalyticsService(analyticsRepo, c)

	if username := os.Getenv("SUPER_ADMIN_USERNAME"); username != "" {
		err := authSvc.BootstrapSuperAdmin(ctx, username,
			os.Getenv("SUPER_ADMIN_EMAIL"), os.Getenv("SUPER_ADMIN_PASSWORD"))
		if err != nil {
			log.WithError(err).Fatal("super admin bootstrap failed")
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:       handlers.NewAuthHandler(authSvc),
		Users:      handlers.NewUserHandler(userSvc, resumeSvc),
		Search:     handlers.NewSearchHandler(searchSvc),
		Admin:      handlers.NewAdminHandler(adminSvc),
		Super:      handlers.NewSuperHandler(collegeSvc),
		Companies:  handlers.NewCompanyHandler(catalogSvc),
		Skills:     handlers.NewSkillHandler(catalogSvc),
		Posts:      handlers.NewPostHandler(postSvc),
		Portfolio:  handlers.NewPortfolioHandler(portfolioSvc),
		Analytics:  handlers.NewAnalyticsHandler(analyticsSvc),
		Support:    handlers.NewSupportHandler(supportSvc),
		UploadsDir: uploadsDir,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("server starting")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
