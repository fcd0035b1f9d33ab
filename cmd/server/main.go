// @title           Client Portal Backend API
// @version         1.0.0
// @description     Backend API for the client-project management portal. Admins manage projects, tasks, deliverables, and invoices; clients track progress and approve deliverables.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"client-portal-backend/docs"
	"client-portal-backend/internal/config"
	"client-portal-backend/internal/database"
	"client-portal-backend/internal/handlers"
	"client-portal-backend/internal/identity"
	"client-portal-backend/internal/middleware"
	"client-portal-backend/internal/notify"
	"client-portal-backend/internal/services"
	"client-portal-backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	db, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	blobs, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	notifier := notify.NewNotifier(cfg.AutomationWebhookURL)
	defer notifier.Stop()

	resolver := identity.NewResolver(db)

	activityService := services.NewActivityService(db, db)
	projectService := services.NewProjectService(db, db, activityService, notifier, cfg.PortalBaseURL)
	taskService := services.NewTaskService(db, db, activityService)
	fileService := services.NewFileService(db, db, activityService, blobs)
	invoiceService := services.NewInvoiceService(db, db, db, notifier)

	usersHandler := handlers.NewUsersHandler(resolver)
	projectsHandler := handlers.NewProjectsHandler(resolver, projectService)
	tasksHandler := handlers.NewTasksHandler(resolver, taskService)
	filesHandler := handlers.NewFilesHandler(resolver, fileService)
	invoicesHandler := handlers.NewInvoicesHandler(resolver, invoiceService)
	activitiesHandler := handlers.NewActivitiesHandler(resolver, activityService)
	downloadHandler := handlers.NewDownloadHandler()
	healthHandler := handlers.NewHealthHandler()

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", healthHandler.Health)

	// Download proxy (no auth; the signed URL itself is the credential)
	router.GET("/api/v1/download/:filename", downloadHandler.Download)

	// Current-user lookup tolerates anonymous callers
	router.GET("/api/v1/users/me", middleware.OptionalAuthMiddleware(cfg), usersHandler.Me)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Users
	api.POST("/users/sync", usersHandler.Sync)
	api.POST("/users/me/admin", usersHandler.ElevateToAdmin)

	// Projects
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.PATCH("/projects/:project_id/status", projectsHandler.UpdateStatus)

	// Tasks
	api.GET("/projects/:project_id/tasks", tasksHandler.ListTasks)
	api.POST("/projects/:project_id/tasks", tasksHandler.CreateTask)
	api.PATCH("/tasks/:task_id", tasksHandler.UpdateTask)
	api.DELETE("/tasks/:task_id", tasksHandler.DeleteTask)

	// Files
	api.POST("/files/upload-url", filesHandler.IssueUploadURL)
	api.POST("/projects/:project_id/files", filesHandler.RegisterUpload)
	api.GET("/projects/:project_id/files", filesHandler.ListFiles)
	api.PATCH("/files/:file_id/status", filesHandler.UpdateStatus)
	api.DELETE("/files/:file_id", filesHandler.DeleteFile)

	// Invoices
	api.POST("/projects/:project_id/invoices", invoicesHandler.CreateInvoice)
	api.GET("/projects/:project_id/invoices/pending", invoicesHandler.GetPendingInvoice)

	// Activity feed
	api.GET("/projects/:project_id/activities", activitiesHandler.ListRecent)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
