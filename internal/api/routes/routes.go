package routes

import (
	"fmt"

	"project-groups-backend/internal/api/handlers"
	"project-groups-backend/internal/api/middleware"
	"project-groups-backend/internal/auth"
	"project-groups-backend/internal/config"
	"project-groups-backend/internal/repository"
	"project-groups-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	requestRepo := repository.NewFormationRequestRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	approvalRepo := repository.NewApprovalTaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Initialize services
	chains, err := service.BuildApprovalChains(cfg.ApprovalChains)
	if err != nil {
		return nil, fmt.Errorf("invalid approval chain configuration: %w", err)
	}
	notificationService := service.NewNotificationService(notificationRepo, validator)
	guard := service.NewMembershipGuard()
	formationService := service.NewFormationService(
		uow, requestRepo, groupRepo, userRepo, departmentRepo, collegeRepo,
		projectRepo, notificationService, guard, validator,
	)
	approvalService := service.NewApprovalService(uow, approvalRepo, userRepo, notificationService, chains, validator)
	groupService := service.NewGroupService(uow, groupRepo, projectRepo)
	projectService := service.NewProjectService(projectRepo, validator)
	userService := service.NewUserService(userRepo, validator)

	// Initialize auth
	authService, err := auth.NewAuthService(&auth.AuthConfig{JWTSecret: cfg.JWTSecret})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	formationHandler := handlers.NewFormationHandler(formationService)
	approvalHandler := handlers.NewApprovalHandler(approvalService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	groupHandler := handlers.NewGroupHandler(groupService)
	projectHandler := handlers.NewProjectHandler(projectService)
	userHandler := handlers.NewUserHandler(userService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes - all endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		// Formation request routes
		formationRequests := v1.Group("/formation-requests")
		{
			formationRequests.POST("", formationHandler.Create)
			formationRequests.GET("/:id", formationHandler.GetByID)
			formationRequests.POST("/:id/respond", formationHandler.Respond)
		}
		v1.GET("/my-group", formationHandler.MyGroup)

		// Official group routes
		groups := v1.Group("/groups")
		{
			groups.GET("", groupHandler.GetAll)
			groups.GET("/:id", groupHandler.GetByID)
			groups.POST("/:id/project", groupHandler.LinkProject)
		}

		// Approval task routes
		approvalTasks := v1.Group("/approval-tasks")
		{
			approvalTasks.POST("", approvalHandler.Create)
			approvalTasks.GET("/pending", approvalHandler.ListPending)
			approvalTasks.GET("/mine", approvalHandler.ListMine)
			approvalTasks.GET("/:id", approvalHandler.GetByID)
			approvalTasks.POST("/:id/decision", approvalHandler.Decide)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		// Project routes
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
			projects.GET("/:id", projectHandler.GetByID)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.GET("", userHandler.List)
			users.POST("", userHandler.Create)
			users.GET("/:id", userHandler.GetByID)
		}
	}

	return router, nil
}
