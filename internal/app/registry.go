package app

import (
	"context"
	"database/sql"

	"go-worksuite/internal/access"
	"go-worksuite/internal/auth"
	"go-worksuite/internal/client"
	"go-worksuite/internal/dashboard"
	"go-worksuite/internal/department"
	"go-worksuite/internal/document"
	"go-worksuite/internal/employee"
	"go-worksuite/internal/events"
	"go-worksuite/internal/invoice"
	"go-worksuite/internal/leave"
	"go-worksuite/internal/messaging/kafka"
	"go-worksuite/internal/notification"
	"go-worksuite/internal/profile"
	"go-worksuite/internal/project"
	"go-worksuite/internal/shared/counter"
	"go-worksuite/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	profileRepo := profile.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	invoiceRepo := invoice.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Policy ---
	policy, err := access.NewPolicy()
	if err != nil {
		return err
	}

	// --- Services ---
	outboxSink := events.NewOutboxSink(outboxRepo)

	clientService := client.NewService(clientRepo)
	profileService := profile.NewService(profileRepo, clientService)
	authService := auth.NewService(authRepo, profileService)
	departmentService := department.NewService(departmentRepo)
	employeeService := employee.NewService(employeeRepo, departmentService)
	projectService := project.NewService(projectRepo, clientService)
	taskService := task.NewService(db, taskRepo, projectService, outboxSink)
	leaveService := leave.NewService(db, leaveRepo, outboxSink)
	invoiceService := invoice.NewService(invoiceRepo, counterRepo, clientService)
	documentService := document.NewService(documentRepo, projectService)
	notificationService := notification.NewService(notificationRepo)
	dashboardService := dashboard.NewService(dashboardRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(profileService, profile.UserEmailFunc(
		func(ctx context.Context, userID string) (string, error) {
			id, err := uuid.Parse(userID)
			if err != nil {
				return "", err
			}
			user, err := authRepo.GetByID(ctx, id)
			if err != nil {
				return "", err
			}
			return user.Email, nil
		},
	))
	clientHandler := client.NewHandler(clientService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	projectHandler := project.NewHandler(projectService)
	taskHandler := task.NewHandler(taskService)
	leaveHandler := leave.NewHandler(leaveService)
	invoiceHandler := invoice.NewHandler(invoiceService)
	documentHandler := document.NewHandler(documentService)
	notificationHandler := notification.NewHandler(notificationService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		profile.RegisterRoutes(api, profileHandler, profileService, policy)
		client.RegisterRoutes(api, clientHandler, profileService, policy)
		department.RegisterRoutes(api, departmentHandler, profileService, policy)
		employee.RegisterRoutes(api, employeeHandler, profileService, policy)
		project.RegisterRoutes(api, projectHandler, profileService, policy)
		task.RegisterRoutes(api, taskHandler, profileService, policy)
		leave.RegisterRoutes(api, leaveHandler, profileService, policy)
		invoice.RegisterRoutes(api, invoiceHandler, profileService, policy)
		document.RegisterRoutes(api, documentHandler, profileService, policy)
		notification.RegisterRoutes(api, notificationHandler, profileService, policy)
		dashboard.RegisterRoutes(api, dashboardHandler, profileService, policy)
	}

	return nil
}
