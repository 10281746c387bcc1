package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saudkhanbpk/ems-backend-go/internal/config"
	appHTTP "github.com/saudkhanbpk/ems-backend-go/internal/handler/http"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/cron"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/email"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/jwt"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/oauth"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/pdfgen"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/slack"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/sse"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/storage"
	"github.com/saudkhanbpk/ems-backend-go/internal/repository/postgresql"
	attendanceService "github.com/saudkhanbpk/ems-backend-go/internal/service/attendance"
	authService "github.com/saudkhanbpk/ems-backend-go/internal/service/auth"
	boardService "github.com/saudkhanbpk/ems-backend-go/internal/service/board"
	employeeService "github.com/saudkhanbpk/ems-backend-go/internal/service/employee"
	leaveService "github.com/saudkhanbpk/ems-backend-go/internal/service/leave"
	notificationService "github.com/saudkhanbpk/ems-backend-go/internal/service/notification"
	organizationService "github.com/saudkhanbpk/ems-backend-go/internal/service/organization"
	reportService "github.com/saudkhanbpk/ems-backend-go/internal/service/report"
	trackingService "github.com/saudkhanbpk/ems-backend-go/internal/service/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	sessionRepo := postgresql.NewWorkSessionRepository(db)
	screenshotRepo := postgresql.NewScreenshotRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	commentRepo := postgresql.NewCommentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	incrementRepo := postgresql.NewIncrementRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	slackClient := slack.NewClient(cfg.Slack.WebhookURL)
	pdfClient := pdfgen.NewClient(cfg.PDF.RenderURL)
	hub := sse.NewHub()

	gateway := trackingService.NewGateway(sessionRepo, screenshotRepo, fileStorage)
	manager := trackingService.NewManager(
		gateway,
		time.Duration(cfg.Tracking.ScreenshotIntervalSeconds)*time.Second,
		time.Duration(cfg.Tracking.InactivityTimeoutSeconds)*time.Second,
	)

	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo)
	trackingSvc := trackingService.NewTrackingService(manager, sessionRepo, screenshotRepo, hub)
	boardSvc := boardService.NewBoardService(projectRepo, taskRepo, commentRepo, hub)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, breakRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, emailSvc, slackClient, hub)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, incrementRepo, userRepo, fileStorage)
	organizationSvc := organizationService.NewOrganizationService(organizationRepo)
	reportSvc := reportService.NewReportService(reportRepo, pdfClient)
	notificationSvc := notificationService.NewNotificationService(emailSvc, slackClient)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("close-stale-sessions", 15*time.Minute, cron.CloseStaleSessionsJob(sessionRepo, 12*time.Hour))
	scheduler.AddJob("mark-absentees", 24*time.Hour, cron.MarkAbsenteesJob(attendanceRepo, leaveRepo))
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		Tracking:     appHTTP.NewTrackingHandler(trackingSvc),
		Board:        appHTTP.NewBoardHandler(boardSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Organization: appHTTP.NewOrganizationHandler(organizationSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Events:       appHTTP.NewEventsHandler(jwtService, hub),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Forced shutdown:", err)
	}
}
