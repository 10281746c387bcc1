package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/config"
	"github.com/saudkhanbpk/ems-backend-go/internal/handler/http/middleware"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Tracking     TrackingHandler
	Board        BoardHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Employee     EmployeeHandler
	Organization OrganizationHandler
	Report       ReportHandler
	Notification NotificationHandler
	Events       EventsHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ems-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Get("/callback/google", h.Auth.OAuthCallbackGoogle)
			})

			// Logout revokes the caller's access token.
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService))
				r.Post("/logout", h.Auth.Logout)
			})
		})

		// The stream authenticates with a short-lived token in the query
		// string because EventSource cannot set headers.
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Get("/events/token", h.Events.Token)

			r.Route("/tracking", func(r chi.Router) {
				r.Post("/start", h.Tracking.Start)
				r.Post("/pause", h.Tracking.Pause)
				r.Post("/resume", h.Tracking.Resume)
				r.Post("/stop", h.Tracking.Stop)
				r.Post("/heartbeat", h.Tracking.Heartbeat)
				r.Get("/status", h.Tracking.Status)
				r.Put("/interval", h.Tracking.SetInterval)
				r.Get("/sessions", h.Tracking.ListSessions)
				r.Get("/sessions/{sessionID}/screenshots", h.Tracking.ListScreenshots)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Board.ListProjects)
				r.Post("/", h.Board.CreateProject)
				r.Route("/{projectID}", func(r chi.Router) {
					r.Put("/", h.Board.UpdateProject)
					r.Delete("/", h.Board.DeleteProject)
					r.Get("/board", h.Board.Board)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", h.Board.CreateTask)
				r.Route("/{taskID}", func(r chi.Router) {
					r.Put("/", h.Board.UpdateTask)
					r.Delete("/", h.Board.DeleteTask)
					r.Post("/move", h.Board.MoveTask)
					r.Get("/comments", h.Board.ListComments)
					r.Post("/comments", h.Board.AddComment)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Post("/breaks/start", h.Attendance.StartBreak)
				r.Post("/breaks/end", h.Attendance.EndBreak)
				r.Get("/today", h.Attendance.Today)
				r.Get("/", h.Attendance.List)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Create)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/{leaveID}/decision", h.Leave.Decide)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.MyProfile)
				r.Post("/me/avatar", h.Employee.UploadAvatar)
				r.Put("/profile", h.Employee.UpsertProfile)
				r.Get("/{employeeID}/increments", h.Employee.ListIncrements)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.List)
					r.Delete("/{employeeID}", h.Employee.Delete)
					r.Post("/{employeeID}/increments", h.Employee.AddIncrement)
				})
			})

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", h.Organization.List)
				r.Get("/{organizationID}", h.Organization.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Organization.Create)
					r.Delete("/{organizationID}", h.Organization.Delete)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary", h.Report.Summary)
				r.Get("/export.pdf", h.Report.ExportPDF)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/email", h.Notification.SendEmail)
				r.Post("/slack", h.Notification.SendSlack)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
