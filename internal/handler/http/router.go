package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hris-portal-go/internal/config"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Navigation NavigationHandler
	Employee   EmployeeHandler
	Dashboard  DashboardHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Holiday    HolidayHandler
	Payroll    PayrollHandler
	Inventory  InventoryHandler
	Audit      AuditHandler
	Document   DocumentHandler
	Interview  InterviewHandler
	Settings   SettingsHandler
}

// PagesPrefix mounts the page data routes. The path below it is the portal page path.
const PagesPrefix = "/pages"

func NewRouter(cfg *config.Config, jwtService jwt.Service, navigator *middleware.Navigator, metrics http.Handler, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.SlogLevel(),
	})).With(
		slog.String("app", "hris-portal"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Location"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verify(jwtService.JWTAuth(), jwt.TokenFromCookie))
		r.Use(middleware.Session(jwtService))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)
		})

		r.Get("/navigate", h.Navigation.Navigate)
		r.Get("/nav", h.Navigation.Nav)

		// Requires a portal session
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionRequired)

			r.Get("/loading", h.Navigation.Loading)
			r.Get("/events", h.Navigation.Events)

			r.Route("/context/employee", func(r chi.Router) {
				r.Get("/", h.Employee.Context)
				r.Post("/", h.Employee.SelectContext)
				r.Delete("/", h.Employee.ClearContext)
			})

			r.Route(PagesPrefix, func(r chi.Router) {
				r.Use(navigator.Guard(PagesPrefix))
				mountPages(r, h)
			})
		})
	})

	return r
}

func mountPages(r chi.Router, h Handlers) {
	r.Get("/dashboard", h.Dashboard.Summary)

	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.Employee.Profile)
		r.Patch("/", h.Employee.UpdateProfile)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", h.Document.List)
			r.Post("/", h.Document.Upload)
			r.Delete("/{id}", h.Document.Delete)
		})
	})

	r.Get("/teams", h.Employee.Teams)

	r.Route("/leaves", func(r chi.Router) {
		r.Get("/", h.Leave.List)
		r.Post("/", h.Leave.Apply)
		r.Patch("/{id}", h.Leave.UpdateStatus)

		r.Route("/approvals", func(r chi.Router) {
			r.Get("/", h.Leave.Pending)
			r.Patch("/{id}", h.Leave.Review)
		})
		r.Route("/balances", func(r chi.Router) {
			r.Get("/", h.Leave.AllBalances)
			r.Get("/export", h.Leave.ExportBalances)
		})
	})

	r.Get("/attendance", h.Attendance.Calendar)
	r.Get("/holidays", h.Holiday.List)
	r.Get("/salary", h.Payroll.Salary)
	r.Get("/inventory", h.Audit.MyDevices)

	r.Route("/audit", func(r chi.Router) {
		r.Get("/", h.Audit.MyDevices)
		r.Get("/devices/{id}", h.Audit.Device)
		r.Post("/devices/{id}/submit", h.Audit.Submit)
	})

	r.Route("/adminInventory", func(r chi.Router) {
		r.Get("/", h.Inventory.Summary)
		r.Get("/types/{typeID}", h.Inventory.DevicesByType)
		r.Get("/unassigned", h.Inventory.Unassigned)

		r.Route("/devices", func(r chi.Router) {
			r.Post("/", h.Inventory.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Inventory.Detail)
				r.Put("/", h.Inventory.Update)
				r.Delete("/", h.Inventory.Delete)
				r.Post("/unassign", h.Inventory.Unassign)
				r.Get("/comments", h.Inventory.Comments)
			})
		})
	})

	r.Route("/interview", func(r chi.Router) {
		r.Get("/", h.Interview.Overview)

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.Interview.ListJobs)
			r.Post("/", h.Interview.CreateJob)
			r.Get("/{id}", h.Interview.GetJob)
			r.Put("/{id}", h.Interview.UpdateJob)
			r.Delete("/{id}", h.Interview.DeleteJob)
		})
		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", h.Interview.ListCandidates)
			r.Get("/{id}", h.Interview.GetCandidate)
			r.Put("/{id}/status", h.Interview.UpdateCandidateStatus)
		})
		r.Route("/invites", func(r chi.Router) {
			r.Get("/", h.Interview.ListInvites)
			r.Post("/", h.Interview.CreateInvite)
			r.Patch("/{id}", h.Interview.UpdateInviteStatus)
		})
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/permissions", h.Settings.Permissions)
		r.Post("/permissions/employee", h.Settings.SelectEmployee)
		r.Post("/permissions/toggle", h.Settings.Toggle)
		r.Put("/permissions", h.Settings.Save)
		r.Get("/employees", h.Settings.SearchEmployees)
	})
}
