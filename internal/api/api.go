// Package api exposes the admin backend over HTTP with fiber.
package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/apperr"
	"github.com/RajatSinghRajawat/maanvibackend/internal/metrics"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Version is reported by the welcome route.
const Version = "1.0.0"

// AuthService authenticates admins and manages their accounts.
type AuthService interface {
	Login(ctx context.Context, in models.LoginInput) (models.LoginResult, error)
	Register(ctx context.Context, in models.RegisterInput) (models.AdminSummary, error)
	Authenticate(ctx context.Context, token string) (models.Admin, error)
	Me(ctx context.Context, id uuid.UUID) (models.Admin, error)
	ChangePassword(ctx context.Context, id uuid.UUID, in models.PasswordChangeInput) error
}

// EmployeeService manages the employee directory.
type EmployeeService interface {
	List(ctx context.Context, filter models.EmployeeFilter) (models.Page[models.Employee], error)
	Get(ctx context.Context, id uuid.UUID) (models.Employee, error)
	Create(ctx context.Context, in models.EmployeeInput) (models.Employee, error)
	Update(ctx context.Context, id uuid.UUID, patch models.EmployeePatch) (models.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (models.EmployeeStats, error)
}

// AttendanceService records and aggregates daily attendance.
type AttendanceService interface {
	List(ctx context.Context, filter models.AttendanceFilter, period models.PeriodQuery) (models.Page[models.Attendance], error)
	EmployeeMonth(ctx context.Context, employeeID uuid.UUID, q models.MonthQuery) (models.EmployeeMonth, error)
	Get(ctx context.Context, id uuid.UUID) (models.Attendance, error)
	Mark(ctx context.Context, in models.AttendanceInput, markedBy uuid.UUID) (models.MarkResult, error)
	Update(ctx context.Context, id uuid.UUID, patch models.AttendancePatch) (models.Attendance, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, period models.PeriodQuery) (models.AttendanceStats, error)
	ExportMonth(ctx context.Context, q models.MonthQuery) ([]byte, error)
}

// EnquiryService manages customer and lead enquiries.
type EnquiryService interface {
	List(ctx context.Context, filter models.EnquiryFilter) (models.Page[models.Enquiry], error)
	Get(ctx context.Context, id uuid.UUID) (models.Enquiry, error)
	Create(ctx context.Context, in models.EnquiryInput) (models.Enquiry, error)
	Update(ctx context.Context, id uuid.UUID, patch models.EnquiryPatch) (models.Enquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (models.EnquiryStats, error)
}

// Services bundles the business services the routes are served by.
type Services struct {
	Auth       AuthService
	Employees  EmployeeService
	Attendance AttendanceService
	Enquiries  EnquiryService
}

// Config tunes the HTTP surface.
type Config struct {
	CORSOrigins    string         // Comma separated list of allowed origins
	LoginRateLimit int            // Login and register requests per minute per IP, 0 disables the limit
	Location       *time.Location // Location query dates without an offset are read in
	Now            func() time.Time
}

type handler struct {
	log      *slog.Logger
	services Services
	loc      *time.Location
	now      func() time.Time
}

// New builds the fiber application with every route mounted under /api.
func New(log *slog.Logger, cfg Config, services Services, m *metrics.Metrics) *fiber.App {
	h := &handler{log: log, services: services, loc: cfg.Location, now: cfg.Now}
	if h.loc == nil {
		h.loc = time.Local
	}
	if h.now == nil {
		h.now = time.Now
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          h.errorHandler,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New())
	app.Use(requestLogger(log))
	app.Use(httpMetrics(m))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/", h.welcome)

	api := app.Group("/api")
	api.Get("/health", h.health)

	// The guard sits on each route so unmatched paths still answer 404.
	protect := requireAdmin(services.Auth)
	limit := loginLimiter(cfg.LoginRateLimit)

	admin := api.Group("/admin")
	admin.Post("/login", limit, h.login)
	admin.Post("/register", limit, h.register)
	admin.Get("/me", protect, h.me)
	admin.Put("/password", protect, h.changePassword)

	employees := api.Group("/employees")
	employees.Get("/stats/overview", protect, h.employeeStats)
	employees.Get("/", protect, h.listEmployees)
	employees.Post("/", protect, h.createEmployee)
	employees.Get("/:id", protect, h.getEmployee)
	employees.Put("/:id", protect, h.updateEmployee)
	employees.Delete("/:id", protect, h.deleteEmployee)

	attendance := api.Group("/attendance")
	attendance.Get("/stats/overview", protect, h.attendanceStats)
	attendance.Get("/export", protect, h.exportAttendance)
	attendance.Get("/employee/:employeeId/month", protect, h.employeeMonth)
	attendance.Get("/", protect, h.listAttendance)
	attendance.Post("/", protect, h.markAttendance)
	attendance.Get("/:id", protect, h.getAttendance)
	attendance.Put("/:id", protect, h.updateAttendance)
	attendance.Delete("/:id", protect, h.deleteAttendance)

	enquiries := api.Group("/enquiries")
	enquiries.Get("/stats/overview", protect, h.enquiryStats)
	enquiries.Get("/", protect, h.listEnquiries)
	enquiries.Post("/", protect, h.createEnquiry)
	enquiries.Get("/:id", protect, h.getEnquiry)
	enquiries.Put("/:id", protect, h.updateEnquiry)
	enquiries.Delete("/:id", protect, h.deleteEnquiry)

	app.Use(notFound)

	return app
}

func (h *handler) welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Welcome to Mannvi Admin Panel API",
		"version": Version,
		"endpoints": fiber.Map{
			"employees":  "/api/employees",
			"attendance": "/api/attendance",
			"enquiries":  "/api/enquiries",
		},
	})
}

func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Server is running",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Route not found"})
}

// errorHandler renders every failure as {success:false, error, errors?}.
// Internal failures are logged with their cause and reported generically.
func (h *handler) errorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &appErr):
	case errors.As(err, &fiberErr):
		if fiberErr.Code == fiber.StatusNotFound {
			return notFound(c)
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"success": false, "error": fiberErr.Message})
		}
		appErr = apperr.Internal(err)
	default:
		appErr = apperr.Internal(err)
	}

	if appErr.Kind == apperr.KindInternal {
		h.log.ErrorContext(c.UserContext(), "Request failed",
			"request_id", requestID(c), "method", c.Method(), "path", c.Path(), "error", err)
	}

	body := fiber.Map{"success": false, "error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	return c.Status(appErr.Kind.HTTPStatus()).JSON(body)
}
