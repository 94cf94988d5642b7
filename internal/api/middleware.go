package api

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/RajatSinghRajawat/maanvibackend/internal/apperr"
	"github.com/RajatSinghRajawat/maanvibackend/internal/metrics"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const adminLocalsKey = "admin"

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

// routeOf returns the matched route pattern, which keeps metric labels bounded.
func routeOf(c *fiber.Ctx, status int) string {
	route := c.Route()
	if route == nil || (status == fiber.StatusNotFound && route.Path == "/") {
		return "unmatched"
	}
	return route.Path
}

// requestLogger emits one line per request once the response is known.
func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}
		log.InfoContext(c.UserContext(), "Request served",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		)
		return err
	}
}

// httpMetrics counts requests and observes their latency per matched route.
func httpMetrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}
		route := routeOf(c, status)
		m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func statusOf(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return apperr.KindOf(err).HTTPStatus()
}

// requireAdmin resolves the bearer token into an active admin stored in the request locals.
func requireAdmin(auth AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer") {
			token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		}

		admin, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(adminLocalsKey, admin)
		return c.Next()
	}
}

// currentAdmin returns the admin resolved by requireAdmin.
func currentAdmin(c *fiber.Ctx) models.Admin {
	admin, _ := c.Locals(adminLocalsKey).(models.Admin)
	return admin
}

// loginLimiter throttles credential endpoints per client IP. A non-positive max disables it.
func loginLimiter(maxPerMinute int) fiber.Handler {
	if maxPerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        maxPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many attempts, please try again later",
			})
		},
	})
}
