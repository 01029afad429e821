package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"roadside/internal/core/ports"
	"roadside/internal/generated/servers"
	"roadside/internal/pkg/telemetry"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	CustomerIDHeader     = "X-Customer-ID"
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"

	customerRefKey = "customerRef"
)

func customerRef(ctx echo.Context) string {
	ref, _ := ctx.Get(customerRefKey).(string)
	return ref
}

// RequireCustomer reads the caller's identity from X-Customer-ID. Operations
// the OpenAPI document secures with the customerId scheme get 401 without it.
func RequireCustomer(swagger *openapi3.T, baseURL string) echo.MiddlewareFunc {
	protected := securedRoutes(swagger, baseURL)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ref := strings.TrimSpace(c.Request().Header.Get(CustomerIDHeader)); ref != "" {
				c.Set(customerRefKey, ref)
				return next(c)
			}
			if protected[c.Request().Method+" "+c.Path()] {
				return c.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing " + CustomerIDHeader + " header",
				})
			}
			return next(c)
		}
	}
}

var pathParam = regexp.MustCompile(`\{([^}]+)\}`)

// securedRoutes lists "METHOD /echo/path" for every operation with a non-empty
// security requirement, either its own or the document's default.
func securedRoutes(swagger *openapi3.T, baseURL string) map[string]bool {
	routes := make(map[string]bool)
	for path, item := range swagger.Paths.Map() {
		for method, op := range item.Operations() {
			security := swagger.Security
			if op.Security != nil {
				security = *op.Security
			}
			if len(security) == 0 {
				continue
			}
			routes[method+" "+baseURL+pathParam.ReplaceAllString(path, ":$1")] = true
		}
	}
	return routes
}

// Idempotency replays the stored response of a request repeated with the same
// Idempotency-Key. Keys are scoped to the customer and the route. Responses
// other than 5xx are stored; a 5xx or a handler error frees the key so the
// client can retry. When the store is unreachable requests go through
// unprotected.
func Idempotency(
	store ports.IdempotencyStore,
	ttl time.Duration,
	logger *slog.Logger,
	routes ...string,
) echo.MiddlewareFunc {
	logger = logger.With("component", "idempotency")
	enabled := make(map[string]bool, len(routes))
	for _, r := range routes {
		enabled[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get(IdempotencyKeyHeader))
			if key == "" || c.Request().Method != http.MethodPost || !enabled[c.Path()] {
				return next(c)
			}

			ctx := c.Request().Context()
			scoped := customerRef(c) + ":" + c.Path() + ":" + key

			stored, err := store.Get(ctx, scoped)
			if err != nil {
				logger.WarnContext(ctx, "idempotency lookup failed", "error", err)
				return next(c)
			}
			if stored != nil {
				c.Response().Header().Set(ReplayedHeader, "true")
				return c.Blob(stored.Status, stored.ContentType, stored.Body)
			}

			reserved, err := store.Reserve(ctx, scoped, ttl)
			if err != nil {
				logger.WarnContext(ctx, "idempotency reservation failed", "error", err)
				return next(c)
			}
			if !reserved {
				return c.JSON(http.StatusConflict, servers.Error{
					Code:    http.StatusConflict,
					Message: "A request with this Idempotency-Key is already in progress",
				})
			}

			recorder := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = recorder

			if err = next(c); err != nil {
				c.Error(err)
			}

			// The client may be gone; the key bookkeeping must still happen.
			ctx = context.WithoutCancel(ctx)
			status := c.Response().Status
			if status >= http.StatusInternalServerError || !c.Response().Committed {
				if releaseErr := store.Release(ctx, scoped); releaseErr != nil {
					logger.WarnContext(ctx, "failed to release idempotency key", "error", releaseErr)
				}
				return nil
			}

			response := ports.StoredResponse{
				Status:      status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        recorder.body.Bytes(),
			}
			if saveErr := store.Save(ctx, scoped, response, ttl); saveErr != nil {
				logger.WarnContext(ctx, "failed to store idempotent response", "error", saveErr)
			}
			return nil
		}
	}
}

type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Metrics counts requests by route template and status code.
func Metrics(metrics *telemetry.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Response().Status), method).Inc()
			metrics.RequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Tracing continues the caller's trace from the W3C headers and wraps the
// request in a server span.
func Tracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
			ctx, span := telemetry.Tracer().Start(ctx, req.Method+" "+c.Path(), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			c.SetRequest(req.WithContext(ctx))
			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			span.SetAttributes(
				attribute.String("http.method", req.Method),
				attribute.String("http.route", c.Path()),
				attribute.Int("http.status_code", status),
			)
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
			return nil
		}
	}
}
