package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"roadside/internal/core/ports"
	"roadside/internal/generated/servers"
	"roadside/internal/pkg/telemetry"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// RouterConfig carries the cross-cutting pieces of the HTTP stack. A nil
// Idempotency store disables Idempotency-Key handling.
type RouterConfig struct {
	Metrics        *telemetry.Metrics
	Gatherer       prometheus.Gatherer
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

// NewRouter builds the echo instance: operational endpoints at the root and
// the API under BaseURL.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(swagger); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		Tracing(),
		Metrics(cfg.Metrics),
	)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BaseURL, RequireCustomer(swagger, BaseURL))
	if cfg.Idempotency != nil {
		api.Use(Idempotency(cfg.Idempotency, cfg.IdempotencyTTL, cfg.Logger,
			BaseURL+"/checkout",
			BaseURL+"/payments/success",
		))
	}
	servers.RegisterHandlers(api, server)

	return e, nil
}

type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var swaggerOnce sync.Once

// registerSwaggerDoc hands the embedded document to swag, which serves it as
// /swagger/doc.json. swag panics on a second registration.
func registerSwaggerDoc(swagger *openapi3.T) error {
	doc, err := swagger.MarshalJSON()
	if err != nil {
		return err
	}
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(doc)})
	})
	return nil
}
