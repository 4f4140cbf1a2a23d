package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"fulfillment/internal/adapters/in/http/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter assembles the echo instance: recovery, access log, OpenAPI
// request validation, the API routes plus /health, /openapi.json and the
// Swagger UI under /swagger/.
func NewRouter(server servers.ServerInterface, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger.With("component", "http"))

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger.With("component", "http")))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, servers.RawSpec())
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", validator)
	servers.RegisterHandlers(api, server)

	return e, nil
}

// Address formats the listen address for port.
func Address(port string) string {
	return fmt.Sprintf("0.0.0.0:%s", port)
}
