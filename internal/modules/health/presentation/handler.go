package presentation

import (
	"net/http"
	"time"

	"github.com/labstack/echo"

	"github.com/sglre6355/sgrplayer/internal/modules/health/application"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Echo          string    `json:"echo,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

// HealthHandler handles GET /api/health.
type HealthHandler struct {
	ping *application.PingInteractor
	echo *application.EchoInteractor
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		ping: application.NewPingInteractor(),
		echo: application.NewEchoInteractor(),
	}
}

// Handle replies with pong, echoing the optional message query parameter.
func (h *HealthHandler) Handle(c echo.Context) error {
	result := h.ping.Execute()

	resp := HealthResponse{
		Status:        "ok",
		Message:       result.Message,
		Timestamp:     result.Timestamp,
		UptimeSeconds: result.Uptime.Seconds(),
	}

	if echoed := h.echo.Execute(c.QueryParam("message")); echoed.ShouldRespond {
		resp.Echo = echoed.Response
	}

	return c.JSON(http.StatusOK, resp)
}
