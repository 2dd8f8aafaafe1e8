package health

import (
	"github.com/sglre6355/sgrplayer/internal/app"
	"github.com/sglre6355/sgrplayer/internal/modules/health/presentation"
)

func init() {
	app.Register(&HealthModule{})
}

// HealthModule provides the liveness endpoint.
type HealthModule struct {
	handler *presentation.HealthHandler
}

// Name returns the module name.
func (m *HealthModule) Name() string {
	return "health"
}

// Init initializes the module.
func (m *HealthModule) Init(_ app.ModuleDependencies) error {
	m.handler = presentation.NewHealthHandler()
	return nil
}

// RegisterRoutes registers GET /api/health.
func (m *HealthModule) RegisterRoutes(r app.Router) {
	r.API.GET("/health", m.handler.Handle)
}

// Shutdown cleans up module resources.
func (m *HealthModule) Shutdown() error {
	return nil
}
