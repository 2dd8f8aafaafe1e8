package app

import "github.com/labstack/echo"

// ModuleDependencies provides dependencies that modules may need during initialization.
type ModuleDependencies struct {
	Config *Config
}

// Router gives modules access to the HTTP routing tree.
type Router struct {
	// Root is the echo instance; use it for routes outside /api such as
	// static files.
	Root *echo.Echo

	// API is the /api group.
	API *echo.Group
}

// Module defines the interface that all application modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// RegisterRoutes adds the module's HTTP handlers. Called after Init.
	RegisterRoutes(r Router)

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need configuration.
// Modules implementing this interface will have LoadConfig called before Init.
type ConfigurableModule interface {
	// LoadConfig loads and validates module-specific configuration.
	// Should return an error if required configuration is missing or invalid.
	LoadConfig() error
}
