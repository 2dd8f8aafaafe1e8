package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

// accessLogFormat is the line format of the HTTP access log.
const accessLogFormat = "method=${method}, uri=${uri}, status=${status}\n"

// App manages the HTTP server lifecycle and module coordination.
type App struct {
	config   *Config
	echo     *echo.Echo
	modules  []Module
	serveErr chan error
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *Config) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: accessLogFormat,
	}))
	e.Use(middleware.Recover())

	return &App{
		config:   cfg,
		echo:     e,
		modules:  make([]Module, 0),
		serveErr: make(chan error, 1),
	}
}

// LoadModules loads modules from the global registry.
func (a *App) LoadModules() {
	a.modules = Modules()
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Start configures and initializes the modules, registers their routes and
// starts serving in the background. Errors of the running server are
// reported on Errors.
func (a *App) Start() error {
	if err := a.loadModuleConfigs(); err != nil {
		return fmt.Errorf("failed to configure modules: %w", err)
	}

	if err := a.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	a.registerRoutes()

	go func() {
		if err := a.echo.Start(a.config.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.serveErr <- err
		}
	}()

	slog.Info("started http server", "addr", a.config.HTTPAddr)

	return nil
}

// Errors returns a channel receiving the error that stopped the server.
func (a *App) Errors() <-chan error {
	return a.serveErr
}

// Stop gracefully shuts down the server, then the modules in reverse
// initialization order.
func (a *App) Stop(ctx context.Context) error {
	err := a.echo.Shutdown(ctx)

	for _, mod := range slices.Backward(a.modules) {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	return err
}

// loadModuleConfigs calls LoadConfig on every ConfigurableModule.
func (a *App) loadModuleConfigs() error {
	for _, mod := range a.modules {
		configurable, ok := mod.(ConfigurableModule)
		if !ok {
			continue
		}
		if err := configurable.LoadConfig(); err != nil {
			return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
		}
	}

	return nil
}

// initModules initializes all loaded modules.
func (a *App) initModules() error {
	deps := ModuleDependencies{
		Config: a.config,
	}

	for _, mod := range a.modules {
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(a.modules))
	for i, mod := range a.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// registerRoutes lets every module add its handlers.
func (a *App) registerRoutes() {
	router := Router{
		Root: a.echo,
		API:  a.echo.Group("/api"),
	}

	for _, mod := range a.modules {
		mod.RegisterRoutes(router)
	}

	slog.Debug("registered routes", "count", len(a.echo.Routes()))
}
