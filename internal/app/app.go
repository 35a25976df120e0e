// Package app wires configuration, the operation registry, and the HTTP
// handlers together.
package app

import (
	"socialportal/internal/common"
	"socialportal/internal/config"
	"socialportal/internal/handlers"
	"socialportal/internal/mcp"
	"socialportal/internal/oauth"
	"socialportal/internal/providers"
	"socialportal/internal/registry"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Registry   *registry.Registry
	Dispatcher *registry.Dispatcher

	// HTTP handlers
	MCPHandler     *mcp.Handler
	LegacyHandler  *handlers.LegacyHandler
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
}

// New initializes the application with all dependencies. The registry is
// fully populated before this returns; nothing registers afterward.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	a.Registry = registry.New()
	a.Dispatcher = registry.NewDispatcher(a.Registry, logger)

	a.registerOperations(buildCatalogue(cfg, logger))

	a.MCPHandler = mcp.NewHandler(a.Dispatcher, logger)
	a.LegacyHandler = handlers.NewLegacyHandler(a.Dispatcher, logger)
	a.HealthHandler = handlers.NewHealthHandler(logger)
	a.VersionHandler = handlers.NewVersionHandler(logger)

	logger.Info().
		Int("tools", len(a.Registry.Tools())).
		Int("resources", len(a.Registry.Resources())).
		Msg("application initialization complete")

	return a, nil
}

// catalogue bundles everything the executors need.
type catalogue struct {
	linkedinOAuth  *oauth.Provider
	twitterOAuth   *oauth.Provider
	facebookOAuth  *oauth.Provider
	instagramOAuth *oauth.Provider

	linkedin  *providers.LinkedIn
	twitter   *providers.Twitter
	facebook  *providers.Facebook
	instagram *providers.Instagram
	ai        *providers.AI
}

func buildCatalogue(cfg *config.Config, logger *common.Logger) *catalogue {
	creds := func(name string) config.ProviderConfig {
		pc, _ := cfg.Provider(name)
		return pc
	}

	return &catalogue{
		linkedinOAuth:  oauth.NewLinkedIn(creds("linkedin"), logger),
		twitterOAuth:   oauth.NewTwitter(creds("twitter"), logger),
		facebookOAuth:  oauth.NewFacebook(creds("facebook"), logger),
		instagramOAuth: oauth.NewInstagram(creds("instagram"), logger),

		linkedin:  providers.NewLinkedIn(logger),
		twitter:   providers.NewTwitter(logger),
		facebook:  providers.NewFacebook(logger),
		instagram: providers.NewInstagram(logger),
		ai:        providers.NewAI(cfg.AI, logger),
	}
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
