package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"goiashop-bff/internal/cep"
	"goiashop-bff/internal/config"
	"goiashop-bff/internal/domains/address"
	"goiashop-bff/internal/domains/media"
	"goiashop-bff/internal/gateway"
	"goiashop-bff/internal/session"

	addressHandler "goiashop-bff/internal/domains/address/handler"
	addressService "goiashop-bff/internal/domains/address/service"
	authHandler "goiashop-bff/internal/domains/auth/handler"
	authService "goiashop-bff/internal/domains/auth/service"
	catalogHandler "goiashop-bff/internal/domains/catalog/handler"
	catalogService "goiashop-bff/internal/domains/catalog/service"
	mediaHandler "goiashop-bff/internal/domains/media/handler"
	mediaService "goiashop-bff/internal/domains/media/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton wired once at startup; per-request state lives in the
// request context, never here.
type Container struct {
	Config *config.Config

	// Infrastructure
	SessionStore *session.RedisStore
	Sessions     *session.Manager
	Backend      *gateway.Client
	Lookup       *cep.Client

	// Services
	AddressBook *addressService.AddressBook
	Gallery     *mediaService.Gallery
	Catalog     *catalogService.Catalog
	Auth        *authService.Auth

	// Handlers
	AddressHandler *addressHandler.AddressHandler
	ImageHandler   *mediaHandler.ImageHandler
	CatalogHandler *catalogHandler.CatalogHandler
	AuthHandler    *authHandler.AuthHandler
}

// NewContainer builds the whole graph in dependency order:
// config, then infrastructure, then services, then handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("config loaded")

	c.SessionStore = session.NewRedisStore(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.SessionStore.Ping(context.Background()); err != nil {
		// Without the session store every authenticated route is dead;
		// failing fast beats limping.
		return nil, fmt.Errorf("session store unreachable: %w", err)
	}
	log.Info().Str("host", cfg.Redis.Host).Msg("session store connected")

	c.Sessions = session.NewManager(c.SessionStore, cfg.Session.TTL)
	c.Backend = gateway.NewClient(cfg.Backend.BaseURL, session.ContextTokens{}, cfg.Backend.Timeout)
	c.Lookup = cep.NewClient(cfg.Lookup.BaseURL, cfg.Lookup.Timeout)

	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

func (c *Container) initServices() {
	addresses := gateway.NewResource[address.Address](c.Backend,
		"/customers/%s/addresses", "/addresses/%s")
	images := gateway.NewResource[media.Image](c.Backend,
		"/products/%s/images", "/product-images/%s")

	c.AddressBook = addressService.NewAddressBook(addresses, cep.NewAutofill(c.Lookup))
	c.Gallery = mediaService.NewGallery(images)
	c.Catalog = catalogService.NewCatalog(c.Backend)
	c.Auth = authService.NewAuth(c.Backend, c.Sessions)
}

func (c *Container) initHandlers() {
	c.AddressHandler = addressHandler.NewAddressHandler(c.AddressBook)
	c.ImageHandler = mediaHandler.NewImageHandler(c.Gallery)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.Catalog)
	c.AuthHandler = authHandler.NewAuthHandler(c.Auth)
}

// Cleanup releases held resources on shutdown.
func (c *Container) Cleanup() {
	if c.SessionStore != nil {
		if err := c.SessionStore.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close session store")
		}
	}
	log.Info().Msg("container cleanup completed")
}
