package provider

import (
	"time"

	"github.com/pumpstore-next/internal/admin"
	"github.com/pumpstore-next/internal/api"
	"github.com/pumpstore-next/internal/cart"
	"github.com/pumpstore-next/internal/catalog"
	"github.com/pumpstore-next/internal/checkout"
	"github.com/pumpstore-next/internal/config"
	"github.com/pumpstore-next/internal/session"
	"github.com/pumpstore-next/internal/storefront"
)

// Container 依赖注入容器
type Container struct {
	Config  *config.Config
	Session *session.Store
	API     *api.Client

	Cart       *cart.Aggregate
	Catalog    *catalog.Service
	Checkout   *checkout.Flow
	Storefront *storefront.Service

	Orders     *admin.OrderBook
	Products   *admin.ProductAdmin
	Categories *admin.CategoryAdmin
	Users      *admin.UserAdmin
}

// NewContainer 初始化容器。navigator/alerter 由界面层注入，可为 nil。
func NewContainer(cfg *config.Config, navigator storefront.Navigator, alerter admin.Alerter) (*Container, error) {
	sessionStore, err := session.Open(cfg.Session.Driver, cfg.Session.DSN, session.PoolConfig{
		MaxOpenConns:           cfg.Session.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Session.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Session.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Session.Pool.ConnMaxIdleTimeSeconds,
	})
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		TimeoutMS: cfg.API.TimeoutMS,
	}, sessionStore)
	if err != nil {
		return nil, err
	}

	cartAggregate := cart.NewAggregate(cart.Options{MergeLines: cfg.Cart.MergeLines})
	catalogService := catalog.NewService(client, catalog.Options{
		FetchLimit:       cfg.Catalog.FetchLimit,
		FallbackToSample: cfg.Catalog.FallbackToSample,
	})
	checkoutFlow := checkout.NewFlow(cartAggregate, client)
	storefrontService := storefront.NewService(client, sessionStore, cartAggregate, catalogService, navigator, storefront.Options{
		LoginRedirectDelay: time.Duration(cfg.Checkout.LoginRedirectDelayMS) * time.Millisecond,
	})

	return &Container{
		Config:     cfg,
		Session:    sessionStore,
		API:        client,
		Cart:       cartAggregate,
		Catalog:    catalogService,
		Checkout:   checkoutFlow,
		Storefront: storefrontService,
		Orders:     admin.NewOrderBook(client, alerter),
		Products:   admin.NewProductAdmin(client, alerter),
		Categories: admin.NewCategoryAdmin(client, alerter),
		Users:      admin.NewUserAdmin(client, alerter),
	}, nil
}

// Close 释放容器持有的资源
func (c *Container) Close() error {
	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}
