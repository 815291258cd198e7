package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/pumpstore-next/internal/api"
	"github.com/pumpstore-next/internal/cart"
	"github.com/pumpstore-next/internal/catalog"
	"github.com/pumpstore-next/internal/logger"
	"github.com/pumpstore-next/internal/models"
)

// LoginRoute 认证流程入口
const LoginRoute = "/login"

// AuthRequiredMessage 未登录加购时携带给登录页的提示
const AuthRequiredMessage = "You must be logged in to add items to your cart."

// DefaultLoginRedirectDelay 未登录加购后跳转登录页的固定延迟
const DefaultLoginRedirectDelay = 1500 * time.Millisecond

var ErrAuthRequired = errors.New("authentication required")

// Navigator 接收跳转信号的界面层回调
type Navigator interface {
	Navigate(target string, message string)
}

// Sessions 门店服务依赖的会话接口
type Sessions interface {
	Authenticated() bool
	Current() *models.UserIdentity
	SetIdentity(token string, identity models.UserIdentity) error
	Clear() error
}

// Upstream 门店服务依赖的上游接口
type Upstream interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*api.AuthResult, error)
	MyOrders(ctx context.Context) ([]models.Order, error)
}

// Options 门店服务配置
type Options struct {
	LoginRedirectDelay time.Duration
}

// Service 门店门面：把会话、目录、购物车与上游认证串起来。
type Service struct {
	upstream  Upstream
	sessions  Sessions
	cart      *cart.Aggregate
	catalog   *catalog.Service
	navigator Navigator

	redirectDelay time.Duration
}

// NewService 创建门店服务。navigator 可为 nil（无跳转信号）。
func NewService(upstream Upstream, sessions Sessions, cartAggregate *cart.Aggregate, catalogService *catalog.Service, navigator Navigator, options Options) *Service {
	delay := options.LoginRedirectDelay
	if delay <= 0 {
		delay = DefaultLoginRedirectDelay
	}
	return &Service{
		upstream:      upstream,
		sessions:      sessions,
		cart:          cartAggregate,
		catalog:       catalogService,
		navigator:     navigator,
		redirectDelay: delay,
	}
}

// Cart 当前购物车聚合
func (s *Service) Cart() *cart.Aggregate {
	return s.cart
}

// Browse 浏览目录
func (s *Service) Browse(ctx context.Context, criteria catalog.Criteria) (*catalog.Result, error) {
	return s.catalog.Browse(ctx, criteria)
}

// AddToCart 加购。未登录时不改动购物车，调度固定延迟后的登录跳转，
// 并返回 ErrAuthRequired。
func (s *Service) AddToCart(product *models.Product, quantity int) (cart.Line, error) {
	if !s.sessions.Authenticated() {
		s.scheduleLoginRedirect()
		return cart.Line{}, ErrAuthRequired
	}
	return s.cart.AddLine(product, quantity)
}

func (s *Service) scheduleLoginRedirect() {
	logger.Infow("login_redirect_scheduled",
		"target", LoginRoute,
		"delay_ms", s.redirectDelay.Milliseconds(),
	)
	if s.navigator == nil {
		return
	}
	time.AfterFunc(s.redirectDelay, func() {
		s.navigator.Navigate(LoginRoute, AuthRequiredMessage)
	})
}

// Login 登录并持久化身份
func (s *Service) Login(ctx context.Context, email, password string) (models.UserIdentity, error) {
	result, err := s.upstream.Login(ctx, email, password)
	if err != nil {
		return models.UserIdentity{}, err
	}
	if err := s.sessions.SetIdentity(result.Token, result.Identity); err != nil {
		return models.UserIdentity{}, err
	}
	logger.Infow("login_succeeded", "user_id", result.Identity.ID, "role", result.Identity.Role)
	return result.Identity, nil
}

// Register 注册并持久化身份
func (s *Service) Register(ctx context.Context, name, email, password string) (models.UserIdentity, error) {
	result, err := s.upstream.Register(ctx, name, email, password)
	if err != nil {
		return models.UserIdentity{}, err
	}
	if err := s.sessions.SetIdentity(result.Token, result.Identity); err != nil {
		return models.UserIdentity{}, err
	}
	logger.Infow("register_succeeded", "user_id", result.Identity.ID)
	return result.Identity, nil
}

// Logout 清除会话
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// MyOrders 当前用户历史订单
func (s *Service) MyOrders(ctx context.Context) ([]models.Order, error) {
	if !s.sessions.Authenticated() {
		return nil, ErrAuthRequired
	}
	return s.upstream.MyOrders(ctx)
}
