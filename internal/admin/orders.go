package admin

import (
	"context"
	"strings"

	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/logger"
	"github.com/pumpstore-next/internal/models"
)

// OrderAPI 订单管理依赖的上游接口
type OrderAPI interface {
	AdminListOrders(ctx context.Context) ([]models.Order, error)
	AdminUpdateOrderStatus(ctx context.Context, orderID, status string) error
	AdminDeleteOrder(ctx context.Context, orderID string) error
}

// OrderBook 管理端订单集合。挂载时全量拉取，检索与状态过滤在
// 已拉取的集合上本地执行；写操作走"先更新、后全量重拉"，
// 不做本地乐观补丁。
type OrderBook struct {
	upstream OrderAPI
	alerter  Alerter

	orders []models.Order
	detail *models.Order // 当前打开的详情视图
}

// NewOrderBook 创建订单管理器
func NewOrderBook(upstream OrderAPI, alerter Alerter) *OrderBook {
	return &OrderBook{upstream: upstream, alerter: alerter}
}

// Refresh 全量拉取订单。失败时上报通知，本地集合保持原样。
func (b *OrderBook) Refresh(ctx context.Context) error {
	orders, err := b.upstream.AdminListOrders(ctx)
	if err != nil {
		alert(b.alerter, "Failed to load orders")
		logger.Errorw("admin_orders_fetch_failed", "error", err)
		return err
	}
	b.orders = orders
	return nil
}

// Orders 当前集合
func (b *OrderBook) Orders() []models.Order {
	return b.orders
}

// Filter 本地过滤：状态等值匹配（all 放行）+ 自由文本检索
// （订单 ID、联系邮箱、客户姓名）。
func (b *OrderBook) Filter(query, status string) []models.Order {
	status = strings.ToLower(strings.TrimSpace(status))
	matched := make([]models.Order, 0, len(b.orders))
	for _, order := range b.orders {
		if status != "" && status != constants.StatusFilterAll &&
			strings.ToLower(order.Status) != status {
			continue
		}
		if !MatchText(query, order.ID, order.Email, order.User.Name) {
			continue
		}
		matched = append(matched, order)
	}
	return matched
}

// OpenDetail 打开订单详情视图
func (b *OrderBook) OpenDetail(orderID string) *models.Order {
	for i := range b.orders {
		if b.orders[i].ID == orderID {
			detail := b.orders[i]
			b.detail = &detail
			return b.detail
		}
	}
	return nil
}

// Detail 当前打开的详情视图，未打开时为 nil
func (b *OrderBook) Detail() *models.Order {
	return b.detail
}

// CloseDetail 关闭详情视图
func (b *OrderBook) CloseDetail() {
	b.detail = nil
}

// UpdateStatus 定向更新订单状态，成功后全量重拉；
// 打开中的详情若命中同一订单则就地补丁状态。
func (b *OrderBook) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !validStatus(status) {
		return ErrStatusInvalid
	}
	if err := b.upstream.AdminUpdateOrderStatus(ctx, orderID, status); err != nil {
		alert(b.alerter, "Failed to update order status")
		logger.Errorw("admin_order_status_update_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
		return err
	}
	if err := b.Refresh(ctx); err != nil {
		return err
	}
	if b.detail != nil && b.detail.ID == orderID {
		b.detail.Status = status
	}
	logger.Infow("admin_order_status_updated", "order_id", orderID, "status", status)
	return nil
}

// Delete 删除订单，需要显式确认。成功后全量重拉，
// 指向被删订单的详情视图随之关闭。返回值指示是否真正执行了删除。
func (b *OrderBook) Delete(ctx context.Context, orderID string, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm("Are you sure you want to delete this order?") {
		return false, nil
	}
	if err := b.upstream.AdminDeleteOrder(ctx, orderID); err != nil {
		alert(b.alerter, "Failed to delete order")
		logger.Errorw("admin_order_delete_failed", "order_id", orderID, "error", err)
		return false, err
	}
	if b.detail != nil && b.detail.ID == orderID {
		b.CloseDetail()
	}
	if err := b.Refresh(ctx); err != nil {
		return true, err
	}
	logger.Infow("admin_order_deleted", "order_id", orderID)
	return true, nil
}

func validStatus(status string) bool {
	for _, candidate := range constants.OrderStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}
