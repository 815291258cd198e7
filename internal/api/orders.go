package api

import (
	"context"
	"net/http"

	"github.com/pumpstore-next/internal/models"
)

type ordersEnvelope struct {
	Data struct {
		Orders []models.Order `json:"orders"`
	} `json:"data"`
}

// CreateOrder 提交订单
func (c *Client) CreateOrder(ctx context.Context, input models.CreateOrderInput) error {
	return c.doJSON(ctx, http.MethodPost, "/orders", nil, input, nil)
}

// MyOrders 当前用户的历史订单
func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var resp ordersEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/orders/my", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Orders, nil
}
