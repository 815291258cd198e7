package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pumpstore-next/internal/models"
)

// AdminListOrders 管理端订单全量列表
func (c *Client) AdminListOrders(ctx context.Context) ([]models.Order, error) {
	var resp ordersEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/admin/orders", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Orders, nil
}

// AdminUpdateOrderStatus 更新订单状态
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, orderID, status string) error {
	body := map[string]string{"status": status}
	return c.doJSON(ctx, http.MethodPut, "/admin/orders/"+url.PathEscape(orderID)+"/status", nil, body, nil)
}

// AdminDeleteOrder 删除订单
func (c *Client) AdminDeleteOrder(ctx context.Context, orderID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/orders/"+url.PathEscape(orderID), nil, nil, nil)
}

// AdminListProducts 管理端商品全量列表
func (c *Client) AdminListProducts(ctx context.Context) ([]models.Product, error) {
	var resp struct {
		Data struct {
			Products []models.Product `json:"products"`
		} `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/products", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Products, nil
}

// AdminUpdateProduct 更新商品字段
func (c *Client) AdminUpdateProduct(ctx context.Context, productID string, fields map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPut, "/admin/products/"+url.PathEscape(productID), nil, fields, nil)
}

// AdminDeleteProduct 删除商品
func (c *Client) AdminDeleteProduct(ctx context.Context, productID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/products/"+url.PathEscape(productID), nil, nil, nil)
}

// AdminListCategories 管理端分类全量列表
func (c *Client) AdminListCategories(ctx context.Context) ([]models.CategoryRef, error) {
	var resp struct {
		Data struct {
			Categories []models.CategoryRef `json:"categories"`
		} `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Categories, nil
}

// AdminDeleteCategory 删除分类
func (c *Client) AdminDeleteCategory(ctx context.Context, categoryID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/categories/"+url.PathEscape(categoryID), nil, nil, nil)
}

// AdminListUsers 管理端用户全量列表
func (c *Client) AdminListUsers(ctx context.Context) ([]models.UserIdentity, error) {
	var resp struct {
		Data struct {
			Users []models.UserIdentity `json:"users"`
		} `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Users, nil
}

// AdminUpdateUserRole 更新用户角色
func (c *Client) AdminUpdateUserRole(ctx context.Context, userID, role string) error {
	body := map[string]string{"role": role}
	return c.doJSON(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(userID), nil, body, nil)
}

// AdminDeleteUser 删除用户
func (c *Client) AdminDeleteUser(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(userID), nil, nil, nil)
}
