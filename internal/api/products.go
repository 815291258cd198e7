package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pumpstore-next/internal/models"
)

// ListProducts 拉取商品列表。category 为空串时请求全量集合，
// 分类过滤由上游完成。兼容两种响应形态：
// {data:{products:[...]}} 与裸数组 [...]。
func (c *Client) ListProducts(ctx context.Context, limit int, category string) ([]models.Product, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if strings.TrimSpace(category) != "" {
		query.Set("category", category)
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/products", query, nil, &raw); err != nil {
		return nil, err
	}
	return parseProductList(raw)
}

func parseProductList(raw json.RawMessage) ([]models.Product, error) {
	var envelope struct {
		Data struct {
			Products []models.Product `json:"products"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data.Products != nil {
		return envelope.Data.Products, nil
	}

	var bare []models.Product
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}
	return nil, fmt.Errorf("%w: unexpected product list shape", ErrResponseInvalid)
}
