package catalog

import (
	"context"
	"strings"

	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/logger"
	"github.com/pumpstore-next/internal/models"
)

// 目录数据来源标记
const (
	SourceUpstream      = "upstream"
	SourceOfflineSample = "offline_sample"
)

// Lister 目录服务依赖的上游接口
type Lister interface {
	ListProducts(ctx context.Context, limit int, category string) ([]models.Product, error)
}

// Options 目录服务配置
type Options struct {
	FetchLimit       int
	FallbackToSample bool
}

// Service 目录服务：按条件拉取商品并执行本地管线。
// 不取消被新条件取代的在途请求，后完成的响应覆盖先到的（last-writer-wins）。
type Service struct {
	upstream         Lister
	fetchLimit       int
	fallbackToSample bool
}

// Result 浏览结果
type Result struct {
	Products []models.Product
	Source   string // upstream / offline_sample
}

// NewService 创建目录服务
func NewService(upstream Lister, options Options) *Service {
	limit := options.FetchLimit
	if limit <= 0 {
		limit = constants.DefaultProductFetchLimit
	}
	return &Service{
		upstream:         upstream,
		fetchLimit:       limit,
		fallbackToSample: options.FallbackToSample,
	}
}

// Browse 拉取并筛选目录。分类过滤交给上游（CategoryAll 表示全量），
// 文本检索与排序在本地执行。上游请求失败或响应形态异常时，
// 降级为内置示例数据而不是向用户报错（离线/演示模式）。
func (s *Service) Browse(ctx context.Context, criteria Criteria) (*Result, error) {
	category := strings.TrimSpace(criteria.Category)
	if category == constants.CategoryAll {
		category = ""
	}

	products, err := s.upstream.ListProducts(ctx, s.fetchLimit, category)
	if err != nil {
		if !s.fallbackToSample {
			return nil, err
		}
		logger.Warnw("catalog_fetch_degraded",
			"error", err,
			"source", SourceOfflineSample,
		)
		return &Result{
			Products: Apply(SampleProducts(), criteria),
			Source:   SourceOfflineSample,
		}, nil
	}

	Normalize(products)
	return &Result{
		Products: Apply(products, criteria),
		Source:   SourceUpstream,
	}, nil
}
