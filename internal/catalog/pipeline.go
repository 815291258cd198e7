package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/models"
)

// Criteria 目录筛选条件。Category 由数据源（上游 API）过滤，
// 本地管线只负责文本检索与排序。
type Criteria struct {
	Query    string // 大小写不敏感的子串检索，空白串视为不过滤
	Category string // 分类名，CategoryAll 表示不过滤
	Sort     string // newest / price-asc / price-desc
}

// Apply 纯函数管线：对已拉取的商品列表执行文本过滤与排序。
// 输出顺序对相同输入确定；价格相等时保持原始相对顺序（稳定排序）。
// newest 不做本地重排，保留拉取顺序（按约定上游已按时间倒序返回）。
func Apply(products []models.Product, criteria Criteria) []models.Product {
	filtered := make([]models.Product, 0, len(products))

	query := strings.ToLower(strings.TrimSpace(criteria.Query))
	for _, product := range products {
		if query != "" && !matchesQuery(&product, query) {
			continue
		}
		filtered = append(filtered, product)
	}

	switch criteria.Sort {
	case constants.SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.Cmp(filtered[j].Price.Decimal) < 0
		})
	case constants.SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.Cmp(filtered[j].Price.Decimal) > 0
		})
	}
	return filtered
}

func matchesQuery(product *models.Product, query string) bool {
	if strings.Contains(strings.ToLower(product.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(product.Description), query) {
		return true
	}
	return strings.Contains(strings.ToLower(product.CategoryName()), query)
}

var (
	slugWhitespacePattern = regexp.MustCompile(`\s+`)
	slugInvalidPattern    = regexp.MustCompile(`[^\w-]+`)
)

// Slugify 由名称派生 slug：小写、空白转连字符、剔除非词字符
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugWhitespacePattern.ReplaceAllString(slug, "-")
	slug = slugInvalidPattern.ReplaceAllString(slug, "")
	return slug
}

// Normalize 在拉取后一次性补齐商品的派生字段。
// slug 只在缺失时生成，此后在会话内保持稳定；渲染阶段不再改写商品。
func Normalize(products []models.Product) {
	for i := range products {
		if products[i].Slug == "" {
			products[i].Slug = Slugify(products[i].Name)
		}
	}
}
