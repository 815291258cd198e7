package constants

// 订单状态常量（与上游 API 保持一致）
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusConfirmed  = "confirmed" // processing 的历史别名，仅入站兼容
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses 管理端可选的订单状态集合
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// 支付方式常量
const (
	PaymentMethodCashOnDelivery = "CASH_ON_DELIVERY"
)

// 用户角色常量
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// 目录排序常量
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// CategoryAll 分类筛选哨兵值：不向上游传递 category 参数
const CategoryAll = "All Categories"

// StatusFilterAll 状态筛选哨兵值：不过滤状态
const StatusFilterAll = "all"

// TaxRate 固定税率（8%）
const TaxRate = "0.08"

// DefaultProductFetchLimit 商品列表默认拉取上限
const DefaultProductFetchLimit = 100
