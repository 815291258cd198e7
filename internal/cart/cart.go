package cart

import (
	"errors"

	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNilProduct      = errors.New("cart product is nil")
	ErrInvalidQuantity = errors.New("cart quantity invalid")
	ErrLineNotFound    = errors.New("cart line not found")
)

// taxRate 固定税率，见 constants.TaxRate
var taxRate = decimal.RequireFromString(constants.TaxRate)

// Line 购物车行。ID 为会话内随机标识，不持久化；
// 行内字段是加入时刻的商品快照。
type Line struct {
	ID        string       // 会话内行标识
	ProductID string       // 商品引用
	Name      string       // 快照名称
	Price     models.Money // 快照单价
	Quantity  int          // 数量，恒 ≥ 1
	Image     string       // 快照首图
}

// Options 聚合行为配置
type Options struct {
	// MergeLines 为 true 时重复加购同一商品合并到既有行（数量累加），
	// 行标识保持首次生成的值；为 false 时重现源实现的行为：
	// 每次加购都生成独立行与新随机标识。
	MergeLines bool
}

// Aggregate 会话内购物车聚合。小计/税额/总额始终从行重新计算，
// 从不独立存储，不存在漂移。所有变更同步生效，调用方读到的
// 永远是最新聚合。仅供单一事件循环使用，不做并发保护。
type Aggregate struct {
	lines      []Line
	mergeLines bool
}

// NewAggregate 创建空购物车
func NewAggregate(options Options) *Aggregate {
	return &Aggregate{mergeLines: options.MergeLines}
}

// AddLine 加入商品。quantity 为 0 时按 1 处理，负数报错。
func (a *Aggregate) AddLine(product *models.Product, quantity int) (Line, error) {
	if product == nil {
		return Line{}, ErrNilProduct
	}
	if quantity < 0 {
		return Line{}, ErrInvalidQuantity
	}
	if quantity == 0 {
		quantity = 1
	}

	if a.mergeLines {
		for i := range a.lines {
			if a.lines[i].ProductID == product.ID {
				a.lines[i].Quantity += quantity
				return a.lines[i], nil
			}
		}
	}

	line := Line{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		Image:     product.FirstImage(),
	}
	a.lines = append(a.lines, line)
	return line, nil
}

// RemoveLine 整行移除
func (a *Aggregate) RemoveLine(lineID string) error {
	for i := range a.lines {
		if a.lines[i].ID == lineID {
			a.lines = append(a.lines[:i], a.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// SetQuantity 调整行数量。降为 0 时移除整行（去掉最后一件即删行）。
func (a *Aggregate) SetQuantity(lineID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return a.RemoveLine(lineID)
	}
	for i := range a.lines {
		if a.lines[i].ID == lineID {
			a.lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear 清空购物车
func (a *Aggregate) Clear() {
	a.lines = nil
}

// Lines 返回行副本
func (a *Aggregate) Lines() []Line {
	lines := make([]Line, len(a.lines))
	copy(lines, a.lines)
	return lines
}

// Count 商品件数合计
func (a *Aggregate) Count() int {
	total := 0
	for i := range a.lines {
		total += a.lines[i].Quantity
	}
	return total
}

// Empty 是否为空
func (a *Aggregate) Empty() bool {
	return len(a.lines) == 0
}

// Subtotal 小计 = Σ(单价 × 数量)
func (a *Aggregate) Subtotal() models.Money {
	sum := decimal.Zero
	for i := range a.lines {
		lineTotal := a.lines[i].Price.Mul(decimal.NewFromInt(int64(a.lines[i].Quantity)))
		sum = sum.Add(lineTotal)
	}
	return models.NewMoneyFromDecimal(sum)
}

// Tax 税额 = 小计 × 固定税率
func (a *Aggregate) Tax() models.Money {
	return models.NewMoneyFromDecimal(a.Subtotal().Mul(taxRate))
}

// Total 总额 = 小计 + 税额
func (a *Aggregate) Total() models.Money {
	return models.NewMoneyFromDecimal(a.Subtotal().Add(a.Tax().Decimal))
}

// Snapshot 生成下单用的订单项快照（独立于后续商品编辑）
func (a *Aggregate) Snapshot() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(a.lines))
	for i := range a.lines {
		line := a.lines[i]
		items = append(items, models.OrderItem{
			ProductID: models.ProductRef{ID: line.ProductID},
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}
	return items
}
