package models

import (
	"encoding/json"
	"time"
)

// ProductRef 订单项中的商品引用。下单时只携带商品 ID 字符串，
// 上游查询订单时可能 populate 为内嵌对象。
type ProductRef struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name,omitempty"`
	Price  Money    `json:"price,omitempty"`
	Images []string `json:"images,omitempty"`
}

// UnmarshalJSON 兼容字符串 ID 与内嵌对象两种形态
func (r *ProductRef) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*r = ProductRef{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = ProductRef{ID: id}
		return nil
	}
	type alias ProductRef
	var parsed alias
	if err := json.Unmarshal(b, &parsed); err != nil {
		return err
	}
	*r = ProductRef(parsed)
	return nil
}

// MarshalJSON 始终输出商品 ID
func (r ProductRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// OrderItem 订单项（下单时对购物车行的快照，独立于后续商品编辑）
type OrderItem struct {
	ProductID ProductRef `json:"productId"` // 商品引用
	Name      string     `json:"name"`      // 快照名称
	Price     Money      `json:"price"`     // 快照单价
	Quantity  int        `json:"quantity"`  // 数量
	Image     string     `json:"image"`     // 快照首图
}

// ShippingAddress 收货地址
type ShippingAddress struct {
	FirstName string `json:"firstName"` // 名
	LastName  string `json:"lastName"`  // 姓
	Address   string `json:"address"`   // 街道地址
	City      string `json:"city"`      // 城市
	State     string `json:"state"`     // 省/州
	ZipCode   string `json:"zipCode"`   // 邮编
}

// OrderUser 订单归属用户（管理端列表内嵌返回）
type OrderUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order 订单
type Order struct {
	ID              string          `json:"_id"`             // 上游主键
	User            OrderUser       `json:"user,omitempty"`  // 归属用户
	Items           []OrderItem     `json:"items"`           // 订单项快照
	ShippingAddress ShippingAddress `json:"shippingAddress"` // 收货地址
	Email           string          `json:"email"`           // 联系邮箱
	Phone           string          `json:"phone"`           // 联系电话
	PaymentMethod   string          `json:"paymentMethod"`   // 支付方式（仅 CASH_ON_DELIVERY）
	Subtotal        Money           `json:"subtotal"`        // 小计快照
	Tax             Money           `json:"tax"`             // 税额快照
	Total           Money           `json:"total"`           // 总额快照
	Status          string          `json:"status"`          // 订单状态
	Notes           string          `json:"notes,omitempty"` // 备注
	CreatedAt       time.Time       `json:"createdAt"`       // 创建时间
	UpdatedAt       time.Time       `json:"updatedAt"`       // 更新时间
}

// CreateOrderInput 下单请求体
type CreateOrderInput struct {
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	PaymentMethod   string          `json:"paymentMethod"`
	Subtotal        Money           `json:"subtotal"`
	Tax             Money           `json:"tax"`
	Total           Money           `json:"total"`
}
