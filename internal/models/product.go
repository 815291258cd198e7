package models

import (
	"encoding/json"
	"strings"
)

// CategoryRef 商品分类引用。上游既可能返回内嵌对象
// {"_id":"...","name":"..."}，也可能只返回分类名字符串。
type CategoryRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

// UnmarshalJSON 兼容字符串与对象两种形态
func (c *CategoryRef) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*c = CategoryRef{}
		return nil
	}
	if b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		*c = CategoryRef{Name: name}
		return nil
	}
	type alias CategoryRef
	var parsed alias
	if err := json.Unmarshal(b, &parsed); err != nil {
		return err
	}
	*c = CategoryRef(parsed)
	return nil
}

// MarshalJSON 始终输出分类名
func (c CategoryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Name)
}

// Product 商品
type Product struct {
	ID          string      `json:"_id"`            // 上游主键
	Name        string      `json:"name"`           // 名称
	Description string      `json:"description"`    // 描述
	Price       Money       `json:"price"`          // 单价（非负）
	Category    CategoryRef `json:"category"`       // 分类（字符串或内嵌对象）
	Images      []string    `json:"images"`         // 图片列表
	Stock       int         `json:"stock"`          // 库存（非负）
	Slug        string      `json:"slug,omitempty"` // 展示用 slug，拉取时派生，会话内稳定
}

// CategoryName 解析分类名（内嵌对象优先取 name）
func (p *Product) CategoryName() string {
	return strings.TrimSpace(p.Category.Name)
}

// FirstImage 取首图，无图时返回占位图
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 && strings.TrimSpace(p.Images[0]) != "" {
		return p.Images[0]
	}
	return "/placeholder.jpg"
}

// InStock 是否有货
func (p *Product) InStock() bool {
	return p.Stock > 0
}
