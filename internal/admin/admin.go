package admin

import (
	"errors"
	"strings"
)

var ErrStatusInvalid = errors.New("admin order status invalid")

// Alerter 阻断式通知回调：任何拉取/更新/删除失败都会经此上报，
// 本地集合保持原样（不做静默局部更新）。
type Alerter interface {
	Alert(message string)
}

// Confirmer 删除确认回调，返回 false 中止操作
type Confirmer func(prompt string) bool

// MatchText 大小写不敏感的自由文本匹配：任一字段包含 query 即命中。
// 空白 query 恒为命中。
func MatchText(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
