package models

import "github.com/pumpstore-next/internal/constants"

// UserIdentity 当前登录身份（登录/注册时创建，登出时清除）
type UserIdentity struct {
	ID      string `json:"_id"`     // 上游主键
	Name    string `json:"name"`    // 昵称
	Email   string `json:"email"`   // 邮箱
	Role    string `json:"role"`    // 角色（Admin / User）
	IsAdmin bool   `json:"isAdmin"` // 由角色派生的管理员标记
}

// NewUserIdentity 从上游认证响应构造身份，缺省角色按普通用户处理
func NewUserIdentity(id, name, email, role string) UserIdentity {
	if role == "" {
		role = constants.RoleUser
	}
	return UserIdentity{
		ID:      id,
		Name:    name,
		Email:   email,
		Role:    role,
		IsAdmin: role == constants.RoleAdmin,
	}
}
