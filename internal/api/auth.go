package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pumpstore-next/internal/models"
)

// authResponse 认证响应：{token, data:{_id,name,email,role}}
type authResponse struct {
	Token string `json:"token"`
	Data  struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"data"`
}

// AuthResult 登录/注册结果
type AuthResult struct {
	Token    string
	Identity models.UserIdentity
}

// Login 邮箱密码登录
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return newAuthResult(resp)
}

// Register 注册并登录
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, body, &resp); err != nil {
		return nil, err
	}
	return newAuthResult(resp)
}

func newAuthResult(resp authResponse) (*AuthResult, error) {
	if resp.Token == "" || resp.Data.ID == "" {
		return nil, fmt.Errorf("%w: missing token or identity", ErrResponseInvalid)
	}
	return &AuthResult{
		Token:    resp.Token,
		Identity: models.NewUserIdentity(resp.Data.ID, resp.Data.Name, resp.Data.Email, resp.Data.Role),
	}, nil
}
