package admin

import (
	"context"
	"strings"

	"github.com/pumpstore-next/internal/logger"
	"github.com/pumpstore-next/internal/models"
)

// CollectionAPI 其余管理集合依赖的上游接口
type CollectionAPI interface {
	AdminListProducts(ctx context.Context) ([]models.Product, error)
	AdminUpdateProduct(ctx context.Context, productID string, fields map[string]interface{}) error
	AdminDeleteProduct(ctx context.Context, productID string) error
	AdminListCategories(ctx context.Context) ([]models.CategoryRef, error)
	AdminDeleteCategory(ctx context.Context, categoryID string) error
	AdminListUsers(ctx context.Context) ([]models.UserIdentity, error)
	AdminUpdateUserRole(ctx context.Context, userID, role string) error
	AdminDeleteUser(ctx context.Context, userID string) error
}

// ProductAdmin 管理端商品集合，语义与 OrderBook 一致：
// 全量拉取、本地过滤、写后重拉。
type ProductAdmin struct {
	upstream CollectionAPI
	alerter  Alerter
	products []models.Product
}

// NewProductAdmin 创建商品管理器
func NewProductAdmin(upstream CollectionAPI, alerter Alerter) *ProductAdmin {
	return &ProductAdmin{upstream: upstream, alerter: alerter}
}

// Refresh 全量拉取商品
func (a *ProductAdmin) Refresh(ctx context.Context) error {
	products, err := a.upstream.AdminListProducts(ctx)
	if err != nil {
		alert(a.alerter, "Failed to load products")
		logger.Errorw("admin_products_fetch_failed", "error", err)
		return err
	}
	a.products = products
	return nil
}

// Products 当前集合
func (a *ProductAdmin) Products() []models.Product {
	return a.products
}

// Filter 本地过滤：名称、描述、分类名
func (a *ProductAdmin) Filter(query string) []models.Product {
	matched := make([]models.Product, 0, len(a.products))
	for _, product := range a.products {
		if MatchText(query, product.Name, product.Description, product.CategoryName()) {
			matched = append(matched, product)
		}
	}
	return matched
}

// Update 更新商品字段，成功后全量重拉
func (a *ProductAdmin) Update(ctx context.Context, productID string, fields map[string]interface{}) error {
	if err := a.upstream.AdminUpdateProduct(ctx, productID, fields); err != nil {
		alert(a.alerter, "Failed to update product")
		logger.Errorw("admin_product_update_failed", "product_id", productID, "error", err)
		return err
	}
	return a.Refresh(ctx)
}

// Delete 删除商品，需要显式确认
func (a *ProductAdmin) Delete(ctx context.Context, productID string, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm("Are you sure you want to delete this product?") {
		return false, nil
	}
	if err := a.upstream.AdminDeleteProduct(ctx, productID); err != nil {
		alert(a.alerter, "Failed to delete product")
		logger.Errorw("admin_product_delete_failed", "product_id", productID, "error", err)
		return false, err
	}
	return true, a.Refresh(ctx)
}

// CategoryAdmin 管理端分类集合
type CategoryAdmin struct {
	upstream   CollectionAPI
	alerter    Alerter
	categories []models.CategoryRef
}

// NewCategoryAdmin 创建分类管理器
func NewCategoryAdmin(upstream CollectionAPI, alerter Alerter) *CategoryAdmin {
	return &CategoryAdmin{upstream: upstream, alerter: alerter}
}

// Refresh 全量拉取分类
func (a *CategoryAdmin) Refresh(ctx context.Context) error {
	categories, err := a.upstream.AdminListCategories(ctx)
	if err != nil {
		alert(a.alerter, "Failed to load categories")
		logger.Errorw("admin_categories_fetch_failed", "error", err)
		return err
	}
	a.categories = categories
	return nil
}

// Categories 当前集合
func (a *CategoryAdmin) Categories() []models.CategoryRef {
	return a.categories
}

// Filter 本地过滤：分类名
func (a *CategoryAdmin) Filter(query string) []models.CategoryRef {
	matched := make([]models.CategoryRef, 0, len(a.categories))
	for _, category := range a.categories {
		if MatchText(query, category.Name) {
			matched = append(matched, category)
		}
	}
	return matched
}

// Delete 删除分类，需要显式确认
func (a *CategoryAdmin) Delete(ctx context.Context, categoryID string, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm("Are you sure you want to delete this category?") {
		return false, nil
	}
	if err := a.upstream.AdminDeleteCategory(ctx, categoryID); err != nil {
		alert(a.alerter, "Failed to delete category")
		logger.Errorw("admin_category_delete_failed", "category_id", categoryID, "error", err)
		return false, err
	}
	return true, a.Refresh(ctx)
}

// UserAdmin 管理端用户集合
type UserAdmin struct {
	upstream CollectionAPI
	alerter  Alerter
	users    []models.UserIdentity
}

// NewUserAdmin 创建用户管理器
func NewUserAdmin(upstream CollectionAPI, alerter Alerter) *UserAdmin {
	return &UserAdmin{upstream: upstream, alerter: alerter}
}

// Refresh 全量拉取用户
func (a *UserAdmin) Refresh(ctx context.Context) error {
	users, err := a.upstream.AdminListUsers(ctx)
	if err != nil {
		alert(a.alerter, "Failed to load users")
		logger.Errorw("admin_users_fetch_failed", "error", err)
		return err
	}
	a.users = users
	return nil
}

// Users 当前集合
func (a *UserAdmin) Users() []models.UserIdentity {
	return a.users
}

// Filter 本地过滤：姓名、邮箱、角色等值可叠加
func (a *UserAdmin) Filter(query, role string) []models.UserIdentity {
	role = strings.TrimSpace(role)
	matched := make([]models.UserIdentity, 0, len(a.users))
	for _, user := range a.users {
		if role != "" && !strings.EqualFold(user.Role, role) {
			continue
		}
		if !MatchText(query, user.Name, user.Email) {
			continue
		}
		matched = append(matched, user)
	}
	return matched
}

// UpdateRole 更新用户角色，成功后全量重拉
func (a *UserAdmin) UpdateRole(ctx context.Context, userID, role string) error {
	if err := a.upstream.AdminUpdateUserRole(ctx, userID, role); err != nil {
		alert(a.alerter, "Failed to update user role")
		logger.Errorw("admin_user_role_update_failed", "user_id", userID, "role", role, "error", err)
		return err
	}
	return a.Refresh(ctx)
}

// Delete 删除用户，需要显式确认
func (a *UserAdmin) Delete(ctx context.Context, userID string, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm("Are you sure you want to delete this user?") {
		return false, nil
	}
	if err := a.upstream.AdminDeleteUser(ctx, userID); err != nil {
		alert(a.alerter, "Failed to delete user")
		logger.Errorw("admin_user_delete_failed", "user_id", userID, "error", err)
		return false, err
	}
	return true, a.Refresh(ctx)
}

func alert(alerter Alerter, message string) {
	if alerter != nil {
		alerter.Alert(message)
	}
}
