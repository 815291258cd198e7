package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/pumpstore-next/internal/cart"
	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/logger"
	"github.com/pumpstore-next/internal/models"
)

// State 结算流程状态
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ConfirmationTarget 提交成功后的跳转目标
const ConfirmationTarget = "/orders"

var (
	ErrCartEmpty      = errors.New("checkout cart is empty")
	ErrSubmitInFlight = errors.New("checkout submit already in flight")
)

// ValidationError 字段级校验失败
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation failed: %d field(s)", len(e.Fields))
}

// Submitter 结算流程依赖的上游接口
type Submitter interface {
	CreateOrder(ctx context.Context, input models.CreateOrderInput) error
}

// Flow 结算流程状态机：Editing → Validating → Submitting → Succeeded/Failed。
// 校验失败回到 Editing 并携带字段错误，不发起网络请求；
// 提交在途期间拒绝重入；成功后清空购物车，失败保持购物车原样、可重试。
type Flow struct {
	cartAggregate *cart.Aggregate
	upstream      Submitter

	state       State
	fieldErrors map[string]string
}

// NewFlow 创建结算流程
func NewFlow(cartAggregate *cart.Aggregate, upstream Submitter) *Flow {
	return &Flow{
		cartAggregate: cartAggregate,
		upstream:      upstream,
		state:         StateEditing,
	}
}

// State 当前状态
func (f *Flow) State() State {
	return f.state
}

// FieldErrors 最近一次校验的字段错误
func (f *Flow) FieldErrors() map[string]string {
	return f.fieldErrors
}

// CanCheckout 结算前置守卫：空购物车直接短路到"无可结算"状态
func (f *Flow) CanCheckout() bool {
	return !f.cartAggregate.Empty()
}

// Submit 校验并提交订单，整个流程恰好发起一次提交调用。
func (f *Flow) Submit(ctx context.Context, form Form) error {
	if f.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	if f.cartAggregate.Empty() {
		return ErrCartEmpty
	}

	f.state = StateValidating
	if fieldErrors := Validate(form); len(fieldErrors) > 0 {
		f.fieldErrors = fieldErrors
		f.state = StateEditing
		return &ValidationError{Fields: fieldErrors}
	}
	f.fieldErrors = nil

	form = form.trimmed()
	input := models.CreateOrderInput{
		Items: f.cartAggregate.Snapshot(),
		ShippingAddress: models.ShippingAddress{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Address:   form.Address,
			City:      form.City,
			State:     form.State,
			ZipCode:   form.ZipCode,
		},
		Email:         form.Email,
		Phone:         form.Phone,
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
		Subtotal:      f.cartAggregate.Subtotal(),
		Tax:           f.cartAggregate.Tax(),
		Total:         f.cartAggregate.Total(),
	}

	f.state = StateSubmitting
	if err := f.upstream.CreateOrder(ctx, input); err != nil {
		// 购物车保持原样，用户可重试
		f.state = StateFailed
		logger.Errorw("checkout_submit_failed", "error", err)
		return err
	}

	f.cartAggregate.Clear()
	f.state = StateSucceeded
	logger.Infow("checkout_submit_succeeded",
		"items", len(input.Items),
		"total", input.Total.String(),
		"next", ConfirmationTarget,
	)
	return nil
}
