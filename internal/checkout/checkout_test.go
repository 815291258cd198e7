package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/pumpstore-next/internal/cart"
	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/models"
)

type fakeSubmitter struct {
	err   error
	calls int
	last  models.CreateOrderInput

	// onSubmit 在上游调用期间回调，用于模拟在途重入
	onSubmit func()
}

func (f *fakeSubmitter) CreateOrder(_ context.Context, input models.CreateOrderInput) error {
	f.calls++
	f.last = input
	if f.onSubmit != nil {
		f.onSubmit()
	}
	return f.err
}

func validForm() Form {
	return Form{
		FirstName: "Ada",
		LastName:  "Wang",
		Email:     "ada@example.com",
		Phone:     "13800000000",
		Address:   "1 Pump Street",
		City:      "Taizhou",
		State:     "ZJ",
		ZipCode:   "318000",
	}
}

func loadedCart(t *testing.T) *cart.Aggregate {
	t.Helper()
	aggregate := cart.NewAggregate(cart.Options{MergeLines: true})
	product := &models.Product{ID: "p1", Name: "QB60", Price: models.NewMoneyFromFloat(10)}
	if _, err := aggregate.AddLine(product, 2); err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}
	return aggregate
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	aggregate := loadedCart(t)
	upstream := &fakeSubmitter{}
	flow := NewFlow(aggregate, upstream)

	if err := flow.Submit(context.Background(), validForm()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if flow.State() != StateSucceeded {
		t.Fatalf("expected succeeded state, got %s", flow.State())
	}
	if !aggregate.Empty() {
		t.Fatal("cart must be cleared after a successful submit")
	}
	if upstream.calls != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", upstream.calls)
	}

	input := upstream.last
	if input.PaymentMethod != constants.PaymentMethodCashOnDelivery {
		t.Fatalf("expected cash on delivery, got %s", input.PaymentMethod)
	}
	if input.Subtotal.String() != "20.00" || input.Tax.String() != "1.60" || input.Total.String() != "21.60" {
		t.Fatalf("totals mismatch: subtotal=%s tax=%s total=%s",
			input.Subtotal, input.Tax, input.Total)
	}
	if len(input.Items) != 1 || input.Items[0].Quantity != 2 {
		t.Fatalf("items mismatch: %+v", input.Items)
	}
	if input.ShippingAddress.FirstName != "Ada" || input.Email != "ada@example.com" {
		t.Fatalf("contact mismatch: %+v", input)
	}
}

func TestSubmitValidationFailureSkipsNetwork(t *testing.T) {
	aggregate := loadedCart(t)
	upstream := &fakeSubmitter{}
	flow := NewFlow(aggregate, upstream)

	form := validForm()
	form.FirstName = "   "
	form.Email = "not-an-email"

	err := flow.Submit(context.Background(), form)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Fields[FieldFirstName] != "First name is required" {
		t.Fatalf("first name error mismatch: %q", validationErr.Fields[FieldFirstName])
	}
	if validationErr.Fields[FieldEmail] != "Email is invalid" {
		t.Fatalf("email error mismatch: %q", validationErr.Fields[FieldEmail])
	}
	if upstream.calls != 0 {
		t.Fatalf("validation failure must not hit the network, got %d calls", upstream.calls)
	}
	if flow.State() != StateEditing {
		t.Fatalf("expected editing state after validation failure, got %s", flow.State())
	}
	if flow.FieldErrors()[FieldEmail] != "Email is invalid" {
		t.Fatal("field errors must be retained on the flow")
	}
}

func TestSubmitUpstreamFailureKeepsCart(t *testing.T) {
	aggregate := loadedCart(t)
	upstream := &fakeSubmitter{err: errors.New("502 bad gateway")}
	flow := NewFlow(aggregate, upstream)

	if err := flow.Submit(context.Background(), validForm()); err == nil {
		t.Fatal("expected upstream error to surface")
	}
	if flow.State() != StateFailed {
		t.Fatalf("expected failed state, got %s", flow.State())
	}
	if aggregate.Empty() {
		t.Fatal("cart must stay intact after a failed submit")
	}

	// 失败后可直接重试
	upstream.err = nil
	if err := flow.Submit(context.Background(), validForm()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if flow.State() != StateSucceeded {
		t.Fatalf("expected succeeded state after retry, got %s", flow.State())
	}
	if upstream.calls != 2 {
		t.Fatalf("expected two upstream calls, got %d", upstream.calls)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	aggregate := cart.NewAggregate(cart.Options{})
	flow := NewFlow(aggregate, &fakeSubmitter{})

	if flow.CanCheckout() {
		t.Fatal("empty cart must not be checkoutable")
	}
	if err := flow.Submit(context.Background(), validForm()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestSubmitRejectsReentry(t *testing.T) {
	aggregate := loadedCart(t)
	upstream := &fakeSubmitter{}
	flow := NewFlow(aggregate, upstream)

	var reentryErr error
	upstream.onSubmit = func() {
		reentryErr = flow.Submit(context.Background(), validForm())
	}

	if err := flow.Submit(context.Background(), validForm()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !errors.Is(reentryErr, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight on reentry, got %v", reentryErr)
	}
	if upstream.calls != 1 {
		t.Fatalf("reentry must not trigger a second upstream call, got %d", upstream.calls)
	}
}

func TestValidateTrimsBeforeChecking(t *testing.T) {
	form := validForm()
	form.City = "  Taizhou  "
	if fieldErrors := Validate(form); len(fieldErrors) != 0 {
		t.Fatalf("expected no errors, got %v", fieldErrors)
	}

	form.City = "   "
	fieldErrors := Validate(form)
	if fieldErrors[FieldCity] != "City is required" {
		t.Fatalf("expected city required error, got %v", fieldErrors)
	}
}
