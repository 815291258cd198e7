package models

import (
	"encoding/json"
	"testing"

	"github.com/pumpstore-next/internal/constants"
)

func TestMoneyMarshalEmitsNumber(t *testing.T) {
	raw, err := json.Marshal(NewMoneyFromFloat(21.6))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != "21.60" {
		t.Fatalf("expected bare JSON number 21.60, got %s", raw)
	}
}

func TestMoneyUnmarshalNumberAndString(t *testing.T) {
	var fromNumber Money
	if err := json.Unmarshal([]byte(`49.9`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if fromNumber.String() != "49.90" {
		t.Fatalf("number parse mismatch: %s", fromNumber)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"49.90"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if !fromNumber.Equal(fromString.Decimal) {
		t.Fatalf("string parse mismatch: %s != %s", fromNumber, fromString)
	}
}

func TestMoneyRoundsToTwoDecimals(t *testing.T) {
	subtotal := NewMoneyFromFloat(19.999)
	if subtotal.String() != "20.00" {
		t.Fatalf("expected 2-decimal rounding, got %s", subtotal)
	}
	tax := subtotal.MulInt(3)
	if tax.String() != "60.00" {
		t.Fatalf("MulInt mismatch: %s", tax)
	}
}

func TestCategoryRefBothShapes(t *testing.T) {
	var fromObject CategoryRef
	if err := json.Unmarshal([]byte(`{"_id":"c1","name":"Peripheral"}`), &fromObject); err != nil {
		t.Fatalf("unmarshal object failed: %v", err)
	}
	if fromObject.ID != "c1" || fromObject.Name != "Peripheral" {
		t.Fatalf("object parse mismatch: %+v", fromObject)
	}

	var fromString CategoryRef
	if err := json.Unmarshal([]byte(`"Self-priming"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.Name != "Self-priming" || fromString.ID != "" {
		t.Fatalf("string parse mismatch: %+v", fromString)
	}

	raw, err := json.Marshal(fromObject)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"Peripheral"` {
		t.Fatalf("marshal must emit the name, got %s", raw)
	}
}

func TestProductRefBothShapes(t *testing.T) {
	var fromString ProductRef
	if err := json.Unmarshal([]byte(`"p1"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if fromString.ID != "p1" {
		t.Fatalf("string parse mismatch: %+v", fromString)
	}

	var fromObject ProductRef
	if err := json.Unmarshal([]byte(`{"_id":"p1","name":"QB60","price":49.9}`), &fromObject); err != nil {
		t.Fatalf("unmarshal object failed: %v", err)
	}
	if fromObject.ID != "p1" || fromObject.Name != "QB60" {
		t.Fatalf("object parse mismatch: %+v", fromObject)
	}

	raw, err := json.Marshal(fromObject)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"p1"` {
		t.Fatalf("marshal must emit the id, got %s", raw)
	}
}

func TestProductHelpers(t *testing.T) {
	product := Product{Stock: 2, Images: []string{"/a.jpg", "/b.jpg"}}
	if !product.InStock() || product.FirstImage() != "/a.jpg" {
		t.Fatalf("helper mismatch: %+v", product)
	}

	empty := Product{}
	if empty.InStock() {
		t.Fatal("zero stock must be out of stock")
	}
	if empty.FirstImage() != "/placeholder.jpg" {
		t.Fatalf("expected placeholder image, got %s", empty.FirstImage())
	}
}

func TestNewUserIdentityRoleDefaults(t *testing.T) {
	admin := NewUserIdentity("u1", "Ada", "ada@example.com", constants.RoleAdmin)
	if !admin.IsAdmin {
		t.Fatal("admin role must set the admin flag")
	}
	user := NewUserIdentity("u2", "Bob", "bob@example.com", "")
	if user.Role != constants.RoleUser || user.IsAdmin {
		t.Fatalf("blank role must default to user: %+v", user)
	}
}
