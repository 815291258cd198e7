package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pumpstore-next/internal/constants"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL}, tokens)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	return client, server
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "   "}, nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL + "/"}, nil)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if _, err := client.ListProducts(context.Background(), 0, ""); err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if gotPath != "/products" {
		t.Fatalf("expected /products, got %s", gotPath)
	}
}

func TestListProductsEnvelopeShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "100" {
			t.Errorf("expected limit=100, got %s", r.URL.Query().Get("limit"))
		}
		if r.URL.Query().Get("category") != "Peripheral" {
			t.Errorf("expected category=Peripheral, got %s", r.URL.Query().Get("category"))
		}
		w.Write([]byte(`{"data":{"products":[
			{"_id":"p1","name":"QB60","price":49.9,"category":{"_id":"c1","name":"Peripheral"},"stock":5},
			{"_id":"p2","name":"JET100","price":88,"category":"Self-priming","stock":0}
		]}}`))
	}), nil)

	products, err := client.ListProducts(context.Background(), constants.DefaultProductFetchLimit, "Peripheral")
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Price.String() != "49.90" {
		t.Fatalf("price mismatch: %s", products[0].Price)
	}
	// 分类字段兼容对象与字符串两种形态
	if products[0].CategoryName() != "Peripheral" || products[1].CategoryName() != "Self-priming" {
		t.Fatalf("category mismatch: %q / %q", products[0].CategoryName(), products[1].CategoryName())
	}
	if !products[0].InStock() || products[1].InStock() {
		t.Fatal("stock flags mismatch")
	}
}

func TestListProductsBareArrayShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"p1","name":"QB60","price":"49.90"}]`))
	}), nil)

	products, err := client.ListProducts(context.Background(), 0, "")
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestListProductsUnexpectedShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"items":[]}}`))
	}), nil)

	if _, err := client.ListProducts(context.Background(), 0, ""); !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}

func TestDoJSONSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), staticToken("jwt-token"))

	if _, err := client.ListProducts(context.Background(), 0, ""); err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if gotAuth != "Bearer jwt-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestDoJSONAnonymousOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), staticToken(""))

	if _, err := client.ListProducts(context.Background(), 0, ""); err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestDoJSONNon2xxCarriesMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}), nil)

	_, err := client.Login(context.Background(), "a@b.c", "nope")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid credentials" {
		t.Fatalf("unexpected error payload: %+v", apiErr)
	}
}

func TestLoginParsesIdentity(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body failed: %v", err)
		}
		if body["email"] != "admin@example.com" {
			t.Errorf("email mismatch: %q", body["email"])
		}
		w.Write([]byte(`{"token":"jwt","data":{"_id":"u1","name":"Admin","email":"admin@example.com","role":"Admin"}}`))
	}), nil)

	result, err := client.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token != "jwt" {
		t.Fatalf("token mismatch: %q", result.Token)
	}
	if result.Identity.ID != "u1" || !result.Identity.IsAdmin {
		t.Fatalf("identity mismatch: %+v", result.Identity)
	}
}

func TestLoginRejectsIncompleteResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"_id":"u1"}}`))
	}), nil)

	if _, err := client.Login(context.Background(), "a@b.c", "x"); !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}
