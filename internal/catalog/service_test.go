package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/models"
)

type fakeLister struct {
	products     []models.Product
	err          error
	lastLimit    int
	lastCategory string
	calls        int
}

func (f *fakeLister) ListProducts(_ context.Context, limit int, category string) ([]models.Product, error) {
	f.calls++
	f.lastLimit = limit
	f.lastCategory = category
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func TestBrowseUpstream(t *testing.T) {
	upstream := &fakeLister{products: []models.Product{
		{ID: "p1", Name: "QB60 Peripheral Pump", Price: models.NewMoneyFromFloat(49.9)},
	}}
	svc := NewService(upstream, Options{FallbackToSample: true})

	result, err := svc.Browse(context.Background(), Criteria{Category: "Peripheral"})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if result.Source != SourceUpstream {
		t.Fatalf("expected upstream source, got %s", result.Source)
	}
	if upstream.lastCategory != "Peripheral" {
		t.Fatalf("category must be delegated upstream, got %q", upstream.lastCategory)
	}
	if upstream.lastLimit != constants.DefaultProductFetchLimit {
		t.Fatalf("expected default fetch limit, got %d", upstream.lastLimit)
	}
	if result.Products[0].Slug != "qb60-peripheral-pump" {
		t.Fatalf("expected slug normalized at fetch time, got %q", result.Products[0].Slug)
	}
}

func TestBrowseAllCategoriesRequestsUnfiltered(t *testing.T) {
	upstream := &fakeLister{}
	svc := NewService(upstream, Options{})
	if _, err := svc.Browse(context.Background(), Criteria{Category: constants.CategoryAll}); err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if upstream.lastCategory != "" {
		t.Fatalf("All Categories must request the unfiltered set, got %q", upstream.lastCategory)
	}
}

func TestBrowseDegradesToOfflineSample(t *testing.T) {
	upstream := &fakeLister{err: errors.New("connection refused")}
	svc := NewService(upstream, Options{FallbackToSample: true})

	result, err := svc.Browse(context.Background(), Criteria{})
	if err != nil {
		t.Fatalf("degrade branch must not surface an error, got: %v", err)
	}
	if result.Source != SourceOfflineSample {
		t.Fatalf("expected offline_sample source, got %s", result.Source)
	}
	if len(result.Products) == 0 {
		t.Fatal("expected sample products")
	}
}

func TestBrowseOfflineSampleHonorsCriteria(t *testing.T) {
	upstream := &fakeLister{err: errors.New("boom")}
	svc := NewService(upstream, Options{FallbackToSample: true})

	result, err := svc.Browse(context.Background(), Criteria{Query: "solar", Sort: constants.SortPriceAsc})
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(result.Products) == 0 {
		t.Fatal("expected at least one solar match in the sample set")
	}
	for _, product := range result.Products {
		haystack := strings.ToLower(product.Name + " " + product.Description + " " + product.CategoryName())
		if !strings.Contains(haystack, "solar") {
			t.Fatalf("sample result must match query, got %+v", product)
		}
	}
}

func TestBrowseSurfacesErrorWhenFallbackDisabled(t *testing.T) {
	upstream := &fakeLister{err: errors.New("boom")}
	svc := NewService(upstream, Options{FallbackToSample: false})

	if _, err := svc.Browse(context.Background(), Criteria{}); err == nil {
		t.Fatal("expected error when fallback is disabled")
	}
}
