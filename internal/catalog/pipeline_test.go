package catalog

import (
	"testing"

	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/models"
)

func sampleListing() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "A", Description: "booster pump", Price: models.NewMoneyFromFloat(10), Category: models.CategoryRef{Name: "Peripheral"}},
		{ID: "p2", Name: "B", Description: "jet pump", Price: models.NewMoneyFromFloat(5), Category: models.CategoryRef{Name: "Self-priming"}},
		{ID: "p3", Name: "C", Description: "pool pump", Price: models.NewMoneyFromFloat(10), Category: models.CategoryRef{Name: "Swimming pool"}},
	}
}

func TestApplyEmptyQueryIsIdentity(t *testing.T) {
	products := sampleListing()
	got := Apply(products, Criteria{Query: "   ", Sort: constants.SortNewest})
	if len(got) != len(products) {
		t.Fatalf("expected identity filter, got %d products", len(got))
	}
	for i := range got {
		if got[i].ID != products[i].ID {
			t.Fatalf("expected fetch order preserved at %d: got=%s expected=%s", i, got[i].ID, products[i].ID)
		}
	}
}

func TestApplyPriceSort(t *testing.T) {
	products := []models.Product{
		{ID: "a", Name: "A", Price: models.NewMoneyFromFloat(10)},
		{ID: "b", Name: "B", Price: models.NewMoneyFromFloat(5)},
	}

	asc := Apply(products, Criteria{Sort: constants.SortPriceAsc})
	if asc[0].Name != "B" || asc[1].Name != "A" {
		t.Fatalf("price-asc expected [B A], got [%s %s]", asc[0].Name, asc[1].Name)
	}

	desc := Apply(products, Criteria{Sort: constants.SortPriceDesc})
	if desc[0].Name != "A" || desc[1].Name != "B" {
		t.Fatalf("price-desc expected [A B], got [%s %s]", desc[0].Name, desc[1].Name)
	}
}

func TestApplyPriceSortIsStableOnTies(t *testing.T) {
	got := Apply(sampleListing(), Criteria{Sort: constants.SortPriceAsc})
	// p1 与 p3 同价，需保持原始相对顺序
	if got[0].ID != "p2" || got[1].ID != "p1" || got[2].ID != "p3" {
		t.Fatalf("expected stable order [p2 p1 p3], got [%s %s %s]", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestApplyQueryMatchesNameDescriptionCategory(t *testing.T) {
	products := sampleListing()

	byName := Apply(products, Criteria{Query: "b"})
	if len(byName) != 1 || byName[0].ID != "p2" {
		t.Fatalf("expected name match p2, got %+v", byName)
	}

	byDescription := Apply(products, Criteria{Query: "JET"})
	if len(byDescription) != 1 || byDescription[0].ID != "p2" {
		t.Fatalf("expected case-insensitive description match p2, got %+v", byDescription)
	}

	byCategory := Apply(products, Criteria{Query: "swimming"})
	if len(byCategory) != 1 || byCategory[0].ID != "p3" {
		t.Fatalf("expected category match p3, got %+v", byCategory)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"QB60 Peripheral Pump":  "qb60-peripheral-pump",
		"  Multi   Usage  ":     "multi-usage",
		"Pump (2\" outlet) #5!": "pump-2-outlet-5",
	}
	for input, expected := range cases {
		if got := Slugify(input); got != expected {
			t.Fatalf("Slugify(%q)=%q expected %q", input, got, expected)
		}
	}
}

func TestNormalizeKeepsExistingSlug(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Name: "QB60 Peripheral Pump"},
		{ID: "p2", Name: "JET100", Slug: "custom-slug"},
	}
	Normalize(products)
	if products[0].Slug != "qb60-peripheral-pump" {
		t.Fatalf("expected derived slug, got %q", products[0].Slug)
	}
	if products[1].Slug != "custom-slug" {
		t.Fatalf("existing slug must stay stable, got %q", products[1].Slug)
	}

	// 再次归一化不改变结果
	Normalize(products)
	if products[0].Slug != "qb60-peripheral-pump" {
		t.Fatalf("slug must be stable across passes, got %q", products[0].Slug)
	}
}
