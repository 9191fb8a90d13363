package products_test

import (
	"net/http/httptest"
	"testing"

	"vestra/models"
	"vestra/products"
	"vestra/utils"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter(t *testing.T) {
	assert.Empty(t, products.BuildFilter("", ""))

	f := products.BuildFilter("shirt", "")
	rx, ok := f["name"].(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, "shirt", rx.Pattern)
	assert.Equal(t, "i", rx.Options)

	f = products.BuildFilter("", "Jeans")
	assert.Equal(t, "Jeans", f["category"])
	assert.NotContains(t, f, "name")

	f = products.BuildFilter("denim", "Jeans")
	assert.Len(t, f, 2)
}

func TestBuildFilter_QuotesRegexMetacharacters(t *testing.T) {
	f := products.BuildFilter("t-shirt (v2)", "")
	rx := f["name"].(primitive.Regex)
	assert.Equal(t, `t-shirt \(v2\)`, rx.Pattern)
}

func TestParsePage(t *testing.T) {
	for query, want := range map[string]int{
		"":          1,
		"?page=0":   1,
		"?page=-3":  1,
		"?page=abc": 1,
		"?page=2":   2,
		"?page=17":  17,
	} {
		r := httptest.NewRequest("GET", "/api/products"+query, nil)
		assert.Equal(t, want, utils.ParsePage(r, "page"), "query %q", query)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, utils.TotalPages(0, products.PageSize))
	assert.Equal(t, 1, utils.TotalPages(1, products.PageSize))
	assert.Equal(t, 1, utils.TotalPages(10, products.PageSize))
	assert.Equal(t, 2, utils.TotalPages(11, products.PageSize))
	assert.Equal(t, 2, utils.TotalPages(20, products.PageSize))
	assert.Equal(t, 3, utils.TotalPages(21, products.PageSize))
}

func TestMerge_FallsBackToExistingValues(t *testing.T) {
	existing := models.Product{
		Name:         "Classic White T-Shirt",
		Description:  "Organic cotton",
		Brand:        "Fashion Brand",
		Category:     "T-Shirts",
		Price:        29.99,
		CountInStock: 10,
		Sizes:        []string{"S", "M", "L"},
	}

	newPrice := 24.99
	merged := products.Merge(existing, products.ProductUpdate{Price: &newPrice})

	assert.Equal(t, 24.99, merged.Price)
	assert.Equal(t, existing.Name, merged.Name)
	assert.Equal(t, existing.Category, merged.Category)
	assert.Equal(t, existing.Sizes, merged.Sizes)
	assert.Equal(t, existing.CountInStock, merged.CountInStock)
}

func TestMerge_ReplacesProvidedFields(t *testing.T) {
	existing := models.Product{Name: "Old", CountInStock: 5}

	name := "New"
	stock := 0
	merged := products.Merge(existing, products.ProductUpdate{
		Name:         &name,
		CountInStock: &stock,
		Sizes:        []string{"XL"},
		Colors:       []models.Color{{Name: "Navy", Value: "#000080"}},
	})

	assert.Equal(t, "New", merged.Name)
	assert.Equal(t, 0, merged.CountInStock)
	assert.Equal(t, []string{"XL"}, merged.Sizes)
	assert.Equal(t, "Navy", merged.Colors[0].Name)
}
