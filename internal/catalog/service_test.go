package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sivakasi-crackers/internal/common"
)

func TestDefaultCatalog(t *testing.T) {
	svc, err := NewService(ServiceConfig{})
	require.NoError(t, err)
	require.Equal(t, 16, svc.Count())
	require.Len(t, svc.Categories(), 5)

	p, err := svc.Product(" 7 ")
	require.NoError(t, err)
	require.Equal(t, "30cm Gold Sparklers", p.Name)
	require.Equal(t, 100.0, p.Price)

	_, err = svc.Product("404")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Category("fountains")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewServiceRejectsBadData(t *testing.T) {
	cats := []Category{{ID: "shots", Name: "Shots"}}
	cases := map[string][]Product{
		"missing id":       {{ID: " ", Category: "shots"}},
		"duplicate id":     {{ID: "1", Category: "shots"}, {ID: "1", Category: "shots"}},
		"unknown category": {{ID: "1", Category: "rockets"}},
		"negative price":   {{ID: "1", Category: "shots", Price: -1}},
		"discount > 100":   {{ID: "1", Category: "shots", DiscountPercentage: 120}},
		"negative stock":   {{ID: "1", Category: "shots", StockQuantity: -3}},
	}
	for name, products := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewService(ServiceConfig{Categories: cats, Products: products})
			require.Error(t, err)
		})
	}
}

func TestProductsFilter(t *testing.T) {
	svc, err := NewService(ServiceConfig{})
	require.NoError(t, err)

	yes := true
	require.Len(t, svc.Products(Filter{}), 16)
	require.Len(t, svc.Products(Filter{Category: "sparklers"}), 3)
	require.Len(t, svc.Products(Filter{Popular: &yes}), 6)
	require.Len(t, svc.Products(Filter{NewArrival: &yes}), 4)
	require.Len(t, svc.Products(Filter{Query: "SPARKLER"}), 3)
	require.Empty(t, svc.Products(Filter{Category: "bombs", Query: "rocket"}))
}

func TestGroupedKeepsCatalogOrder(t *testing.T) {
	svc, err := NewService(ServiceConfig{
		Categories: []Category{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Products: []Product{
			{ID: "2", Category: "c"},
			{ID: "1", Category: "a"},
			{ID: "3", Category: "a"},
		},
	})
	require.NoError(t, err)
	groups := svc.Grouped()
	require.Len(t, groups, 2)
	require.Equal(t, "a", groups[0].Category.ID)
	require.Equal(t, "1", groups[0].Products[0].ID)
	require.Equal(t, "3", groups[0].Products[1].ID)
	require.Equal(t, "c", groups[1].Category.ID)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(url.Values{"category": {" shots "}, "q": {"multi"}, "popular": {"yes"}, "new": {"0"}})
	require.NoError(t, err)
	require.Equal(t, "shots", f.Category)
	require.Equal(t, "multi", f.Query)
	require.True(t, *f.Popular)
	require.False(t, *f.NewArrival)

	_, err = ParseFilter(url.Values{"popular": {"maybe"}})
	require.Error(t, err)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "BAD_REQUEST", appErr.Code)
}
