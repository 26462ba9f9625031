package graph_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/vastra/app/graph"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, models.Product) {
	t.Helper()

	cat := models.Category{Name: "Men", Slug: "men"}
	require.NoError(t, db.Create(&cat).Error)

	discount := 999.0
	kurta := models.Product{
		Name:          "Cotton Kurta",
		Description:   "Hand-block printed cotton kurta.",
		Price:         1299,
		DiscountPrice: &discount,
		Stock:         10,
		Sizes:         "S,M,L",
		CategoryID:    cat.ID,
	}
	require.NoError(t, db.Create(&kurta).Error)

	belt := models.Product{
		Name:       "Leather Belt",
		Price:      499,
		Stock:      0,
		CategoryID: cat.ID,
	}
	require.NoError(t, db.Create(&belt).Error)

	return cat, kurta
}

func query(t *testing.T, h http.HandlerFunc, q string) map[string]json.RawMessage {
	t.Helper()

	body, err := json.Marshal(map[string]string{"query": q})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Empty(t, out.Errors)
	return out.Data
}

func TestProductsQuery(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)

	data := query(t, graph.Handler(), `{ products { name price finalPrice stock sizes } }`)

	var products []struct {
		Name       string   `json:"name"`
		Price      float64  `json:"price"`
		FinalPrice float64  `json:"finalPrice"`
		Stock      int      `json:"stock"`
		Sizes      []string `json:"sizes"`
	}
	require.NoError(t, json.Unmarshal(data["products"], &products))
	require.Len(t, products, 2)

	byName := map[string]int{products[0].Name: 0, products[1].Name: 1}
	require.Contains(t, byName, "Cotton Kurta")
	require.Contains(t, byName, "Leather Belt")

	kurta := products[byName["Cotton Kurta"]]
	require.Equal(t, 1299.0, kurta.Price)
	require.Equal(t, 999.0, kurta.FinalPrice)
	require.Equal(t, []string{"S", "M", "L"}, kurta.Sizes)

	belt := products[byName["Leather Belt"]]
	require.Equal(t, 499.0, belt.FinalPrice)
	require.Zero(t, belt.Stock)
}

func TestProductByIDQuery(t *testing.T) {
	db := setupDB(t)
	_, kurta := seedCatalog(t, db)

	data := query(t, graph.Handler(),
		`{ product(id: `+jsonInt(kurta.ID)+`) { name discount category { name slug } } }`)

	var product struct {
		Name     string  `json:"name"`
		Discount float64 `json:"discount"`
		Category struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"category"`
	}
	require.NoError(t, json.Unmarshal(data["product"], &product))
	require.Equal(t, "Cotton Kurta", product.Name)
	require.Equal(t, 300.0, product.Discount)
	require.Equal(t, "men", product.Category.Slug)
}

func TestSearchQuery(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db)

	data := query(t, graph.Handler(), `{ search(q: "belt") { name } }`)

	var hits []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(data["search"], &hits))
	require.Len(t, hits, 1)
	require.Equal(t, "Leather Belt", hits[0].Name)
}

func jsonInt(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}
