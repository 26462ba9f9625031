package services

import (
	"errors"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/orm"
	"gorm.io/gorm"
)

// CatalogService serves the browse/search surface: home page, category
// pages, product detail and text search.
type CatalogService struct {
	products *repositories.ProductRepository
	carts    *repositories.CartRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		products: repositories.NewProductRepository(),
		carts:    repositories.NewCartRepository(),
	}
}

// HomePage is the landing payload: full catalogue plus categories and the
// viewer's cart badge count (zero for guests).
type HomePage struct {
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
	Pagination *orm.Pagination   `json:"pagination,omitempty"`
	CartCount  int               `json:"cart_count"`
}

const homePerPage = 24

// Home returns the landing payload. Page 0 means "everything", served from
// the cache; an explicit page goes to the database with page metadata.
func (s *CatalogService) Home(userID uint, page int) (HomePage, error) {
	var (
		products   []models.Product
		pagination *orm.Pagination
		err        error
	)
	if page > 0 {
		var pg orm.Pagination
		products, pg, err = s.products.Paged(page, homePerPage)
		pagination = &pg
	} else {
		products, err = s.products.All()
	}
	if err != nil {
		return HomePage{}, err
	}

	categories, err := s.products.Categories()
	if err != nil {
		return HomePage{}, err
	}
	return HomePage{
		Products:   products,
		Categories: categories,
		Pagination: pagination,
		CartCount:  s.cartCount(userID),
	}, nil
}

// CategoryPage lists one category's products.
type CategoryPage struct {
	Category  models.Category  `json:"category"`
	Products  []models.Product `json:"products"`
	CartCount int              `json:"cart_count"`
}

func (s *CatalogService) Category(slug string, userID uint) (CategoryPage, error) {
	category, err := s.products.CategoryBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryPage{}, ErrNotFound
		}
		return CategoryPage{}, err
	}
	products, err := s.products.ByCategory(category.ID)
	if err != nil {
		return CategoryPage{}, err
	}
	return CategoryPage{
		Category:  category,
		Products:  products,
		CartCount: s.cartCount(userID),
	}, nil
}

// DetailPage is a single product with its size options and related items.
type DetailPage struct {
	Product   models.Product   `json:"product"`
	Sizes     []string         `json:"sizes"`
	Related   []models.Product `json:"related_products"`
	CartCount int              `json:"cart_count"`
}

func (s *CatalogService) Detail(productID, userID uint) (DetailPage, error) {
	product, err := s.products.Find(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DetailPage{}, ErrNotFound
		}
		return DetailPage{}, err
	}
	related, err := s.products.Related(product)
	if err != nil {
		return DetailPage{}, err
	}
	return DetailPage{
		Product:   product,
		Sizes:     product.SizeList(),
		Related:   related,
		CartCount: s.cartCount(userID),
	}, nil
}

// SearchPage holds text-search results.
type SearchPage struct {
	Query     string           `json:"query"`
	Products  []models.Product `json:"products"`
	CartCount int              `json:"cart_count"`
}

func (s *CatalogService) Search(query string, categoryID, userID uint) (SearchPage, error) {
	products, err := s.products.Search(query, categoryID)
	if err != nil {
		return SearchPage{}, err
	}
	return SearchPage{
		Query:     query,
		Products:  products,
		CartCount: s.cartCount(userID),
	}, nil
}

func (s *CatalogService) cartCount(userID uint) int {
	if userID == 0 {
		return 0
	}
	return s.carts.Count(userID)
}
