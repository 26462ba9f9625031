package repositories

import (
	"time"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/orm"
)

const relatedLimit = 20

// ProductRepository handles catalogue reads. The order engine mutates stock
// through its own transaction, never through this repository.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Find looks up a product by primary key.
func (r *ProductRepository) Find(id uint) (models.Product, error) {
	var p models.Product
	err := orm.DB().Model(&models.Product{}).Preload("Category").Where("id = ?", id).First(&p)
	return p, err
}

// All returns the full catalogue, newest first, through the cache.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).Order("created_at DESC").
		Cache("catalog:products", time.Minute, &products)
	return products, err
}

// Paged returns one page of the catalogue, newest first, uncached.
func (r *ProductRepository) Paged(page, perPage int) ([]models.Product, orm.Pagination, error) {
	var products []models.Product
	pg, err := orm.DB().Model(&models.Product{}).Order("created_at DESC").
		GetWithPagination(&products, page, perPage)
	return products, pg, err
}

// Categories returns every category.
func (r *ProductRepository) Categories() ([]models.Category, error) {
	var cats []models.Category
	err := orm.DB().Model(&models.Category{}).Cache("catalog:categories", time.Minute, &cats)
	return cats, err
}

// CategoryBySlug looks up a category by its slug.
func (r *ProductRepository) CategoryBySlug(slug string) (models.Category, error) {
	var c models.Category
	err := orm.DB().Model(&models.Category{}).Where("slug = ?", slug).First(&c)
	return c, err
}

// ByCategory lists products in one category.
func (r *ProductRepository) ByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).Where("category_id = ?", categoryID).Get(&products)
	return products, err
}

// Related returns up to 20 other products from the same category.
func (r *ProductRepository) Related(p models.Product) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("category_id = ?", p.CategoryID).
		Not("id = ?", p.ID).
		Limit(relatedLimit).
		Get(&products)
	return products, err
}

// NotIn returns up to 20 products excluding the given ids; used for the
// "you may also like" strip on the cart page.
func (r *ProductRepository) NotIn(ids []uint) ([]models.Product, error) {
	var products []models.Product
	q := orm.DB().Model(&models.Product{})
	if len(ids) > 0 {
		q = q.Not("id IN ?", ids)
	}
	err := q.Limit(relatedLimit).Get(&products)
	return products, err
}

// Search matches q against name and description, optionally restricted to a
// category. An empty query returns no rows, like the storefront search page.
func (r *ProductRepository) Search(query string, categoryID uint) ([]models.Product, error) {
	if query == "" {
		return []models.Product{}, nil
	}

	like := "%" + query + "%"
	q := orm.DB().Model(&models.Product{}).Where("name LIKE ? OR description LIKE ?", like, like)
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	err := q.Get(&products)
	return products, err
}
