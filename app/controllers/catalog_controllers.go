package controllers

import (
	"strconv"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

// CatalogController serves browse and search pages.
type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{service: services.NewCatalogService()}
}

// Home returns the landing page: products newest first, paged when a page
// query is present.
func (ct *CatalogController) Home(c *ctx.Context) {
	pageNum, _ := strconv.Atoi(c.Query("page"))
	page, err := ct.service.Home(currentUser(c), pageNum)
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/")
		return
	}
	c.Success(page)
}

// Category lists one category's products by slug.
func (ct *CatalogController) Category(c *ctx.Context) {
	page, err := ct.service.Category(c.Param("slug"), currentUser(c))
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/")
		return
	}
	c.Success(page)
}

// Detail returns a single product with sizes and related items.
func (ct *CatalogController) Detail(c *ctx.Context) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.NotFound()
		return
	}

	page, err := ct.service.Detail(uint(id), currentUser(c))
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/")
		return
	}
	c.Success(page)
}

// Search matches q against product name/description, optionally scoped to
// category_id.
func (ct *CatalogController) Search(c *ctx.Context) {
	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID = uint(id)
		}
	}

	page, err := ct.service.Search(c.Query("q"), categoryID, currentUser(c))
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/")
		return
	}
	c.Success(page)
}
