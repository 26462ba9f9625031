// Package graph exposes the catalog over GraphQL.
package graph

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	gql "github.com/shashiranjanraj/vastra/pkg/graphql"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.Int},
		"name": &graphql.Field{Type: graphql.String},
		"slug": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"finalPrice": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, _ := p.Source.(models.Product)
				return product.FinalPrice(), nil
			},
		},
		"discount": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, _ := p.Source.(models.Product)
				return product.Discount(), nil
			},
		},
		"stock":    &graphql.Field{Type: graphql.Int},
		"sizes":    &graphql.Field{Type: graphql.NewList(graphql.String), Resolve: resolveSizes},
		"image":    &graphql.Field{Type: graphql.String, Resolve: resolveImage},
		"category": &graphql.Field{Type: categoryType, Resolve: resolveCategory},
	},
})

func resolveSizes(p graphql.ResolveParams) (interface{}, error) {
	product, _ := p.Source.(models.Product)
	return product.SizeList(), nil
}

func resolveImage(p graphql.ResolveParams) (interface{}, error) {
	product, _ := p.Source.(models.Product)
	return product.ImagePath, nil
}

func resolveCategory(p graphql.ResolveParams) (interface{}, error) {
	product, _ := p.Source.(models.Product)
	if product.Category.ID == 0 {
		return nil, nil
	}
	return product.Category, nil
}

// NewSchema builds the catalog query schema on top of the repositories.
func NewSchema() (graphql.Schema, error) {
	products := repositories.NewProductRepository()

	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return products.All()
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return products.Find(uint(id))
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return products.Categories()
				},
			},
			"search": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"q":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"categoryId": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q, _ := p.Args["q"].(string)
					var categoryID uint
					if raw, ok := p.Args["categoryId"].(int); ok {
						categoryID = uint(raw)
					}
					return products.Search(q, categoryID)
				},
			},
		},
	})

	return gql.NewSchema(root)
}

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Handler serves POST /graphql. If the schema cannot be built every request
// gets an explicit 500 rather than answers from a zero-valued schema.
func Handler() http.HandlerFunc {
	schema, err := NewSchema()
	if err != nil {
		logger.Error("graph: schema build failed", "error", err)
		return unavailable
	}
	return serve(schema)
}

func unavailable(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "catalog schema unavailable", http.StatusInternalServerError)
}

func serve(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if r.Method == http.MethodGet {
			req.Query = r.URL.Query().Get("query")
		} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.Error("graph: encode response", "error", err)
		}
	}
}
