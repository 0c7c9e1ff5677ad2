package controllers

import (
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductsPerPage is the fixed shop page size.
const ProductsPerPage = 10

// ShopQuery describes one filtered, sorted, paged catalog listing.
type ShopQuery struct {
	Filter     bson.M
	Sort       bson.D
	SearchTerm string
	Page       int
	Skip       int64
	Limit      int64
}

// BuildShopQuery translates the shop route's optional query parameters into a
// single filter/sort/paginate description. All parameters are independently
// combinable; anything missing or malformed falls back to a safe default.
func BuildShopQuery(params url.Values) ShopQuery {
	filter := bson.M{}

	// Free-text search matches name, description or category.
	searchTerm := params.Get("search")
	if searchTerm != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(searchTerm), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"category": pattern},
		}
	}

	if categories := params["category"]; len(categories) == 1 {
		filter["category"] = categories[0]
	} else if len(categories) > 1 {
		filter["category"] = bson.M{"$in": categories}
	}

	// Selecting both stock options is the same as selecting neither.
	if stock := params["stock"]; len(stock) > 0 {
		inStock := contains(stock, "inStock")
		outOfStock := contains(stock, "outOfStock")
		switch {
		case inStock && outOfStock:
		case inStock:
			filter["stock"] = bson.M{"$gt": 0}
		case outOfStock:
			filter["stock"] = bson.M{"$eq": 0}
		}
	}

	// The loosest selected rating bound wins.
	if ratings := params["rating"]; len(ratings) > 0 {
		minRating, ok := 0.0, false
		for _, raw := range ratings {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			if !ok || v < minRating {
				minRating, ok = v, true
			}
		}
		if ok {
			filter["rating"] = bson.M{"$gte": minRating}
		}
	}

	if params.Get("featured") == "true" {
		filter["isFeatured"] = true
	}
	if params.Get("discount") == "true" {
		filter["discount"] = bson.M{"$gt": 0}
	}

	var sort bson.D
	switch params.Get("priceSort") {
	case "lowToHigh":
		sort = bson.D{{Key: "price", Value: 1}}
	case "highToLow":
		sort = bson.D{{Key: "price", Value: -1}}
	default:
		sort = bson.D{{Key: "createdAt", Value: -1}} // newest first
	}

	page, err := strconv.Atoi(params.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	return ShopQuery{
		Filter:     filter,
		Sort:       sort,
		SearchTerm: searchTerm,
		Page:       page,
		Skip:       int64((page - 1) * ProductsPerPage),
		Limit:      ProductsPerPage,
	}
}

// TotalPages derives the page count from a match count. It is never below 1
// so the paginator always has a valid state, even with zero results.
func TotalPages(totalProducts int64) int {
	pages := int((totalProducts + ProductsPerPage - 1) / ProductsPerPage)
	if pages < 1 {
		return 1
	}
	return pages
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
