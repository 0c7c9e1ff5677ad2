package controllers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"veloura/middleware"
	"veloura/models"
	"veloura/utils"
	"veloura/views"
)

// HeroImage is one slide of the homepage hero carousel.
type HeroImage struct {
	ImageURL string
	Title    string
}

var heroImages = []HeroImage{
	{ImageURL: "/chain.jpeg", Title: "Premium Chain Collection"},
	{ImageURL: "/ring.jpeg", Title: "Exquisite Ring Designs"},
	{ImageURL: "/bracelet.jpeg", Title: "Stunning Bracelet Collection"},
}

// ShopController renders the storefront's browse pages
type ShopController struct {
	Products *mongo.Collection
	Auth     *middleware.Auth
	Flash    *utils.Flash
}

// NewShopController creates a new ShopController
func NewShopController(client *mongo.Client, dbName string, auth *middleware.Auth, flash *utils.Flash) *ShopController {
	return &ShopController{
		Products: client.Database(dbName).Collection("products"),
		Auth:     auth,
		Flash:    flash,
	}
}

// pageData assembles the fields every page template expects: flash messages,
// login state and the cart/wishlist badge counts.
func pageData(w http.ResponseWriter, r *http.Request, flash *utils.Flash, user *models.User) map[string]interface{} {
	errorMsgs, successMsgs := flash.Pop(w, r)
	data := map[string]interface{}{
		"Error":         errorMsgs,
		"Success":       successMsgs,
		"LoggedIn":      user != nil,
		"IsOwner":       user != nil && user.IsOwner(),
		"CartCount":     0,
		"WishlistCount": 0,
	}
	if user != nil {
		data["CartCount"] = user.CartCount()
		data["WishlistCount"] = len(user.Wishlist)
		data["User"] = user
	}
	return data
}

// Home renders the landing page with three featured product rails, falling
// back to any products of a category when none are flagged as featured.
func (sc *ShopController) Home(w http.ResponseWriter, r *http.Request) {
	user := sc.Auth.OptionalUser(r)
	data := pageData(w, r, sc.Flash, user)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	data["FeaturedChains"] = sc.featuredRail(ctx, models.CategoryChain)
	data["FeaturedRings"] = sc.featuredRail(ctx, models.CategoryRing)
	data["FeaturedBracelets"] = sc.featuredRail(ctx, models.CategoryBracelet)
	data["HeroImages"] = heroImages

	views.Render(w, "index.html", data)
}

func (sc *ShopController) featuredRail(ctx context.Context, category string) []models.Product {
	rail := sc.findProducts(ctx, bson.M{"isFeatured": true, "category": category}, 3)
	if len(rail) == 0 {
		rail = sc.findProducts(ctx, bson.M{"category": category}, 3)
	}
	return rail
}

func (sc *ShopController) findProducts(ctx context.Context, filter bson.M, limit int64) []models.Product {
	cursor, err := sc.Products.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		zap.S().Errorf("finding products: %v", err)
		return nil
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		zap.S().Errorf("reading products: %v", err)
		return nil
	}
	return products
}

// Shop renders the filtered, sorted, paged product listing. Any error on
// this read path is logged and the page renders with an empty result set and
// safe defaults instead of failing the request.
func (sc *ShopController) Shop(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	data := pageData(w, r, sc.Flash, user)

	query := BuildShopQuery(r.URL.Query())
	data["SearchTerm"] = query.SearchTerm
	data["CurrentPage"] = query.Page
	data["ProductsPerPage"] = ProductsPerPage

	products, total, err := sc.listProducts(r.Context(), query)
	if err != nil {
		zap.S().Errorf("shop listing error: %v", err)
		data["Products"] = []models.Product{}
		data["TotalProducts"] = 0
		data["TotalPages"] = 1
		data["CurrentPage"] = 1
		views.Render(w, "shop.html", data)
		return
	}

	data["Products"] = products
	data["TotalProducts"] = total
	data["TotalPages"] = TotalPages(total)
	views.Render(w, "shop.html", data)
}

func (sc *ShopController) listProducts(ctx context.Context, query ShopQuery) ([]models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	total, err := sc.Products.CountDocuments(ctx, query.Filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(query.Sort).SetSkip(query.Skip).SetLimit(query.Limit)
	cursor, err := sc.Products.Find(ctx, query.Filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Image serves a product's stored image bytes.
func (sc *ShopController) Image(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDVar(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var product models.Product
	err = sc.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil || len(product.Image) == 0 {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(product.Image))
	w.Write(product.Image)
}

// InfoPage returns a handler rendering a static informational page with the
// visitor's login state.
func (sc *ShopController) InfoPage(template string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := sc.Auth.OptionalUser(r)
		views.Render(w, template, pageData(w, r, sc.Flash, user))
	}
}
