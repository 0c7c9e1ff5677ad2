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

// DashboardStats summarizes the catalog for the owner dashboard.
type DashboardStats struct {
	TotalProducts    int64
	TotalUsers       int64
	TotalOrders      int64
	FeaturedProducts int64
}

// OwnerController renders the owner-only admin pages
type OwnerController struct {
	Users    *mongo.Collection
	Products *mongo.Collection
	Flash    *utils.Flash
}

// NewOwnerController creates a new OwnerController
func NewOwnerController(client *mongo.Client, dbName string, flash *utils.Flash) *OwnerController {
	db := client.Database(dbName)
	return &OwnerController{
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Flash:    flash,
	}
}

// Dashboard handles GET /owners/dashboard.
func (oc *OwnerController) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	data := pageData(w, r, oc.Flash, user)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats := DashboardStats{}
	var err error
	if stats.TotalProducts, err = oc.Products.CountDocuments(ctx, bson.M{}); err != nil {
		zap.S().Errorf("dashboard stats: %v", err)
	}
	if stats.TotalUsers, err = oc.Users.CountDocuments(ctx, bson.M{"role": models.RoleUser}); err != nil {
		zap.S().Errorf("dashboard stats: %v", err)
	}
	if stats.FeaturedProducts, err = oc.Products.CountDocuments(ctx, bson.M{"isFeatured": true}); err != nil {
		zap.S().Errorf("dashboard stats: %v", err)
	}
	// Orders are not implemented yet, the dashboard shows zero.

	recent := []models.Product{}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(5)
	cursor, err := oc.Products.Find(ctx, bson.M{}, opts)
	if err == nil {
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &recent); err != nil {
			zap.S().Errorf("dashboard recent products: %v", err)
		}
	}

	data["Stats"] = stats
	data["RecentProducts"] = recent
	views.Render(w, "owner-dashboard.html", data)
}

// CreateProductPage handles GET /owners/create-product.
func (oc *OwnerController) CreateProductPage(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	views.Render(w, "createproducts.html", pageData(w, r, oc.Flash, user))
}

// ManageProducts handles GET /owners/manage-products, newest first.
func (oc *OwnerController) ManageProducts(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	data := pageData(w, r, oc.Flash, user)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	products := []models.Product{}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := oc.Products.Find(ctx, bson.M{}, opts)
	if err == nil {
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &products); err != nil {
			zap.S().Errorf("manage products: %v", err)
		}
	} else {
		zap.S().Errorf("manage products: %v", err)
	}

	data["Products"] = products
	views.Render(w, "manage-products.html", data)
}

// EditProductPage handles GET /owners/edit-product/{id}.
func (oc *OwnerController) EditProductPage(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)

	id, err := objectIDVar(r, "id")
	if err != nil {
		oc.Flash.Error(w, r, "Product not found")
		http.Redirect(w, r, "/owners/manage-products", http.StatusFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var product models.Product
	if err := oc.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		oc.Flash.Error(w, r, "Product not found")
		http.Redirect(w, r, "/owners/manage-products", http.StatusFound)
		return
	}

	data := pageData(w, r, oc.Flash, user)
	data["Product"] = &product
	views.Render(w, "edit-product.html", data)
}

// DeleteProduct handles GET /owners/delete-product/{id}.
func (oc *OwnerController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDVar(r, "id")
	if err != nil {
		oc.Flash.Error(w, r, "Error deleting product")
		http.Redirect(w, r, "/owners/manage-products", http.StatusFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := oc.Products.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		zap.S().Errorf("deleting product: %v", err)
		oc.Flash.Error(w, r, "Error deleting product")
	} else {
		oc.Flash.Success(w, r, "Product deleted successfully")
	}
	http.Redirect(w, r, "/owners/manage-products", http.StatusFound)
}

// LegacyAdmin redirects the old /owners/admin path to the dashboard.
func (oc *OwnerController) LegacyAdmin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/owners/dashboard", http.StatusFound)
}
