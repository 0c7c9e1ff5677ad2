package controllers

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"veloura/models"
	"veloura/utils"
)

const maxImageSize = 10 << 20 // 10 MiB multipart memory limit

// ProductController handles owner-side product create and update
type ProductController struct {
	Products *mongo.Collection
	Flash    *utils.Flash
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client, dbName string, flash *utils.Flash) *ProductController {
	return &ProductController{
		Products: client.Database(dbName).Collection("products"),
		Flash:    flash,
	}
}

// productFields reads the shared create/update form fields, applying the
// same defaults for missing numbers and colors as the product form offers.
func productFields(values url.Values) bson.M {
	price, _ := strconv.ParseFloat(values.Get("price"), 64)
	discount, _ := strconv.ParseFloat(values.Get("discount"), 64)
	stock, _ := strconv.Atoi(values.Get("stock"))
	if stock < 0 {
		stock = 0
	}

	fields := bson.M{
		"name":        values.Get("name"),
		"description": values.Get("description"),
		"price":       price,
		"discount":    discount,
		"stock":       stock,
		"category":    values.Get("category"),
		"bgcolor":     defaultString(values.Get("bgcolor"), "#ffffff"),
		"panelcolor":  defaultString(values.Get("panelcolor"), "#000000"),
		"textcolor":   defaultString(values.Get("textcolor"), "#000000"),
		"isFeatured":  values.Get("isFeatured") == "true",
	}
	return fields
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// seedRating returns the display rating given to new products: 3.5 to 5.0
// with one decimal.
func seedRating() float64 {
	return math.Round((rand.Float64()*1.5+3.5)*10) / 10
}

func readImage(r *http.Request) []byte {
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil
	}
	return data
}

// Create handles POST /products/create (owner only).
func (pc *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		pc.Flash.Error(w, r, "Error creating product: "+err.Error())
		http.Redirect(w, r, "/owners/create-product", http.StatusFound)
		return
	}

	fields := productFields(r.MultipartForm.Value)
	name, _ := fields["name"].(string)
	if name == "" || fields["price"].(float64) <= 0 {
		pc.Flash.Error(w, r, "Error creating product: name and price are required")
		http.Redirect(w, r, "/owners/create-product", http.StatusFound)
		return
	}
	if !contains(models.Categories, fields["category"].(string)) {
		pc.Flash.Error(w, r, "Error creating product: invalid category")
		http.Redirect(w, r, "/owners/create-product", http.StatusFound)
		return
	}

	now := time.Now()
	fields["image"] = readImage(r)
	fields["rating"] = seedRating()
	fields["reviewCount"] = rand.Intn(150) + 25
	fields["wishlistCount"] = rand.Intn(30) + 5
	fields["createdAt"] = now
	fields["updatedAt"] = now

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := pc.Products.InsertOne(ctx, fields); err != nil {
		zap.S().Errorf("creating product: %v", err)
		pc.Flash.Error(w, r, "Error creating product: "+err.Error())
		http.Redirect(w, r, "/owners/create-product", http.StatusFound)
		return
	}

	message := fmt.Sprintf("Successfully created %q! Stock: %v items available.", name, fields["stock"])
	if fields["isFeatured"] == true {
		message += " This product will be featured on the homepage."
	}
	pc.Flash.Success(w, r, message)
	http.Redirect(w, r, "/owners/create-product", http.StatusFound)
}

// Update handles POST /products/update/{id} (owner only). The image is only
// replaced when a new file was uploaded.
func (pc *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDVar(r, "id")
	if err != nil {
		pc.Flash.Error(w, r, "Error updating product: invalid product id")
		http.Redirect(w, r, "/owners/manage-products", http.StatusFound)
		return
	}
	editURL := "/owners/edit-product/" + id.Hex()

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		pc.Flash.Error(w, r, "Error updating product: "+err.Error())
		http.Redirect(w, r, editURL, http.StatusFound)
		return
	}

	fields := productFields(r.MultipartForm.Value)
	if !contains(models.Categories, fields["category"].(string)) {
		pc.Flash.Error(w, r, "Error updating product: invalid category")
		http.Redirect(w, r, editURL, http.StatusFound)
		return
	}
	fields["updatedAt"] = time.Now()
	if image := readImage(r); image != nil {
		fields["image"] = image
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	result, err := pc.Products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		zap.S().Errorf("updating product: %v", err)
		pc.Flash.Error(w, r, "Error updating product: "+err.Error())
		http.Redirect(w, r, editURL, http.StatusFound)
		return
	}
	if result.MatchedCount == 0 {
		pc.Flash.Error(w, r, "Error updating product: product not found")
		http.Redirect(w, r, "/owners/manage-products", http.StatusFound)
		return
	}

	pc.Flash.Success(w, r, fmt.Sprintf("Successfully updated %q! Stock: %v items available.", fields["name"], fields["stock"]))
	http.Redirect(w, r, "/owners/manage-products", http.StatusFound)
}
