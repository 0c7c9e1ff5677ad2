package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"veloura/middleware"
	"veloura/models"
	"veloura/utils"
	"veloura/views"
)

// Cart actions accepted by the update route.
const (
	cartActionIncrease = "increase"
	cartActionDecrease = "decrease"
)

// CartController handles the cart embedded in the user document. Every
// mutation re-reads user and product, applies the change in memory and
// persists the whole user document. Concurrent mutations of the same cart
// can race; the last write wins.
type CartController struct {
	Users    *mongo.Collection
	Products *mongo.Collection
	Flash    *utils.Flash
}

// NewCartController creates a new CartController
func NewCartController(client *mongo.Client, dbName string, flash *utils.Flash) *CartController {
	db := client.Database(dbName)
	return &CartController{
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Flash:    flash,
	}
}

// addToCart creates a line at quantity 1 or increments an existing one,
// bounded by the product's current stock.
func addToCart(user *models.User, product *models.Product) (string, bool) {
	if product.Stock <= 0 {
		return "Sorry, this product is out of stock.", false
	}

	line := user.CartLine(product.ID)
	if line == nil {
		user.Cart = append(user.Cart, models.CartItem{Product: product.ID, Quantity: 1})
		return "Added to cart.", true
	}
	if line.Quantity >= product.Stock {
		return fmt.Sprintf("Sorry, only %d items available in stock.", product.Stock), false
	}
	line.Quantity++
	return "Added to cart.", true
}

// applyCartAction increases or decreases an existing line. Increase is
// capped by stock; decrease never drops below 1 and never removes the line.
func applyCartAction(user *models.User, product *models.Product, action string) (string, bool) {
	line := user.CartLine(product.ID)
	if line == nil {
		return "", false
	}
	switch action {
	case cartActionIncrease:
		if line.Quantity >= product.Stock {
			return fmt.Sprintf("Sorry, only %d items available in stock.", product.Stock), false
		}
		line.Quantity++
		return "Cart updated.", true
	case cartActionDecrease:
		if line.Quantity > 1 {
			line.Quantity--
			return "Cart updated.", true
		}
		return "Minimum quantity is 1. Use delete to remove item.", false
	}
	return "", false
}

// removeFromCart drops the line for the given product, if present.
func removeFromCart(user *models.User, productID primitive.ObjectID) {
	kept := user.Cart[:0]
	for _, item := range user.Cart {
		if item.Product != productID {
			kept = append(kept, item)
		}
	}
	user.Cart = kept
}

func (cc *CartController) saveUser(ctx context.Context, user *models.User) error {
	_, err := cc.Users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

// AddToCart handles GET /addtocart/{id}.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	ajax := utils.IsAjax(r)

	fail := func(message string) {
		if ajax {
			utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": message})
			return
		}
		cc.Flash.Error(w, r, message)
		http.Redirect(w, r, "/shop", http.StatusFound)
	}

	id, err := objectIDVar(r, "id")
	if err != nil {
		fail("Product not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var product models.Product
	err = cc.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			fail("Product not found.")
			return
		}
		zap.S().Errorf("add to cart: %v", err)
		fail("Error adding to cart.")
		return
	}

	message, ok := addToCart(user, &product)
	if !ok {
		fail(message)
		return
	}

	if err := cc.saveUser(ctx, user); err != nil {
		zap.S().Errorf("add to cart: %v", err)
		fail("Error adding to cart.")
		return
	}

	if ajax {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"message":   message,
			"cartCount": user.CartCount(),
		})
		return
	}
	cc.Flash.Success(w, r, message)
	http.Redirect(w, r, "/shop", http.StatusFound)
}

// UpdateCart handles POST /cart/update with productId and action fields.
func (cc *CartController) UpdateCart(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	if err := r.ParseForm(); err != nil {
		cc.Flash.Error(w, r, "Error updating cart.")
		http.Redirect(w, r, "/cart", http.StatusFound)
		return
	}

	id, err := primitive.ObjectIDFromHex(r.PostFormValue("productId"))
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var product models.Product
	if err := cc.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		// Unknown product, nothing to update.
		http.Redirect(w, r, "/cart", http.StatusFound)
		return
	}

	message, ok := applyCartAction(user, &product, r.PostFormValue("action"))
	if ok {
		if err := cc.saveUser(ctx, user); err != nil {
			zap.S().Errorf("update cart: %v", err)
			cc.Flash.Error(w, r, "Error updating cart.")
			http.Redirect(w, r, "/cart", http.StatusFound)
			return
		}
		cc.Flash.Success(w, r, message)
	} else if message != "" {
		cc.Flash.Error(w, r, message)
	}
	http.Redirect(w, r, "/cart", http.StatusFound)
}

// RemoveFromCart handles GET /cart/remove/{id}.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)

	id, err := objectIDVar(r, "id")
	if err != nil {
		cc.Flash.Error(w, r, "Error removing item from cart.")
		http.Redirect(w, r, "/cart", http.StatusFound)
		return
	}

	removeFromCart(user, id)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := cc.saveUser(ctx, user); err != nil {
		zap.S().Errorf("remove from cart: %v", err)
		cc.Flash.Error(w, r, "Error removing item from cart.")
		http.Redirect(w, r, "/cart", http.StatusFound)
		return
	}

	cc.Flash.Success(w, r, "Item removed from cart.")
	http.Redirect(w, r, "/cart", http.StatusFound)
}

// CartLine pairs a cart quantity with its resolved product for rendering.
type CartLine struct {
	Product  models.Product
	Quantity int
}

// ViewCart handles GET /cart, resolving product references and computing the
// item total and subtotal (unit price minus discount).
func (cc *CartController) ViewCart(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	data := pageData(w, r, cc.Flash, user)

	ids := make([]primitive.ObjectID, 0, len(user.Cart))
	for _, item := range user.Cart {
		ids = append(ids, item.Product)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	byID, err := productsByID(ctx, cc.Products, ids)
	if err != nil {
		zap.S().Errorf("view cart: %v", err)
		byID = map[primitive.ObjectID]models.Product{}
	}

	var lines []CartLine
	totalItems := 0
	subtotal := 0.0
	for _, item := range user.Cart {
		product, found := byID[item.Product]
		if !found {
			continue
		}
		lines = append(lines, CartLine{Product: product, Quantity: item.Quantity})
		totalItems += item.Quantity
		subtotal += product.FinalPrice() * float64(item.Quantity)
	}

	data["Lines"] = lines
	data["TotalItems"] = totalItems
	data["Subtotal"] = subtotal
	views.Render(w, "cart.html", data)
}
