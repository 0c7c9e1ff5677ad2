package controllers

import (
	"context"
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

// WishlistController handles the wishlist embedded in the user document and
// the denormalized wishlistCount on products. The membership check and the
// two writes are not atomic; a crash in between leaves the counter off by
// one. That gap is inherited behavior, documented rather than fixed.
type WishlistController struct {
	Users    *mongo.Collection
	Products *mongo.Collection
	Flash    *utils.Flash
}

// NewWishlistController creates a new WishlistController
func NewWishlistController(client *mongo.Client, dbName string, flash *utils.Flash) *WishlistController {
	db := client.Database(dbName)
	return &WishlistController{
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Flash:    flash,
	}
}

// toggleWishlist flips the product's membership in the wishlist. It returns
// true when the product was added, false when it was removed.
func toggleWishlist(user *models.User, productID primitive.ObjectID) bool {
	if user.InWishlist(productID) {
		kept := user.Wishlist[:0]
		for _, id := range user.Wishlist {
			if id != productID {
				kept = append(kept, id)
			}
		}
		user.Wishlist = kept
		return false
	}
	user.Wishlist = append(user.Wishlist, productID)
	return true
}

// Toggle handles GET /addtowishlist/{id}. Toggling twice returns user and
// counter to their original state.
func (wc *WishlistController) Toggle(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	ajax := utils.IsAjax(r)
	referrer := r.Referer()
	if referrer == "" {
		referrer = "/"
	}

	fail := func(message string) {
		if ajax {
			utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": message})
			return
		}
		wc.Flash.Error(w, r, message)
		http.Redirect(w, r, referrer, http.StatusFound)
	}

	id, err := objectIDVar(r, "id")
	if err != nil {
		fail("Error updating wishlist.")
		return
	}

	added := toggleWishlist(user, id)
	message := "Removed from wishlist."
	delta := -1
	if added {
		message = "Added to wishlist."
		delta = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err = wc.Users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		zap.S().Errorf("toggle wishlist: %v", err)
		fail("Error updating wishlist.")
		return
	}

	_, err = wc.Products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"wishlistCount": delta}})
	if err != nil {
		zap.S().Errorf("toggle wishlist counter: %v", err)
		fail("Error updating wishlist.")
		return
	}

	if ajax {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"message":       message,
			"wishlistCount": len(user.Wishlist),
			"isInWishlist":  added,
		})
		return
	}
	wc.Flash.Success(w, r, message)
	http.Redirect(w, r, referrer, http.StatusFound)
}

// ClearAll handles POST /wishlist/clear-all. Product counters stay as they
// are; only the user's list is emptied.
func (wc *WishlistController) ClearAll(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	ajax := utils.IsAjax(r)

	user.Wishlist = []primitive.ObjectID{}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err := wc.Users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		zap.S().Errorf("clear wishlist: %v", err)
		if ajax {
			utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": "Error clearing wishlist."})
			return
		}
		wc.Flash.Error(w, r, "Error clearing wishlist.")
		http.Redirect(w, r, "/wishlist", http.StatusFound)
		return
	}

	if ajax {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Wishlist cleared successfully.",
		})
		return
	}
	wc.Flash.Success(w, r, "Wishlist cleared successfully.")
	http.Redirect(w, r, "/wishlist", http.StatusFound)
}

// View handles GET /wishlist.
func (wc *WishlistController) View(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	data := pageData(w, r, wc.Flash, user)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	byID, err := productsByID(ctx, wc.Products, user.Wishlist)
	if err != nil {
		zap.S().Errorf("view wishlist: %v", err)
		byID = map[primitive.ObjectID]models.Product{}
	}

	var products []models.Product
	for _, id := range user.Wishlist {
		if product, found := byID[id]; found {
			products = append(products, product)
		}
	}

	data["Products"] = products
	views.Render(w, "wishlist.html", data)
}
