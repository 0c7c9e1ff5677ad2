package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

// CartItem is one line of a user's embedded cart.
type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"` // never below 1
}

// User represents a registered customer or store owner. The cart and
// wishlist live inside the user document and are persisted as a whole.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Username string               `bson:"username" json:"username"`
	Email    string               `bson:"email" json:"email"`
	Password string               `bson:"password,omitempty" json:"-"`
	Role     string               `bson:"role" json:"role"` // "user" or "owner"
	Cart     []CartItem           `bson:"cart" json:"cart"`
	Wishlist []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	Orders   []interface{}        `bson:"orders" json:"orders"`
	Contact  string               `bson:"contact,omitempty" json:"contact,omitempty"`
	Address  string               `bson:"address,omitempty" json:"address,omitempty"`
	Picture  string               `bson:"picture,omitempty" json:"picture,omitempty"`
}

// IsOwner reports whether the user has the owner role.
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// CartCount returns the total quantity across all cart lines.
func (u *User) CartCount() int {
	total := 0
	for _, item := range u.Cart {
		if item.Quantity > 0 {
			total += item.Quantity
		} else {
			total++
		}
	}
	return total
}

// CartLine returns the cart line for the given product, or nil.
func (u *User) CartLine(productID primitive.ObjectID) *CartItem {
	for i := range u.Cart {
		if u.Cart[i].Product == productID {
			return &u.Cart[i]
		}
	}
	return nil
}

// InWishlist reports whether the product is on the user's wishlist.
func (u *User) InWishlist(productID primitive.ObjectID) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}
