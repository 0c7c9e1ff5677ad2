package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories sold by the store.
const (
	CategoryChain    = "chain"
	CategoryRing     = "ring"
	CategoryBracelet = "bracelet"
)

// Categories lists every valid product category.
var Categories = []string{CategoryChain, CategoryRing, CategoryBracelet}

// Product represents a jewelry product in the catalog
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Image         []byte             `bson:"image,omitempty" json:"-"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	Discount      float64            `bson:"discount" json:"discount"`
	Stock         int                `bson:"stock" json:"stock"`
	Category      string             `bson:"category" json:"category"` // "chain", "ring" or "bracelet"
	Rating        float64            `bson:"rating" json:"rating"`     // 0-5
	ReviewCount   int                `bson:"reviewCount" json:"reviewCount"`
	WishlistCount int                `bson:"wishlistCount" json:"wishlistCount"`
	BgColor       string             `bson:"bgcolor" json:"bgcolor"`
	PanelColor    string             `bson:"panelcolor" json:"panelcolor"`
	TextColor     string             `bson:"textcolor" json:"textcolor"`
	IsFeatured    bool               `bson:"isFeatured" json:"isFeatured"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FinalPrice returns the unit price after discount.
func (p *Product) FinalPrice() float64 {
	return p.Price - p.Discount
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
