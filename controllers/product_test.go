package controllers

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFieldsDefaults(t *testing.T) {
	fields := productFields(url.Values{
		"name":     {"Silver Chain"},
		"price":    {"1499.50"},
		"category": {"chain"},
	})

	assert.Equal(t, "Silver Chain", fields["name"])
	assert.Equal(t, 1499.50, fields["price"])
	assert.Equal(t, 0.0, fields["discount"])
	assert.Equal(t, 0, fields["stock"])
	assert.Equal(t, "#ffffff", fields["bgcolor"])
	assert.Equal(t, "#000000", fields["panelcolor"])
	assert.Equal(t, "#000000", fields["textcolor"])
	assert.Equal(t, false, fields["isFeatured"])
}

func TestProductFieldsParsesNumbersAndFlags(t *testing.T) {
	fields := productFields(url.Values{
		"name":       {"Gold Ring"},
		"price":      {"2999"},
		"discount":   {"250.5"},
		"stock":      {"12"},
		"category":   {"ring"},
		"bgcolor":    {"#fafafa"},
		"isFeatured": {"true"},
	})

	assert.Equal(t, 2999.0, fields["price"])
	assert.Equal(t, 250.5, fields["discount"])
	assert.Equal(t, 12, fields["stock"])
	assert.Equal(t, "#fafafa", fields["bgcolor"])
	assert.Equal(t, true, fields["isFeatured"])
}

func TestProductFieldsClampsNegativeStock(t *testing.T) {
	fields := productFields(url.Values{"stock": {"-4"}})
	assert.Equal(t, 0, fields["stock"])
}

func TestSeedRatingRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		rating := seedRating()
		assert.GreaterOrEqual(t, rating, 3.5)
		assert.LessOrEqual(t, rating, 5.0)
		// one decimal place
		assert.InDelta(t, rating, math.Round(rating*10)/10, 1e-9)
	}
}
