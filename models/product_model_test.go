package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	p := &Product{Price: 1500, Discount: 200}
	assert.Equal(t, 1300.0, p.FinalPrice())

	p.Discount = 0
	assert.Equal(t, 1500.0, p.FinalPrice())
}

func TestInStock(t *testing.T) {
	assert.False(t, (&Product{}).InStock())
	assert.True(t, (&Product{Stock: 1}).InStock())
}
