package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abhraroy/thejwel-sub001/models"
)

func TestProductDiscountPercent(t *testing.T) {
	tests := []struct {
		name       string
		basePrice  float64
		finalPrice float64
		want       int
	}{
		{"twenty percent off", 100, 80, 20},
		{"no discount", 100, 100, 0},
		{"final above base", 100, 120, 0},
		{"zero base price", 0, 50, 0},
		{"rounds to nearest", 300, 199, 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Product{BasePrice: tt.basePrice, FinalPrice: tt.finalPrice}
			assert.Equal(t, tt.want, p.DiscountPercent())
		})
	}
}
