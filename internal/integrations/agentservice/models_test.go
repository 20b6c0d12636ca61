package agentservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscount_Apply_Percentage(t *testing.T) {
	d := &Discount{Type: DiscountPercentage, Value: 10}

	assert.Equal(t, 900.0, d.Apply(1000))
	// Округление до двух знаков
	assert.Equal(t, 89.99, d.Apply(99.99))
}

func TestDiscount_Apply_Flat(t *testing.T) {
	d := &Discount{Type: DiscountFlat, Value: 300}

	assert.Equal(t, 700.0, d.Apply(1000))
}

func TestDiscount_Apply_NeverNegative(t *testing.T) {
	d := &Discount{Type: DiscountFlat, Value: 1500}

	assert.Equal(t, 0.0, d.Apply(1000))
}
