package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderLineRemaining(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		sent     int
		want     int
	}{
		{"nothing sent", 10, 0, 10},
		{"partially sent", 10, 4, 6},
		{"fully sent", 10, 10, 0},
		{"clamped at zero", 10, 12, 0},
		{"zero quantity", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &OrderLine{Quantity: tt.quantity, QuantitySent: tt.sent}
			assert.Equal(t, tt.want, l.Remaining())
		})
	}
}
