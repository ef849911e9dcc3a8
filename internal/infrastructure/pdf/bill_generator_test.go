package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

func TestGenerateOrderBill(t *testing.T) {
	order := &entity.Order{
		ID:          "65f1a2b3c4d5e6f708192a3b",
		TableNumber: 7,
		Status:      entity.OrderServed,
		Items: []entity.OrderItem{
			{DishID: "d1", Name: "Ajiaco santafereño", Quantity: 2, UnitPrice: decimal.RequireFromString("25000.50")},
			{DishID: "d2", Name: "Postre de natas", Quantity: 1, UnitPrice: decimal.NewFromInt(9000), Notes: "sin azúcar"},
		},
		CreatedAt: time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC),
	}
	order.Total = order.ComputeTotal()

	out, err := NewBillGenerator().GenerateOrderBill(context.Background(), order, ports.BillInfo{Restaurant: "La Candelaria", Waiter: "Ana"})
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateOrderBill_ComandaNil(t *testing.T) {
	_, err := NewBillGenerator().GenerateOrderBill(context.Background(), nil, ports.BillInfo{})
	assert.Error(t, err)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "#08192a3b", shortID("65f1a2b3c4d5e6f708192a3b"))
	assert.Equal(t, "#abc", shortID("abc"))
}

func TestFormatMoney(t *testing.T) {
	g := NewBillGenerator()
	assert.Contains(t, g.formatMoney(decimal.NewFromInt(1234567)), "1.234.567")
	assert.Contains(t, g.formatMoney(decimal.RequireFromString("1234567.5")), "1.234.567,50")
}
