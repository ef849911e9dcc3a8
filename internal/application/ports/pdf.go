package ports

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// BillInfo datos de cabecera de la cuenta de una comanda.
type BillInfo struct {
	Restaurant string
	Waiter     string
}

// BillPDFGenerator genera la cuenta de una comanda en PDF.
type BillPDFGenerator interface {
	GenerateOrderBill(ctx context.Context, order *entity.Order, info BillInfo) ([]byte, error)
}
