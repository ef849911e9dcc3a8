package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una comanda.
type OrderStatus string

// Estados de la comanda.
const (
	OrderPending   OrderStatus = "pending"
	OrderTaken     OrderStatus = "taken"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderAction transición solicitada sobre una comanda.
type OrderAction string

// Acciones de transición.
const (
	ActionTake    OrderAction = "take"
	ActionPrepare OrderAction = "prepare"
	ActionReady   OrderAction = "ready"
	ActionServe   OrderAction = "serve"
	ActionPay     OrderAction = "pay"
	ActionCancel  OrderAction = "cancel"
)

// OrderTransition estados de origen admitidos y estado destino de una acción.
type OrderTransition struct {
	From []OrderStatus
	To   OrderStatus
}

// OrderTransitions tabla de transiciones válidas.
var OrderTransitions = map[OrderAction]OrderTransition{
	ActionTake:    {From: []OrderStatus{OrderPending}, To: OrderTaken},
	ActionPrepare: {From: []OrderStatus{OrderTaken}, To: OrderPreparing},
	ActionReady:   {From: []OrderStatus{OrderPreparing}, To: OrderReady},
	ActionServe:   {From: []OrderStatus{OrderReady}, To: OrderServed},
	ActionPay:     {From: []OrderStatus{OrderServed}, To: OrderPaid},
	ActionCancel:  {From: []OrderStatus{OrderPending, OrderTaken}, To: OrderCancelled},
}

// OrderItem línea de la comanda; Name y UnitPrice se copian del plato al crearla.
type OrderItem struct {
	DishID    string          `bson:"dishId" json:"dishId" validate:"required"`
	Name      string          `bson:"name" json:"name"`
	Quantity  int             `bson:"quantity" json:"quantity" validate:"min=1"`
	UnitPrice decimal.Decimal `bson:"unitPrice" json:"unitPrice"`
	Notes     string          `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Subtotal cantidad por precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order comanda de una mesa.
type Order struct {
	ID          string          `bson:"_id,omitempty" json:"id"`
	TableNumber int             `bson:"tableNumber" json:"tableNumber" validate:"min=1"`
	Items       []OrderItem     `bson:"items" json:"items" validate:"min=1,dive"`
	Status      OrderStatus     `bson:"status" json:"status" validate:"required"`
	Total       decimal.Decimal `bson:"total" json:"total"`
	CreatedBy   string          `bson:"createdBy" json:"createdBy" validate:"required"`
	HandledBy   string          `bson:"handledBy,omitempty" json:"handledBy,omitempty"`
	Version     int64           `bson:"__v" json:"-"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// ComputeTotal suma los subtotales de las líneas.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
