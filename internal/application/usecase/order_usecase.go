package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/permission"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// OrderUseCase comandas: alta, consulta, transiciones de estado y cuenta en PDF.
type OrderUseCase struct {
	repo       repository.Repository[entity.Order]
	dishes     repository.Repository[entity.Dish]
	users      repository.Repository[entity.User]
	bills      ports.BillPDFGenerator
	restaurant string
	log        zerolog.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	repo repository.Repository[entity.Order],
	dishes repository.Repository[entity.Dish],
	users repository.Repository[entity.User],
	bills ports.BillPDFGenerator,
	restaurant string,
	log zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{repo: repo, dishes: dishes, users: users, bills: bills, restaurant: restaurant, log: log}
}

// Create registra una comanda con precios tomados de los platos al momento del pedido.
func (uc *OrderUseCase) Create(ctx context.Context, p *entity.Principal, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !permission.CanManageOrders(p.Role) {
		return nil, apperr.Forbidden("no tiene permiso para crear comandas")
	}
	ids := make([]string, 0, len(in.Items))
	seen := make(map[string]struct{}, len(in.Items))
	for i, it := range in.Items {
		if err := repository.CheckID(fmt.Sprintf("items.%d.dishId", i), it.DishID); err != nil {
			return nil, err
		}
		if _, ok := seen[it.DishID]; !ok {
			seen[it.DishID] = struct{}{}
			ids = append(ids, it.DishID)
		}
	}
	byID := make(map[string]*entity.Dish, len(ids))
	for _, d := range uc.dishes.FindManyBy(ctx, repository.Condition{"_id": map[string]any{"$in": ids}}) {
		byID[d.ID] = d
	}

	order := &entity.Order{
		TableNumber: in.TableNumber,
		Status:      entity.OrderPending,
		CreatedBy:   p.UserID,
		Items:       make([]entity.OrderItem, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		dish, ok := byID[it.DishID]
		if !ok {
			return nil, apperr.BadRequest(fmt.Sprintf("el plato %s no existe", it.DishID))
		}
		if !dish.Available {
			return nil, apperr.BadRequest(fmt.Sprintf("el plato %q no está disponible", dish.Name))
		}
		order.Items = append(order.Items, entity.OrderItem{
			DishID:    dish.ID,
			Name:      dish.Name,
			Quantity:  it.Quantity,
			UnitPrice: dish.Price,
			Notes:     it.Notes,
		})
	}
	order.Total = order.ComputeTotal()

	saved, err := uc.repo.Insert(ctx, order)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}
	uc.log.Info().Str("order_id", saved.ID).Int("table", saved.TableNumber).Str("total", saved.Total.String()).Msg("comanda creada")
	return toOrderResponse(saved), nil
}

// List comandas visibles para el actor: el personal ve todas, el cliente solo las suyas.
func (uc *OrderUseCase) List(ctx context.Context, p *entity.Principal, f dto.OrderFilter) []dto.OrderResponse {
	f.DefaultPage()
	cond := repository.Condition{}
	if !isStaff(p.Role) {
		cond["createdBy"] = p.UserID
	}
	if f.Status != "" {
		cond["status"] = f.Status
	}
	orders := uc.repo.FindManyBy(ctx, cond, repository.FindOptions{Limit: int64(f.Limit), Offset: int64(f.Offset)})
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o))
	}
	return out
}

// Get comanda por id; un cliente solo ve las propias.
func (uc *OrderUseCase) Get(ctx context.Context, p *entity.Principal, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Transition aplica una acción sobre la comanda. La escritura condiciona el estado de origen
// para que dos transiciones simultáneas no puedan aplicarse ambas.
func (uc *OrderUseCase) Transition(ctx context.Context, p *entity.Principal, id string, action entity.OrderAction) (*dto.OrderResponse, error) {
	tr, ok := entity.OrderTransitions[action]
	if !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("acción desconocida %q", action))
	}
	order, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	from, err := allowedFrom(p, order, action, tr)
	if err != nil {
		return nil, err
	}

	fields := repository.Fields{"status": tr.To}
	if isStaff(p.Role) {
		fields["handledBy"] = p.UserID
	}
	cond := repository.Condition{"_id": order.ID, "status": map[string]any{"$in": from}}
	if !uc.repo.UpdateOneBy(ctx, cond, fields) {
		current := uc.repo.FindOneByID(ctx, order.ID)
		if current == nil {
			return nil, apperr.NotFound("comanda no encontrada")
		}
		if current.Status != order.Status {
			return nil, apperr.Conflict(fmt.Sprintf("la comanda cambió a %s; no se puede aplicar %s", current.Status, action))
		}
		return nil, apperr.Internal(errors.New("no se pudo actualizar la comanda"))
	}
	uc.log.Info().Str("order_id", order.ID).Str("from", string(order.Status)).Str("to", string(tr.To)).
		Str("by", p.UserID).Msg("transición de comanda")

	order.Status = tr.To
	if h, ok := fields["handledBy"].(string); ok {
		order.HandledBy = h
	}
	if fresh := uc.repo.FindOneByID(ctx, order.ID); fresh != nil {
		order = fresh
	}
	return toOrderResponse(order), nil
}

// Bill genera la cuenta en PDF de una comanda servida o pagada.
func (uc *OrderUseCase) Bill(ctx context.Context, p *entity.Principal, id string) ([]byte, error) {
	order, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderServed && order.Status != entity.OrderPaid {
		return nil, apperr.Conflict("la cuenta solo está disponible para comandas servidas o pagadas")
	}
	info := ports.BillInfo{Restaurant: uc.restaurant}
	if order.HandledBy != "" {
		if waiter := uc.users.FindOneByID(ctx, order.HandledBy); waiter != nil {
			info.Waiter = waiter.Name
		}
	}
	pdf, err := uc.bills.GenerateOrderBill(ctx, order, info)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return pdf, nil
}

func (uc *OrderUseCase) load(ctx context.Context, p *entity.Principal, id string) (*entity.Order, error) {
	if err := repository.CheckID("id", id); err != nil {
		return nil, err
	}
	order := uc.repo.FindOneByID(ctx, id)
	if order == nil || (!isStaff(p.Role) && order.CreatedBy != p.UserID) {
		return nil, apperr.NotFound("comanda no encontrada")
	}
	return order, nil
}

// allowedFrom verifica el permiso de la acción y devuelve los estados de origen admitidos
// para este actor.
func allowedFrom(p *entity.Principal, order *entity.Order, action entity.OrderAction, tr entity.OrderTransition) ([]entity.OrderStatus, error) {
	var allowed bool
	from := tr.From
	switch action {
	case entity.ActionTake, entity.ActionServe:
		allowed = permission.CanTakeOrders(p.Role)
	case entity.ActionPrepare, entity.ActionReady:
		allowed = permission.CanPrepareOrders(p.Role)
	case entity.ActionPay:
		allowed = permission.CanManageOrders(p.Role)
	case entity.ActionCancel:
		allowed = permission.CanTakeOrders(p.Role)
		if !allowed && order.CreatedBy == p.UserID {
			// El cliente solo cancela antes de que la tomen.
			allowed = true
			from = []entity.OrderStatus{entity.OrderPending}
		}
	}
	if !allowed {
		return nil, apperr.Forbidden(fmt.Sprintf("su rol no puede ejecutar %s", action))
	}
	for _, s := range from {
		if s == order.Status {
			return from, nil
		}
	}
	return nil, apperr.Conflict(fmt.Sprintf("no se puede aplicar %s a una comanda en estado %s", action, order.Status))
}

// isStaff todo rol distinto de cliente.
func isStaff(r entity.Role) bool {
	return r.Valid() && r != entity.RoleCustomer
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
		Total:       o.Total,
		CreatedBy:   o.CreatedBy,
		HandledBy:   o.HandledBy,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			DishID:    it.DishID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
			Notes:     it.Notes,
		})
	}
	return resp
}
