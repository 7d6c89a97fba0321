package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

type fakeOrderRepo struct {
	orders     map[uuid.UUID]*entity.Order
	counter    int
	filter     adapter.OrderListFilter
	createErrs []error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) FetchOrders(_ context.Context, _ adapter.OrderQuery) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domainerror.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter adapter.OrderListFilter) (*entity.OrderListResult, error) {
	r.filter = filter
	return &entity.OrderListResult{Total: int64(len(r.orders)), Page: filter.Page, Limit: filter.Limit}, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.DeliveryStatus, at time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return domainerror.ErrOrderNotFound
	}
	o.DeliveryStatus = status
	o.UpdatedAt = at
	return nil
}

func (r *fakeOrderRepo) NextOrderNumber(_ context.Context) (string, error) {
	r.counter++
	return fmt.Sprintf("ORD-%06d", r.counter), nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	out := make(map[uuid.UUID]*entity.Product)
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) List(context.Context, entity.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(context.Context, *entity.Product) error      { return nil }
func (r *fakeProductRepo) ExistsBySKU(context.Context, string) (bool, error) { return false, nil }

type published struct {
	subject string
	payload any
}

type fakePublisher struct {
	events []published
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, subject string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{subject: subject, payload: payload})
	return nil
}

// lasagna has a required size group and an optional extras group.
func lasagna() *entity.Product {
	return entity.NewProduct("LAS-01", "Lasagna", "", "mains", decimal.NewFromInt(10), nil, []entity.OptionGroup{
		{
			Name:      "Size",
			Required:  true,
			MaxSelect: 1,
			Options: []entity.ProductOption{
				{Name: "Regular", PriceMultiplier: decimal.NewFromInt(1)},
				{Name: "Family", PriceMultiplier: decimal.NewFromFloat(2.5)},
			},
		},
		{
			Name:      "Extras",
			MaxSelect: 2,
			Options: []entity.ProductOption{
				{Name: "Cheese", PriceMultiplier: decimal.NewFromFloat(1.1)},
				{Name: "Bacon", PriceMultiplier: decimal.NewFromFloat(1.2)},
				{Name: "Chili", PriceMultiplier: decimal.NewFromInt(1)},
			},
		},
	})
}
