package order

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/merchandise"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/storage"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
)

var (
	// ErrMissingReceipt is returned when an order arrives without a payment proof
	ErrMissingReceipt = errors.New("a payment receipt is required")
	// ErrNotPending is returned when confirming or declining a settled order
	ErrNotPending = errors.New("order has already been reviewed")
	// ErrMissingReason is returned when a decline has no explanation
	ErrMissingReason = errors.New("a reason is required to decline an order")
)

// Catalog is the slice of the merchandise domain orders depend on;
// satisfied by merchandise.Repository
type Catalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]merchandise.Item, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}

// ItemInput is one cart line from the checkout form
type ItemInput struct {
	MerchandiseID uuid.UUID
	Size          string
	Quantity      int
}

// CreateInput is the payload for placing an order
type CreateInput struct {
	Items      []ItemInput
	Receipt    io.Reader
	ReceiptExt string
}

// Service defines order operations
type Service interface {
	CreateOrder(ctx context.Context, caller member.Caller, input CreateInput) (*Order, error)
	GetOrder(ctx context.Context, caller member.Caller, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, caller member.Caller, filter Filter) ([]Order, int64, error)
	MyOrders(ctx context.Context, caller member.Caller) ([]Order, error)
	ConfirmOrder(ctx context.Context, caller member.Caller, id uuid.UUID) (*Order, error)
	DeclineOrder(ctx context.Context, caller member.Caller, id uuid.UUID, reason string) (*Order, error)
	DeleteOrder(ctx context.Context, caller member.Caller, id uuid.UUID) error
	GetStats(ctx context.Context, caller member.Caller) (*StatsSummary, error)
}

type service struct {
	repo    Repository
	catalog Catalog
	store   storage.Store
	logger  *logger.Logger
}

func NewService(repo Repository, catalog Catalog, store storage.Store, log *logger.Logger) Service {
	return &service{repo: repo, catalog: catalog, store: store, logger: log}
}

func (s *service) CreateOrder(ctx context.Context, caller member.Caller, input CreateInput) (*Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrInvalidInput
	}
	if input.Receipt == nil {
		return nil, ErrMissingReceipt
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
		ids = append(ids, item.MerchandiseID)
	}

	catalogItems, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]merchandise.Item, len(catalogItems))
	for _, ci := range catalogItems {
		byID[ci.ID] = ci
	}

	o := &Order{
		ID:       uuid.New(),
		MemberID: caller.ID,
		Status:   StatusPending,
	}
	for _, item := range input.Items {
		ci, ok := byID[item.MerchandiseID]
		if !ok {
			return nil, merchandise.ErrItemNotFound
		}
		line := LineItem{
			ID:            uuid.New(),
			OrderID:       o.ID,
			MerchandiseID: ci.ID,
			Name:          ci.Name,
			Size:          item.Size,
			Quantity:      item.Quantity,
			UnitPrice:     ci.Price,
		}
		o.Items = append(o.Items, line)
		o.TotalAmount += line.Subtotal()
	}

	// Reserve stock before touching storage so an oversell fails fast
	reserved := make([]ItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		if err := s.catalog.AdjustStock(ctx, item.MerchandiseID, -item.Quantity); err != nil {
			s.releaseStock(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, item)
	}

	saved, err := s.store.Save(ctx, "receipts", input.ReceiptExt, input.Receipt)
	if err != nil {
		s.releaseStock(ctx, reserved)
		return nil, err
	}
	o.ReceiptKey = saved.Key
	o.ReceiptURL = saved.URL

	if err := s.repo.Create(ctx, o); err != nil {
		s.releaseStock(ctx, reserved)
		if rmErr := s.store.Remove(ctx, saved.Key); rmErr != nil {
			s.logger.Warn("failed to remove orphaned receipt", zap.String("key", saved.Key), zap.Error(rmErr))
		}
		return nil, err
	}
	return o, nil
}

func (s *service) releaseStock(ctx context.Context, items []ItemInput) {
	for _, item := range items {
		if err := s.catalog.AdjustStock(ctx, item.MerchandiseID, item.Quantity); err != nil {
			s.logger.Error("failed to release reserved stock",
				zap.String("merchandiseId", item.MerchandiseID.String()), zap.Error(err))
		}
	}
}

func (s *service) GetOrder(ctx context.Context, caller member.Caller, id uuid.UUID) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := member.AuthorizeSelfOr(caller, o.MemberID, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, caller member.Caller, filter Filter) ([]Order, int64, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, 0, err
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *service) MyOrders(ctx context.Context, caller member.Caller) ([]Order, error) {
	id := caller.ID
	orders, _, err := s.repo.FindAll(ctx, Filter{MemberID: &id})
	return orders, err
}

func (s *service) ConfirmOrder(ctx context.Context, caller member.Caller, id uuid.UUID) (*Order, error) {
	return s.review(ctx, caller, id, StatusConfirmed, "")
}

func (s *service) DeclineOrder(ctx context.Context, caller member.Caller, id uuid.UUID, reason string) (*Order, error) {
	if reason == "" {
		return nil, ErrMissingReason
	}
	return s.review(ctx, caller, id, StatusDeclined, reason)
}

func (s *service) review(ctx context.Context, caller member.Caller, id uuid.UUID, status Status, reason string) (*Order, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		return nil, ErrNotPending
	}

	o.Status = status
	o.DeclineReason = reason
	reviewer := caller.ID
	o.ReviewedBy = &reviewer
	now := time.Now().UTC()
	o.ReviewedAt = &now

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	// Declined orders hand their reserved stock back
	if status == StatusDeclined {
		for _, line := range o.Items {
			if err := s.catalog.AdjustStock(ctx, line.MerchandiseID, line.Quantity); err != nil {
				s.logger.Error("failed to restock declined order line",
					zap.String("orderId", o.ID.String()), zap.Error(err))
			}
		}
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, caller member.Caller, id uuid.UUID) error {
	if err := member.Authorize(caller, member.RoleAdmin); err != nil {
		return err
	}

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if o.ReceiptKey != "" {
		if err := s.store.Remove(ctx, o.ReceiptKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to remove order receipt", zap.String("key", o.ReceiptKey), zap.Error(err))
		}
	}
	return nil
}

func (s *service) GetStats(ctx context.Context, caller member.Caller) (*StatsSummary, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx)
}
