package donation

import (
	"context"

	"github.com/google/uuid"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
)

// CreateInput is the payload for recording a donation
type CreateInput struct {
	MemberID   *uuid.UUID
	DonorName  string
	DonorEmail string
	Amount     float64
	Currency   string
	Message    string
}

// UpdateInput carries optional donation changes
type UpdateInput struct {
	DonorName  *string
	DonorEmail *string
	Amount     *float64
	Message    *string
}

// Service defines donation operations
type Service interface {
	CreateDonation(ctx context.Context, input CreateInput) (*Donation, error)
	GetDonation(ctx context.Context, caller member.Caller, id uuid.UUID) (*Donation, error)
	ListDonations(ctx context.Context, caller member.Caller, filter Filter) ([]Donation, int64, error)
	UpdateDonation(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Donation, error)
	UpdateStatus(ctx context.Context, caller member.Caller, id uuid.UUID, status Status) (*Donation, error)
	DeleteDonation(ctx context.Context, caller member.Caller, id uuid.UUID) error
	GetStats(ctx context.Context, caller member.Caller) (*StatsSummary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateDonation is open to unauthenticated donors, so it takes no caller
func (s *service) CreateDonation(ctx context.Context, input CreateInput) (*Donation, error) {
	if input.DonorName == "" || input.Amount <= 0 {
		return nil, ErrInvalidInput
	}

	d := &Donation{
		ID:         uuid.New(),
		MemberID:   input.MemberID,
		DonorName:  input.DonorName,
		DonorEmail: input.DonorEmail,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Message:    input.Message,
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) GetDonation(ctx context.Context, caller member.Caller, id uuid.UUID) (*Donation, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Non-staff callers may only see donations they made themselves
	if !caller.IsStaff() && (d.MemberID == nil || *d.MemberID != caller.ID) {
		return nil, member.ErrForbidden
	}
	return d, nil
}

func (s *service) ListDonations(ctx context.Context, caller member.Caller, filter Filter) ([]Donation, int64, error) {
	if !caller.IsStaff() {
		id := caller.ID
		filter.MemberID = &id
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateDonation(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Donation, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DonorName != nil {
		d.DonorName = *input.DonorName
	}
	if input.DonorEmail != nil {
		d.DonorEmail = *input.DonorEmail
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, ErrInvalidInput
		}
		d.Amount = *input.Amount
	}
	if input.Message != nil {
		d.Message = *input.Message
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) UpdateStatus(ctx context.Context, caller member.Caller, id uuid.UUID, status Status) (*Donation, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, ErrInvalidInput
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Status = status
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) DeleteDonation(ctx context.Context, caller member.Caller, id uuid.UUID) error {
	if err := member.Authorize(caller, member.RoleAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetStats(ctx context.Context, caller member.Caller) (*StatsSummary, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx)
}
