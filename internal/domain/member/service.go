package member

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/cache"
	"github.com/Beliver-247/sliit-choir-backend/pkg/config"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
	"github.com/Beliver-247/sliit-choir-backend/pkg/mail"
	"github.com/Beliver-247/sliit-choir-backend/pkg/security/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid student ID or password")
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// RegisterInput is the payload for member registration
type RegisterInput struct {
	FirstName       string
	LastName        string
	StudentID       string
	Email           string
	Password        string
	ConfirmPassword string
}

// UpdateInput carries optional member profile changes
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *Role
}

// Service defines member directory and account operations
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Member, error)
	VerifyEmail(ctx context.Context, studentID, otp string) (*Member, error)
	Authenticate(ctx context.Context, studentID, password string) (*Member, error)
	GetMember(ctx context.Context, id uuid.UUID) (*Member, error)
	ListMembers(ctx context.Context, filter Filter) ([]Member, int64, error)
	UpdateMember(ctx context.Context, caller Caller, id uuid.UUID, input UpdateInput) (*Member, error)
	UpdateStatus(ctx context.Context, caller Caller, id uuid.UUID, status Status) (*Member, error)
	DeleteMember(ctx context.Context, caller Caller, id uuid.UUID) error
}

type service struct {
	repo   Repository
	redis  *cache.RedisClient
	mailer mail.Service
	cfg    *config.Config
	logger *logger.Logger
}

func NewService(repo Repository, redis *cache.RedisClient, mailer mail.Service, cfg *config.Config, log *logger.Logger) Service {
	return &service{repo: repo, redis: redis, mailer: mailer, cfg: cfg, logger: log}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Member, error) {
	input.StudentID = strings.TrimSpace(input.StudentID)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.FirstName == "" || input.LastName == "" || input.StudentID == "" || input.Email == "" {
		return nil, ErrInvalidInput
	}
	if len(input.Password) < 8 {
		return nil, ErrInvalidInput
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	m := &Member{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		StudentID:    input.StudentID,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         RoleMember,
		Status:       StatusActive,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := s.sendVerificationCode(ctx, m); err != nil {
		// Registration stands; the member can request a fresh code by
		// retrying verification.
		s.logger.Error("failed to send verification code",
			zap.String("student_id", m.StudentID), zap.Error(err))
	}

	return m, nil
}

func (s *service) sendVerificationCode(ctx context.Context, m *Member) error {
	if s.redis == nil {
		return errors.New("verification store unavailable")
	}
	code, err := generateOTP(s.cfg.Auth.OTPLength)
	if err != nil {
		return err
	}
	if err := s.redis.StoreOTP(ctx, m.StudentID, code, s.cfg.Auth.OTPTTL); err != nil {
		return err
	}

	return s.mailer.Send(ctx, mail.Message{
		ToName:    m.FullName(),
		ToAddress: m.Email,
		Subject:   "Verify your SLIIT Choir account",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour verification code is %s. It expires in %s.\n\nSLIIT Choir",
			m.FirstName, code, s.cfg.Auth.OTPTTL,
		),
	})
}

func (s *service) VerifyEmail(ctx context.Context, studentID, otp string) (*Member, error) {
	m, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if m.IsEmailVerified {
		return m, nil
	}

	if s.redis == nil {
		return nil, ErrInvalidOTP
	}
	stored, err := s.redis.GetOTP(ctx, studentID)
	if err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	if stored != otp {
		return nil, ErrInvalidOTP
	}

	m.IsEmailVerified = true
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	if err := s.redis.DeleteOTP(ctx, studentID); err != nil {
		s.logger.Warn("failed to delete consumed OTP", zap.Error(err))
	}
	return m, nil
}

func (s *service) Authenticate(ctx context.Context, studentID, password string) (*Member, error) {
	m, err := s.repo.FindByStudentID(ctx, strings.TrimSpace(studentID))
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(m.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !m.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}
	if m.Status != StatusActive {
		return nil, ErrAccountNotActive
	}
	return m, nil
}

func (s *service) GetMember(ctx context.Context, id uuid.UUID) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListMembers(ctx context.Context, filter Filter) ([]Member, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateMember(ctx context.Context, caller Caller, id uuid.UUID, input UpdateInput) (*Member, error) {
	if err := AuthorizeSelfOr(caller, id, RoleAdmin); err != nil {
		return nil, err
	}
	// Role changes are admin-only even on one's own account.
	if input.Role != nil {
		if err := Authorize(caller, RoleAdmin); err != nil {
			return nil, err
		}
		if !input.Role.IsValid() {
			return nil, ErrInvalidInput
		}
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		m.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		m.LastName = *input.LastName
	}
	if input.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Role != nil {
		m.Role = *input.Role
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) UpdateStatus(ctx context.Context, caller Caller, id uuid.UUID, status Status) (*Member, error) {
	if err := Authorize(caller, RoleModerator, RoleAdmin); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, ErrInvalidInput
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	m.Status = status
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) DeleteMember(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := Authorize(caller, RoleAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// generateOTP returns a random numeric code of the given length
func generateOTP(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
