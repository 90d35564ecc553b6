package resource

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/storage"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
)

var (
	// ErrMissingFile is returned when a file-typed resource has no upload
	ErrMissingFile = errors.New("a file is required for this resource type")
	// ErrMissingURL is returned when a link-typed resource has no URL
	ErrMissingURL = errors.New("a link URL is required for this resource type")
	// ErrRequestNotPending is returned when reviewing a settled request
	ErrRequestNotPending = errors.New("resource request has already been reviewed")
)

// Upload carries an incoming file from a multipart form
type Upload struct {
	Content  io.Reader
	Ext      string
	MimeType string
	Size     int64
}

// CreateInput is the payload for adding a library resource. Link types
// set LinkURL; file types set File.
type CreateInput struct {
	SongTitle    string
	Description  string
	ResourceType Type
	LinkURL      string
	File         *Upload
}

// UpdateInput carries optional resource metadata changes
type UpdateInput struct {
	SongTitle   *string
	Description *string
}

// BySong groups library resources under their song title
type BySong map[string][]Resource

// Service defines song library, request and favorite operations
type Service interface {
	CreateResource(ctx context.Context, caller member.Caller, input CreateInput) (*Resource, error)
	GetResource(ctx context.Context, id uuid.UUID) (*Resource, error)
	ListResources(ctx context.Context, filter Filter) ([]Resource, error)
	ListBySong(ctx context.Context, filter Filter) (BySong, error)
	UpdateResource(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Resource, error)
	DeleteResource(ctx context.Context, caller member.Caller, id uuid.UUID) error

	SubmitRequest(ctx context.Context, caller member.Caller, input CreateInput) (*Request, error)
	ListRequests(ctx context.Context, caller member.Caller, filter RequestFilter) ([]Request, error)
	MyRequests(ctx context.Context, caller member.Caller) ([]Request, error)
	ApproveRequest(ctx context.Context, caller member.Caller, id uuid.UUID) (*Resource, error)
	RejectRequest(ctx context.Context, caller member.Caller, id uuid.UUID, reason string) (*Request, error)
	DeleteRequest(ctx context.Context, caller member.Caller, id uuid.UUID) error

	ListFavorites(ctx context.Context, caller member.Caller) ([]Resource, error)
	AddFavorite(ctx context.Context, caller member.Caller, resourceID uuid.UUID) error
	RemoveFavorite(ctx context.Context, caller member.Caller, resourceID uuid.UUID) error
	CheckFavorite(ctx context.Context, caller member.Caller, resourceID uuid.UUID) (bool, error)
}

type service struct {
	repo   Repository
	store  storage.Store
	logger *logger.Logger
}

func NewService(repo Repository, store storage.Store, log *logger.Logger) Service {
	return &service{repo: repo, store: store, logger: log}
}

// resolveContent validates the input against its type and stores the file
// when one is required. Returns URL, storage key, mime type and size.
func (s *service) resolveContent(ctx context.Context, input CreateInput) (string, string, *string, *int64, error) {
	if input.ResourceType.IsLink() {
		if input.LinkURL == "" {
			return "", "", nil, nil, ErrMissingURL
		}
		return input.LinkURL, "", nil, nil, nil
	}

	if input.File == nil || input.File.Content == nil {
		return "", "", nil, nil, ErrMissingFile
	}
	saved, err := s.store.Save(ctx, "resources", input.File.Ext, input.File.Content)
	if err != nil {
		return "", "", nil, nil, err
	}
	mime := input.File.MimeType
	size := saved.Size
	return saved.URL, saved.Key, &mime, &size, nil
}

func (s *service) CreateResource(ctx context.Context, caller member.Caller, input CreateInput) (*Resource, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	if input.SongTitle == "" || !input.ResourceType.IsValid() {
		return nil, ErrInvalidInput
	}

	url, key, mime, size, err := s.resolveContent(ctx, input)
	if err != nil {
		return nil, err
	}

	res := &Resource{
		ID:           uuid.New(),
		SongTitle:    input.SongTitle,
		Description:  input.Description,
		ResourceType: input.ResourceType,
		FileURL:      url,
		FileKey:      key,
		FileType:     mime,
		FileSize:     size,
		UploadedBy:   caller.ID,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		s.removeStored(ctx, key)
		return nil, err
	}
	return res, nil
}

func (s *service) GetResource(ctx context.Context, id uuid.UUID) (*Resource, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListResources(ctx context.Context, filter Filter) ([]Resource, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) ListBySong(ctx context.Context, filter Filter) (BySong, error) {
	resources, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	grouped := make(BySong)
	for _, res := range resources {
		grouped[res.SongTitle] = append(grouped[res.SongTitle], res)
	}
	return grouped, nil
}

func (s *service) UpdateResource(ctx context.Context, caller member.Caller, id uuid.UUID, input UpdateInput) (*Resource, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.SongTitle != nil {
		if *input.SongTitle == "" {
			return nil, ErrInvalidInput
		}
		res.SongTitle = *input.SongTitle
	}
	if input.Description != nil {
		res.Description = *input.Description
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) DeleteResource(ctx context.Context, caller member.Caller, id uuid.UUID) error {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return err
	}

	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeStored(ctx, res.FileKey)
	return nil
}

func (s *service) SubmitRequest(ctx context.Context, caller member.Caller, input CreateInput) (*Request, error) {
	if input.SongTitle == "" || !input.ResourceType.IsValid() {
		return nil, ErrInvalidInput
	}

	url, key, mime, size, err := s.resolveContent(ctx, input)
	if err != nil {
		return nil, err
	}

	req := &Request{
		ID:           uuid.New(),
		MemberID:     caller.ID,
		SongTitle:    input.SongTitle,
		Description:  input.Description,
		ResourceType: input.ResourceType,
		FileURL:      url,
		FileKey:      key,
		FileType:     mime,
		FileSize:     size,
		Status:       RequestPending,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		s.removeStored(ctx, key)
		return nil, err
	}
	return req, nil
}

func (s *service) ListRequests(ctx context.Context, caller member.Caller, filter RequestFilter) ([]Request, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.FindRequests(ctx, filter)
}

func (s *service) MyRequests(ctx context.Context, caller member.Caller) ([]Request, error) {
	id := caller.ID
	return s.repo.FindRequests(ctx, RequestFilter{MemberID: &id})
}

// ApproveRequest promotes a pending request into the library. The stored
// file is shared, not copied; the request keeps pointing at it for history.
func (s *service) ApproveRequest(ctx context.Context, caller member.Caller, id uuid.UUID) (*Resource, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}

	req, err := s.repo.FindRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != RequestPending {
		return nil, ErrRequestNotPending
	}

	res := &Resource{
		ID:           uuid.New(),
		SongTitle:    req.SongTitle,
		Description:  req.Description,
		ResourceType: req.ResourceType,
		FileURL:      req.FileURL,
		FileKey:      req.FileKey,
		FileType:     req.FileType,
		FileSize:     req.FileSize,
		UploadedBy:   req.MemberID,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	req.Status = RequestApproved
	reviewer := caller.ID
	req.ReviewedBy = &reviewer
	now := time.Now().UTC()
	req.ReviewedAt = &now
	if err := s.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) RejectRequest(ctx context.Context, caller member.Caller, id uuid.UUID, reason string) (*Request, error) {
	if err := member.Authorize(caller, member.RoleModerator, member.RoleAdmin); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, ErrInvalidInput
	}

	req, err := s.repo.FindRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != RequestPending {
		return nil, ErrRequestNotPending
	}

	req.Status = RequestRejected
	req.RejectReason = reason
	reviewer := caller.ID
	req.ReviewedBy = &reviewer
	now := time.Now().UTC()
	req.ReviewedAt = &now
	if err := s.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) DeleteRequest(ctx context.Context, caller member.Caller, id uuid.UUID) error {
	req, err := s.repo.FindRequestByID(ctx, id)
	if err != nil {
		return err
	}
	// Members may withdraw their own requests; staff can delete any
	if err := member.AuthorizeSelfOr(caller, req.MemberID, member.RoleModerator, member.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.DeleteRequest(ctx, id); err != nil {
		return err
	}
	// Approved requests share their file with the promoted resource
	if req.Status != RequestApproved {
		s.removeStored(ctx, req.FileKey)
	}
	return nil
}

func (s *service) ListFavorites(ctx context.Context, caller member.Caller) ([]Resource, error) {
	return s.repo.FavoriteResources(ctx, caller.ID)
}

func (s *service) AddFavorite(ctx context.Context, caller member.Caller, resourceID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, resourceID); err != nil {
		return err
	}
	return s.repo.AddFavorite(ctx, caller.ID, resourceID)
}

func (s *service) RemoveFavorite(ctx context.Context, caller member.Caller, resourceID uuid.UUID) error {
	return s.repo.RemoveFavorite(ctx, caller.ID, resourceID)
}

func (s *service) CheckFavorite(ctx context.Context, caller member.Caller, resourceID uuid.UUID) (bool, error) {
	return s.repo.IsFavorite(ctx, caller.ID, resourceID)
}

func (s *service) removeStored(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Remove(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("failed to remove stored resource file", zap.String("key", key), zap.Error(err))
	}
}
