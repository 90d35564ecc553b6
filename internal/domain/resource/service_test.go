package resource

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/storage"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
)

type fakeResourceRepo struct {
	resources map[uuid.UUID]*Resource
	requests  map[uuid.UUID]*Request
	favorites map[[2]uuid.UUID]bool
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{
		resources: make(map[uuid.UUID]*Resource),
		requests:  make(map[uuid.UUID]*Request),
		favorites: make(map[[2]uuid.UUID]bool),
	}
}

func (f *fakeResourceRepo) Create(ctx context.Context, r *Resource) error {
	copied := *r
	f.resources[r.ID] = &copied
	return nil
}

func (f *fakeResourceRepo) FindByID(ctx context.Context, id uuid.UUID) (*Resource, error) {
	r, ok := f.resources[id]
	if !ok {
		return nil, ErrResourceNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeResourceRepo) FindAll(ctx context.Context, filter Filter) ([]Resource, error) {
	var out []Resource
	for _, r := range f.resources {
		if filter.ResourceType != nil && r.ResourceType != *filter.ResourceType {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeResourceRepo) Update(ctx context.Context, r *Resource) error {
	if _, ok := f.resources[r.ID]; !ok {
		return ErrResourceNotFound
	}
	copied := *r
	f.resources[r.ID] = &copied
	return nil
}

func (f *fakeResourceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.resources[id]; !ok {
		return ErrResourceNotFound
	}
	delete(f.resources, id)
	return nil
}

func (f *fakeResourceRepo) CreateRequest(ctx context.Context, req *Request) error {
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeResourceRepo) FindRequestByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (f *fakeResourceRepo) FindRequests(ctx context.Context, filter RequestFilter) ([]Request, error) {
	var out []Request
	for _, req := range f.requests {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.MemberID != nil && req.MemberID != *filter.MemberID {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (f *fakeResourceRepo) UpdateRequest(ctx context.Context, req *Request) error {
	if _, ok := f.requests[req.ID]; !ok {
		return ErrRequestNotFound
	}
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeResourceRepo) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.requests[id]; !ok {
		return ErrRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeResourceRepo) AddFavorite(ctx context.Context, memberID, resourceID uuid.UUID) error {
	key := [2]uuid.UUID{memberID, resourceID}
	if f.favorites[key] {
		return ErrAlreadyFavorite
	}
	f.favorites[key] = true
	return nil
}

func (f *fakeResourceRepo) RemoveFavorite(ctx context.Context, memberID, resourceID uuid.UUID) error {
	key := [2]uuid.UUID{memberID, resourceID}
	if !f.favorites[key] {
		return ErrNotFavorite
	}
	delete(f.favorites, key)
	return nil
}

func (f *fakeResourceRepo) IsFavorite(ctx context.Context, memberID, resourceID uuid.UUID) (bool, error) {
	return f.favorites[[2]uuid.UUID{memberID, resourceID}], nil
}

func (f *fakeResourceRepo) FavoriteResources(ctx context.Context, memberID uuid.UUID) ([]Resource, error) {
	var out []Resource
	for key := range f.favorites {
		if key[0] != memberID {
			continue
		}
		if r, ok := f.resources[key[1]]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeFileStore struct {
	removed []string
}

func (f *fakeFileStore) Save(ctx context.Context, folder, ext string, r io.Reader) (*storage.SavedFile, error) {
	key := folder + "/" + uuid.NewString() + ext
	return &storage.SavedFile{Key: key, URL: "http://localhost:5000/uploads/" + key, Size: 42}, nil
}

func (f *fakeFileStore) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

type resourceFixture struct {
	svc       Service
	repo      *fakeResourceRepo
	store     *fakeFileStore
	moderator member.Caller
	singer    member.Caller
}

func newResourceFixture(t *testing.T) *resourceFixture {
	t.Helper()
	f := &resourceFixture{
		repo:      newFakeResourceRepo(),
		store:     &fakeFileStore{},
		moderator: member.Caller{ID: uuid.New(), Role: member.RoleModerator},
		singer:    member.Caller{ID: uuid.New(), Role: member.RoleMember},
	}
	f.svc = NewService(f.repo, f.store, logger.NewLogger())
	return f
}

func pdfUpload() *Upload {
	return &Upload{Content: bytes.NewBufferString("%PDF"), Ext: ".pdf", MimeType: "application/pdf"}
}

func TestCreateResourceFileAndLink(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreateResource(ctx, f.moderator, CreateInput{
		SongTitle:    "Gloria",
		ResourceType: TypeSheetMusic,
		File:         pdfUpload(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.FileURL)
	assert.NotEmpty(t, res.FileKey)
	require.NotNil(t, res.FileType)
	assert.Equal(t, "application/pdf", *res.FileType)

	link, err := f.svc.CreateResource(ctx, f.moderator, CreateInput{
		SongTitle:    "Gloria",
		ResourceType: TypeYoutubeLink,
		LinkURL:      "https://youtu.be/abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/abc123", link.FileURL)
	assert.Empty(t, link.FileKey)
}

func TestCreateResourceValidation(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateResource(ctx, f.singer, CreateInput{
		SongTitle: "Gloria", ResourceType: TypeSheetMusic, File: pdfUpload(),
	})
	assert.ErrorIs(t, err, member.ErrForbidden)

	_, err = f.svc.CreateResource(ctx, f.moderator, CreateInput{
		SongTitle: "Gloria", ResourceType: TypeSheetMusic,
	})
	assert.ErrorIs(t, err, ErrMissingFile)

	_, err = f.svc.CreateResource(ctx, f.moderator, CreateInput{
		SongTitle: "Gloria", ResourceType: TypeDriveLink,
	})
	assert.ErrorIs(t, err, ErrMissingURL)

	_, err = f.svc.CreateResource(ctx, f.moderator, CreateInput{
		SongTitle: "Gloria", ResourceType: Type("video"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBySongGroups(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	for _, in := range []CreateInput{
		{SongTitle: "Gloria", ResourceType: TypeSheetMusic, File: pdfUpload()},
		{SongTitle: "Gloria", ResourceType: TypeAudioAlto, File: pdfUpload()},
		{SongTitle: "Ave Maria", ResourceType: TypeSheetMusic, File: pdfUpload()},
	} {
		_, err := f.svc.CreateResource(ctx, f.moderator, in)
		require.NoError(t, err)
	}

	grouped, err := f.svc.ListBySong(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["Gloria"], 2)
	assert.Len(t, grouped["Ave Maria"], 1)
}

func TestRequestApprovalPromotes(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	req, err := f.svc.SubmitRequest(ctx, f.singer, CreateInput{
		SongTitle:    "Hallelujah",
		Description:  "tenor part recording",
		ResourceType: TypeAudioTenor,
		File:         pdfUpload(),
	})
	require.NoError(t, err)
	assert.Equal(t, RequestPending, req.Status)

	_, err = f.svc.ApproveRequest(ctx, f.singer, req.ID)
	assert.ErrorIs(t, err, member.ErrForbidden)

	res, err := f.svc.ApproveRequest(ctx, f.moderator, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hallelujah", res.SongTitle)
	assert.Equal(t, TypeAudioTenor, res.ResourceType)
	// The promoted resource is attributed to the requesting member
	assert.Equal(t, f.singer.ID, res.UploadedBy)
	assert.Equal(t, req.FileURL, res.FileURL)

	updated, err := f.svc.MyRequests(ctx, f.singer)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, RequestApproved, updated[0].Status)

	// A settled request cannot be approved twice
	_, err = f.svc.ApproveRequest(ctx, f.moderator, req.ID)
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestRequestRejection(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	req, err := f.svc.SubmitRequest(ctx, f.singer, CreateInput{
		SongTitle: "Hallelujah", ResourceType: TypeSheetMusic, File: pdfUpload(),
	})
	require.NoError(t, err)

	_, err = f.svc.RejectRequest(ctx, f.moderator, req.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	rejected, err := f.svc.RejectRequest(ctx, f.moderator, req.ID, "duplicate of existing upload")
	require.NoError(t, err)
	assert.Equal(t, RequestRejected, rejected.Status)
	assert.Equal(t, "duplicate of existing upload", rejected.RejectReason)
}

func TestDeleteRequestOwnership(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	req, err := f.svc.SubmitRequest(ctx, f.singer, CreateInput{
		SongTitle: "Hallelujah", ResourceType: TypeSheetMusic, File: pdfUpload(),
	})
	require.NoError(t, err)

	stranger := member.Caller{ID: uuid.New(), Role: member.RoleMember}
	err = f.svc.DeleteRequest(ctx, stranger, req.ID)
	assert.ErrorIs(t, err, member.ErrForbidden)

	err = f.svc.DeleteRequest(ctx, f.singer, req.ID)
	require.NoError(t, err)
	// The pending request's file goes with it
	assert.Contains(t, f.store.removed, req.FileKey)
}

func TestFavorites(t *testing.T) {
	f := newResourceFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreateResource(ctx, f.moderator, CreateInput{
		SongTitle: "Gloria", ResourceType: TypeSheetMusic, File: pdfUpload(),
	})
	require.NoError(t, err)

	fav, err := f.svc.CheckFavorite(ctx, f.singer, res.ID)
	require.NoError(t, err)
	assert.False(t, fav)

	err = f.svc.AddFavorite(ctx, f.singer, res.ID)
	require.NoError(t, err)

	err = f.svc.AddFavorite(ctx, f.singer, res.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorite)

	err = f.svc.AddFavorite(ctx, f.singer, uuid.New())
	assert.ErrorIs(t, err, ErrResourceNotFound)

	list, err := f.svc.ListFavorites(ctx, f.singer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, res.ID, list[0].ID)

	err = f.svc.RemoveFavorite(ctx, f.singer, res.ID)
	require.NoError(t, err)
	err = f.svc.RemoveFavorite(ctx, f.singer, res.ID)
	assert.ErrorIs(t, err, ErrNotFavorite)
}

func TestTypeHelpers(t *testing.T) {
	assert.True(t, TypeDriveLink.IsLink())
	assert.True(t, TypeYoutubeLink.IsLink())
	assert.False(t, TypeSheetMusic.IsLink())
	assert.True(t, TypeAudioBass.IsAudio())
	assert.False(t, TypeSheetMusic.IsAudio())
	assert.False(t, Type("podcast").IsValid())
}
