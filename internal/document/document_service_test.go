package document_test

import (
	"context"
	"testing"

	"go-worksuite/internal/access"
	"go-worksuite/internal/document"
	documenterrors "go-worksuite/internal/document/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeDocumentRepository struct {
	createFn   func(ctx context.Context, d *document.Document) error
	findAllFn  func(ctx context.Context, scope func(*gorm.DB) *gorm.DB, projectID string) ([]document.Document, error)
	findByIDFn func(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*document.Document, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeDocumentRepository) Create(ctx context.Context, d *document.Document) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDocumentRepository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, projectID string) ([]document.Document, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, scope, projectID)
	}
	return nil, nil
}

func (f *fakeDocumentRepository) FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*document.Document, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id, scope)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDocumentRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeProjectGate struct {
	visible bool
	member  bool
}

func (f *fakeProjectGate) Visible(context.Context, access.Caller, string) (bool, error) {
	return f.visible, nil
}

func (f *fakeProjectGate) IsMember(context.Context, string, string) (bool, error) {
	return f.member, nil
}

func validCreateRequest() document.CreateDocumentRequest {
	return document.CreateDocumentRequest{
		ProjectID:   uuid.New().String(),
		FileName:    "scope.pdf",
		ContentType: "application/pdf",
		SizeBytes:   2048,
		StorageKey:  "projects/p1/scope.pdf",
	}
}

func TestDocumentService_Create_RecordsUploader(t *testing.T) {
	caller := access.Caller{ID: uuid.New(), Role: access.RoleHR}
	var saved *document.Document
	repo := &fakeDocumentRepository{
		createFn: func(_ context.Context, d *document.Document) error {
			saved = d
			return nil
		},
	}
	svc := document.NewService(repo, &fakeProjectGate{visible: true}, zap.NewNop())

	resp, err := svc.Create(context.Background(), caller, validCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, caller.ID.String(), resp.UploadedBy)
	if assert.NotNil(t, saved) {
		assert.Equal(t, caller.ID, saved.UploadedBy)
	}
}

func TestDocumentService_Create_InvisibleProjectReadsAsNotFound(t *testing.T) {
	caller := access.Caller{ID: uuid.New(), Role: access.RoleClient}
	svc := document.NewService(&fakeDocumentRepository{}, &fakeProjectGate{visible: false}, zap.NewNop())

	_, err := svc.Create(context.Background(), caller, validCreateRequest())

	assert.ErrorIs(t, err, documenterrors.ErrProjectNotVisible)
}

func TestDocumentService_Create_TeamNonMemberRejected(t *testing.T) {
	caller := access.Caller{ID: uuid.New(), Role: access.RoleTeam}
	svc := document.NewService(&fakeDocumentRepository{}, &fakeProjectGate{visible: true, member: false}, zap.NewNop())

	_, err := svc.Create(context.Background(), caller, validCreateRequest())

	assert.ErrorIs(t, err, documenterrors.ErrProjectNotVisible)
}

func TestDocumentService_Delete_UploaderMayDelete(t *testing.T) {
	caller := access.Caller{ID: uuid.New(), Role: access.RoleTeam}
	doc := &document.Document{ID: uuid.New(), UploadedBy: caller.ID}
	deleted := false
	repo := &fakeDocumentRepository{
		findByIDFn: func(_ context.Context, _ string, _ func(*gorm.DB) *gorm.DB) (*document.Document, error) {
			return doc, nil
		},
		deleteFn: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	svc := document.NewService(repo, &fakeProjectGate{visible: true, member: true}, zap.NewNop())

	err := svc.Delete(context.Background(), caller, doc.ID.String())

	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestDocumentService_Delete_StrangerForbidden(t *testing.T) {
	caller := access.Caller{ID: uuid.New(), Role: access.RoleTeam}
	doc := &document.Document{ID: uuid.New(), UploadedBy: uuid.New()}
	repo := &fakeDocumentRepository{
		findByIDFn: func(_ context.Context, _ string, _ func(*gorm.DB) *gorm.DB) (*document.Document, error) {
			return doc, nil
		},
	}
	svc := document.NewService(repo, &fakeProjectGate{visible: true, member: true}, zap.NewNop())

	err := svc.Delete(context.Background(), caller, doc.ID.String())

	assert.ErrorIs(t, err, documenterrors.ErrDeleteForbidden)
}

func TestDocumentService_Delete_AdminOverridesOwnership(t *testing.T) {
	caller := access.Caller{ID: uuid.New(), Role: access.RoleAdmin}
	doc := &document.Document{ID: uuid.New(), UploadedBy: uuid.New()}
	repo := &fakeDocumentRepository{
		findByIDFn: func(_ context.Context, _ string, _ func(*gorm.DB) *gorm.DB) (*document.Document, error) {
			return doc, nil
		},
	}
	svc := document.NewService(repo, &fakeProjectGate{visible: true}, zap.NewNop())

	assert.NoError(t, svc.Delete(context.Background(), caller, doc.ID.String()))
}

func TestDocumentService_GetByID_OutOfScopeIsNotFound(t *testing.T) {
	caller := access.Caller{ID: uuid.New(), Role: access.RoleClient}
	svc := document.NewService(&fakeDocumentRepository{}, &fakeProjectGate{}, zap.NewNop())

	_, err := svc.GetByID(context.Background(), caller, uuid.New().String())

	assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
}
