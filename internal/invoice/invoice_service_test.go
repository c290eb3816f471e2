package invoice_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-worksuite/internal/access"
	"go-worksuite/internal/invoice"
	invoiceerrors "go-worksuite/internal/invoice/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeInvoiceRepository struct {
	createFn       func(ctx context.Context, inv *invoice.Invoice) error
	findAllFn      func(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]invoice.Invoice, error)
	findByIDFn     func(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*invoice.Invoice, error)
	updateStatusFn func(ctx context.Context, id, fromStatus, toStatus string) (int64, error)
	deleteFn       func(ctx context.Context, id string) error
	markOverdueFn  func(ctx context.Context, now time.Time) (int64, error)
}

func (f *fakeInvoiceRepository) WithTx(tx *sql.Tx) invoice.Repository { return f }

func (f *fakeInvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	if f.createFn != nil {
		return f.createFn(ctx, inv)
	}
	return nil
}

func (f *fakeInvoiceRepository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]invoice.Invoice, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, scope)
	}
	return nil, nil
}

func (f *fakeInvoiceRepository) FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*invoice.Invoice, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id, scope)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvoiceRepository) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, fromStatus, toStatus)
	}
	return 1, nil
}

func (f *fakeInvoiceRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeInvoiceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	if f.markOverdueFn != nil {
		return f.markOverdueFn(ctx, now)
	}
	return 0, nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) NextValue(ctx context.Context, scope, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeCompanyChecker struct {
	exists bool
}

func (f *fakeCompanyChecker) Exists(ctx context.Context, companyID string) (bool, error) {
	return f.exists, nil
}

func staffCaller() access.Caller {
	return access.Caller{ID: uuid.New(), Role: access.RoleHR}
}

func TestInvoiceService_Create(t *testing.T) {
	ctx := context.Background()

	baseReq := invoice.CreateInvoiceRequest{
		ClientCompanyID: uuid.New().String(),
		IssuedAt:        "2026-02-01",
		DueDate:         "2026-03-01",
		Items: []invoice.InvoiceItemRequest{
			{Description: "Design sprint", Quantity: 2, UnitCents: 150_000},
			{Description: "Hosting", Quantity: 1, UnitCents: 20_000},
		},
	}

	t.Run("totals and number are derived", func(t *testing.T) {
		repo := &fakeInvoiceRepository{
			createFn: func(ctx context.Context, inv *invoice.Invoice) error {
				assert.Equal(t, invoice.StatusDraft, inv.Status)
				assert.Equal(t, int64(320_000), inv.TotalCents)
				assert.Len(t, inv.Items, 2)
				return nil
			},
		}
		svc := invoice.NewService(repo, &fakeCounterRepository{}, &fakeCompanyChecker{exists: true})

		resp, err := svc.Create(ctx, staffCaller(), baseReq)
		assert.NoError(t, err)
		assert.Equal(t, "INV-2026-000001", resp.InvoiceNumber)
		assert.Equal(t, int64(320_000), resp.TotalCents)
	})

	t.Run("sequence advances per invoice", func(t *testing.T) {
		counters := &fakeCounterRepository{}
		svc := invoice.NewService(&fakeInvoiceRepository{}, counters, &fakeCompanyChecker{exists: true})

		first, err := svc.Create(ctx, staffCaller(), baseReq)
		assert.NoError(t, err)
		second, err := svc.Create(ctx, staffCaller(), baseReq)
		assert.NoError(t, err)
		assert.Equal(t, "INV-2026-000001", first.InvoiceNumber)
		assert.Equal(t, "INV-2026-000002", second.InvoiceNumber)
	})

	t.Run("unknown company rejected", func(t *testing.T) {
		svc := invoice.NewService(&fakeInvoiceRepository{}, &fakeCounterRepository{}, &fakeCompanyChecker{exists: false})

		_, err := svc.Create(ctx, staffCaller(), baseReq)
		assert.ErrorIs(t, err, invoiceerrors.ErrCompanyNotFound)
	})

	t.Run("due date before issue date rejected", func(t *testing.T) {
		svc := invoice.NewService(&fakeInvoiceRepository{}, &fakeCounterRepository{}, &fakeCompanyChecker{exists: true})

		req := baseReq
		req.DueDate = "2026-01-01"
		_, err := svc.Create(ctx, staffCaller(), req)
		assert.ErrorIs(t, err, invoiceerrors.ErrInvalidDueDate)
	})
}

func TestInvoiceService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	invoiceID := uuid.New()

	existing := &invoice.Invoice{
		ID:              invoiceID,
		InvoiceNumber:   "INV-2026-000007",
		ClientCompanyID: uuid.New(),
		Status:          invoice.StatusSent,
		IssuedAt:        time.Now(),
		DueDate:         time.Now(),
	}

	t.Run("stale guard reports conflict", func(t *testing.T) {
		repo := &fakeInvoiceRepository{
			findByIDFn: func(ctx context.Context, id string, _ func(*gorm.DB) *gorm.DB) (*invoice.Invoice, error) {
				return existing, nil
			},
			updateStatusFn: func(context.Context, string, string, string) (int64, error) { return 0, nil },
		}
		svc := invoice.NewService(repo, &fakeCounterRepository{}, &fakeCompanyChecker{exists: true})

		_, err := svc.UpdateStatus(ctx, staffCaller(), invoiceID.String(), invoice.UpdateStatusRequest{
			ExpectedStatus: invoice.StatusDraft,
			Status:         invoice.StatusSent,
		})
		assert.ErrorIs(t, err, invoiceerrors.ErrStatusConflict)
	})
}

func TestInvoiceService_Delete(t *testing.T) {
	ctx := context.Background()
	invoiceID := uuid.New()

	t.Run("non-draft invoices cannot be deleted", func(t *testing.T) {
		repo := &fakeInvoiceRepository{
			findByIDFn: func(ctx context.Context, id string, _ func(*gorm.DB) *gorm.DB) (*invoice.Invoice, error) {
				return &invoice.Invoice{ID: invoiceID, Status: invoice.StatusSent, IssuedAt: time.Now(), DueDate: time.Now()}, nil
			},
		}
		svc := invoice.NewService(repo, &fakeCounterRepository{}, &fakeCompanyChecker{exists: true})

		err := svc.Delete(ctx, staffCaller(), invoiceID.String())
		assert.ErrorIs(t, err, invoiceerrors.ErrNotEditable)
	})
}

func TestInvoiceService_MarkOverdue(t *testing.T) {
	ctx := context.Background()

	repo := &fakeInvoiceRepository{
		markOverdueFn: func(ctx context.Context, now time.Time) (int64, error) { return 3, nil },
	}
	svc := invoice.NewService(repo, &fakeCounterRepository{}, &fakeCompanyChecker{exists: true})

	flipped, err := svc.MarkOverdue(ctx, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), flipped)
}
