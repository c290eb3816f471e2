package invoice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-worksuite/internal/access"
	invoiceerrors "go-worksuite/internal/invoice/errors"
	"go-worksuite/internal/shared/apperror"
	"go-worksuite/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const numberCounterType = "invoice"

// CompanyChecker verifies the client company an invoice is billed to.
type CompanyChecker interface {
	Exists(ctx context.Context, companyID string) (bool, error)
}

//go:generate mockgen -source=invoice_service.go -destination=mock/invoice_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller access.Caller, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetAll(ctx context.Context, caller access.Caller) ([]InvoiceResponse, error)
	GetByID(ctx context.Context, caller access.Caller, id string) (InvoiceResponse, error)
	UpdateStatus(ctx context.Context, caller access.Caller, id string, req UpdateStatusRequest) (InvoiceResponse, error)
	Delete(ctx context.Context, caller access.Caller, id string) error

	// MarkOverdue is the worker entrypoint.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

type service struct {
	repo      Repository
	counters  counter.Repository
	companies CompanyChecker
	logger    *zap.Logger
}

func NewService(repo Repository, counters counter.Repository, companies CompanyChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("invoice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.service")
	}
	return &service{repo: repo, counters: counters, companies: companies, logger: l}
}

func (s *service) Create(ctx context.Context, caller access.Caller, req CreateInvoiceRequest) (InvoiceResponse, error) {
	companyID, err := uuid.Parse(req.ClientCompanyID)
	if err != nil {
		return InvoiceResponse{}, apperror.InvalidField("client_company_id")
	}
	exists, err := s.companies.Exists(ctx, companyID.String())
	if err != nil {
		return InvoiceResponse{}, err
	}
	if !exists {
		return InvoiceResponse{}, invoiceerrors.ErrCompanyNotFound
	}

	issuedAt, err := time.Parse("2006-01-02", req.IssuedAt)
	if err != nil {
		return InvoiceResponse{}, apperror.InvalidField("issued_at")
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return InvoiceResponse{}, apperror.InvalidField("due_date")
	}
	if dueDate.Before(issuedAt) {
		return InvoiceResponse{}, invoiceerrors.ErrInvalidDueDate
	}
	if len(req.Items) == 0 {
		return InvoiceResponse{}, invoiceerrors.ErrNoItems
	}

	var projectID *uuid.UUID
	if req.ProjectID != nil && *req.ProjectID != "" {
		parsed, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return InvoiceResponse{}, apperror.InvalidField("project_id")
		}
		projectID = &parsed
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	number, err := s.nextNumber(ctx, issuedAt)
	if err != nil {
		s.logger.Error("invoice number allocation failed", zap.Error(err))
		return InvoiceResponse{}, err
	}

	invoiceID := uuid.New()
	var totalCents int64
	items := make([]InvoiceItem, len(req.Items))
	for i, item := range req.Items {
		lineTotal := int64(item.Quantity) * item.UnitCents
		totalCents += lineTotal
		items[i] = InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   invoiceID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCents:   item.UnitCents,
		}
	}

	inv := &Invoice{
		ID:              invoiceID,
		InvoiceNumber:   number,
		ClientCompanyID: companyID,
		ProjectID:       projectID,
		Status:          StatusDraft,
		Currency:        currency,
		IssuedAt:        issuedAt,
		DueDate:         dueDate,
		TotalCents:      totalCents,
		CreatedBy:       caller.ID,
		Items:           items,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		s.logger.Error("create invoice persist failed", zap.Error(err))
		return InvoiceResponse{}, err
	}

	s.logger.Info("create invoice success",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("invoice_number", number),
	)
	return mapToResponse(*inv), nil
}

func (s *service) GetAll(ctx context.Context, caller access.Caller) ([]InvoiceResponse, error) {
	invoices, err := s.repo.FindAll(ctx, access.InvoiceScope(caller))
	if err != nil {
		return nil, err
	}
	return lo.Map(invoices, func(inv Invoice, _ int) InvoiceResponse {
		return mapToResponse(inv)
	}), nil
}

func (s *service) GetByID(ctx context.Context, caller access.Caller, id string) (InvoiceResponse, error) {
	inv, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return InvoiceResponse{}, err
	}
	return mapToResponse(*inv), nil
}

func (s *service) UpdateStatus(ctx context.Context, caller access.Caller, id string, req UpdateStatusRequest) (InvoiceResponse, error) {
	if _, err := s.findVisible(ctx, caller, id); err != nil {
		return InvoiceResponse{}, err
	}

	affected, err := s.repo.UpdateStatus(ctx, id, req.ExpectedStatus, req.Status)
	if err != nil {
		s.logger.Error("update invoice status failed", zap.String("invoice_id", id), zap.Error(err))
		return InvoiceResponse{}, err
	}
	if affected == 0 {
		s.logger.Warn("update invoice status lost the race",
			zap.String("invoice_id", id),
			zap.String("expected_status", req.ExpectedStatus),
		)
		return InvoiceResponse{}, invoiceerrors.ErrStatusConflict
	}

	inv, err := s.repo.FindByID(ctx, id, access.Unscoped())
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.logger.Info("update invoice status success",
		zap.String("invoice_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*inv), nil
}

func (s *service) Delete(ctx context.Context, caller access.Caller, id string) error {
	inv, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return err
	}
	if inv.Status != StatusDraft {
		return invoiceerrors.ErrNotEditable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete invoice failed", zap.String("invoice_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete invoice success", zap.String("invoice_id", id))
	return nil
}

func (s *service) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	flipped, err := s.repo.MarkOverdue(ctx, now)
	if err != nil {
		s.logger.Error("mark overdue sweep failed", zap.Error(err))
		return 0, err
	}
	if flipped > 0 {
		s.logger.Info("mark overdue sweep", zap.Int64("flipped", flipped))
	}
	return flipped, nil
}

func (s *service) findVisible(ctx context.Context, caller access.Caller, id string) (*Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id, access.InvoiceScope(caller))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoiceerrors.ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

// nextNumber allocates INV-<year>-<seq> from the shared counter, the
// sequence restarting every year.
func (s *service) nextNumber(ctx context.Context, issuedAt time.Time) (string, error) {
	year := strconv.Itoa(issuedAt.Year())
	seq, err := s.counters.NextValue(ctx, year, numberCounterType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%06d", year, seq), nil
}

func mapToResponse(inv Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:              inv.ID.String(),
		InvoiceNumber:   inv.InvoiceNumber,
		ClientCompanyID: inv.ClientCompanyID.String(),
		Status:          inv.Status,
		Currency:        inv.Currency,
		IssuedAt:        inv.IssuedAt.Format("2006-01-02"),
		DueDate:         inv.DueDate.Format("2006-01-02"),
		TotalCents:      inv.TotalCents,
	}
	if inv.ProjectID != nil {
		v := inv.ProjectID.String()
		resp.ProjectID = &v
	}
	resp.Items = lo.Map(inv.Items, func(item InvoiceItem, _ int) InvoiceItemResponse {
		return InvoiceItemResponse{
			ID:          item.ID.String(),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCents:   item.UnitCents,
			TotalCents:  int64(item.Quantity) * item.UnitCents,
		}
	})
	return resp
}
