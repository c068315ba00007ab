package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	clientdomain "github.com/MathisL971/invoicegen/internal/client/domain"
	"github.com/MathisL971/invoicegen/internal/clock"
	"github.com/MathisL971/invoicegen/internal/invoice/calc"
	"github.com/MathisL971/invoicegen/internal/invoice/domain"
	"github.com/MathisL971/invoicegen/internal/invoice/status"
	"github.com/MathisL971/invoicegen/internal/observability/metrics"
	profiledomain "github.com/MathisL971/invoicegen/internal/profile/domain"
	"github.com/MathisL971/invoicegen/internal/reference"
	referencedomain "github.com/MathisL971/invoicegen/internal/reference/domain"
	"github.com/MathisL971/invoicegen/internal/userctx"
	"github.com/MathisL971/invoicegen/pkg/db"
	"github.com/MathisL971/invoicegen/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Metrics    *metrics.Metrics
	Repo       domain.Repository
	RefRepo    referencedomain.Repository
	ClientRepo clientdomain.Repository
	Profiles   profiledomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	metrics    *metrics.Metrics
	repo       domain.Repository
	refrepo    referencedomain.Repository
	clientrepo clientdomain.Repository
	profiles   profiledomain.Service

	// reconciling tracks in-flight overdue write-backs so a hot invoice
	// page does not stack identical updates.
	reconciling sync.Map
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("invoice.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		metrics:    p.Metrics,
		repo:       p.Repo,
		refrepo:    p.RefRepo,
		clientrepo: p.ClientRepo,
		profiles:   p.Profiles,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Invoice{}, domain.ErrInvalidAccount
	}

	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidClient
	}
	if err := calc.ValidateItems(req.Items); err != nil {
		return domain.Invoice{}, err
	}

	client, err := s.clientrepo.FindByID(ctx, s.db, accountID, clientID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if client == nil {
		return domain.Invoice{}, domain.ErrInvalidClient
	}

	now := s.clock.Now()
	invoice := domain.Invoice{
		ID:              s.genID.Generate(),
		AccountID:       accountID,
		Version:         "1.0",
		ClientID:        clientID,
		ClientReference: client.Reference,
		InvoiceDate:     req.InvoiceDate,
		DueDate:         req.DueDate,
		PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
		Status:          domain.InvoiceStatusDraft,
		VATApplicable:   req.VATApplicable,
		VATArticle:      strings.TrimSpace(req.VATArticle),
		Notes:           strings.TrimSpace(req.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := s.buildItems(invoice.ID, req.Items, now)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.refrepo.Next(ctx, tx, accountID, reference.KindInvoice)
		if err != nil {
			return err
		}
		invoice.Reference = reference.Generate(reference.KindInvoice, seq-1)
		return s.repo.Insert(ctx, tx, &invoice, items)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.metrics.InvoicesCreated.Inc()
	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("reference", invoice.Reference),
	)
	return invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidAccount
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, accountID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: invoice.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	today := s.clock.Now()
	invoices := make([]domain.InvoiceSummary, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, domain.InvoiceSummary{
			Invoice:       *item,
			DisplayStatus: status.Display(item.DueDate, item.Status, today),
		})
	}

	return domain.ListInvoiceResponse{
		PageInfo: *pageInfo,
		Invoices: invoices,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.InvoiceDetail, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.InvoiceDetail{}, domain.ErrInvalidAccount
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.InvoiceDetail{}, domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, accountID, invoiceID)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	if invoice == nil {
		return domain.InvoiceDetail{}, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, invoice.ID)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}

	today := s.clock.Now()
	if status.NeedsReconcile(invoice.DueDate, invoice.Status, today) {
		s.reconcileAsync(accountID, invoice.ID)
	}

	totals := calc.Compute(items, invoice.VATApplicable)
	return domain.InvoiceDetail{
		Invoice:       *invoice,
		Items:         items,
		DisplayStatus: status.Display(invoice.DueDate, invoice.Status, today),
		TotalHT:       totals.TotalHT,
		TotalVAT:      totals.TotalVAT,
		TotalTTC:      totals.TotalTTC,
	}, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Invoice{}, domain.ErrInvalidAccount
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, accountID, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	if err := calc.ValidateItems(req.Items); err != nil {
		return domain.Invoice{}, err
	}

	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidClient
	}
	client, err := s.clientrepo.FindByID(ctx, s.db, accountID, clientID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if client == nil {
		return domain.Invoice{}, domain.ErrInvalidClient
	}

	ref := strings.TrimSpace(req.Reference)
	if ref == "" {
		ref = invoice.Reference
	}

	now := s.clock.Now()
	updated := *invoice
	updated.Reference = ref
	updated.Version = bumpVersion(invoice.Version)
	updated.ClientID = clientID
	updated.ClientReference = client.Reference
	updated.InvoiceDate = req.InvoiceDate
	updated.DueDate = req.DueDate
	updated.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	updated.VATApplicable = req.VATApplicable
	updated.VATArticle = strings.TrimSpace(req.VATArticle)
	updated.Notes = strings.TrimSpace(req.Notes)
	updated.UpdatedAt = now

	items := s.buildItems(updated.ID, req.Items, now)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ref != invoice.Reference {
			existing, err := s.repo.FindByReference(ctx, tx, accountID, ref, invoiceID)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrDuplicateReference
			}
			if err := s.refrepo.Advance(ctx, tx, accountID, reference.KindInvoice, reference.Parse(reference.KindInvoice, ref)); err != nil {
				return err
			}
		}
		if err := s.repo.Update(ctx, tx, &updated); err != nil {
			return err
		}
		return s.repo.ReplaceItems(ctx, tx, updated.ID, items)
	})
	if err != nil {
		// The unique index backs up the in-transaction check.
		if db.IsDuplicateKeyErr(err) {
			return domain.Invoice{}, domain.ErrDuplicateReference
		}
		return domain.Invoice{}, err
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, accountID, invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, accountID, invoiceID)
	})
}

func (s *Service) Duplicate(ctx context.Context, id string) (domain.Invoice, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Invoice{}, domain.ErrInvalidAccount
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	source, err := s.repo.FindByID(ctx, s.db, accountID, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if source == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	sourceItems, err := s.repo.ListItems(ctx, s.db, source.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	now := s.clock.Now()
	dup := *source
	dup.ID = s.genID.Generate()
	dup.Version = "1.0"
	dup.Status = domain.InvoiceStatusDraft
	dup.InvoiceDate = now
	dup.DueDate = now.AddDate(0, 0, 30)
	dup.CreatedAt = now
	dup.UpdatedAt = now

	items := make([]domain.InvoiceItem, 0, len(sourceItems))
	for i, item := range sourceItems {
		items = append(items, domain.InvoiceItem{
			ID:             s.genID.Generate(),
			InvoiceID:      dup.ID,
			Description:    item.Description,
			AdditionalInfo: item.AdditionalInfo,
			UnitPriceHT:    item.UnitPriceHT,
			Quantity:       item.Quantity,
			TotalHT:        item.TotalHT,
			OrderIndex:     i,
			CreatedAt:      now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.refrepo.Next(ctx, tx, accountID, reference.KindInvoice)
		if err != nil {
			return err
		}
		dup.Reference = reference.Generate(reference.KindInvoice, seq-1)
		return s.repo.Insert(ctx, tx, &dup, items)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.metrics.InvoicesCreated.Inc()
	s.metrics.InvoicesDuplicated.Inc()
	s.log.Info("invoice duplicated",
		zap.String("source_id", source.ID.String()),
		zap.String("invoice_id", dup.ID.String()),
		zap.String("reference", dup.Reference),
	)
	return dup, nil
}

func (s *Service) buildItems(invoiceID snowflake.ID, inputs []domain.ItemInput, now time.Time) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, 0, len(inputs))
	for i, input := range inputs {
		items = append(items, domain.InvoiceItem{
			ID:             s.genID.Generate(),
			InvoiceID:      invoiceID,
			Description:    strings.TrimSpace(input.Description),
			AdditionalInfo: strings.TrimSpace(input.AdditionalInfo),
			UnitPriceHT:    input.UnitPriceHT,
			Quantity:       input.Quantity,
			TotalHT:        calc.ItemTotal(input.UnitPriceHT, input.Quantity),
			OrderIndex:     i,
			CreatedAt:      now,
		})
	}
	return items
}

// bumpVersion adds 0.1 to the stored version string. Unparseable values
// restart at 1.1 rather than failing the edit.
func bumpVersion(version string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(version), 64)
	if err != nil {
		v = 1.0
	}
	return fmt.Sprintf("%.1f", v+0.1)
}
