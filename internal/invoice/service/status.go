package service

import (
	"context"
	"strings"
	"time"

	"github.com/MathisL971/invoicegen/internal/invoice/domain"
	"github.com/MathisL971/invoicegen/internal/invoice/status"
	"github.com/MathisL971/invoicegen/internal/userctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

func (s *Service) UpdateStatus(ctx context.Context, id string, action string) (domain.InvoiceStatus, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return "", domain.ErrInvalidAccount
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return "", domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, accountID, invoiceID)
	if err != nil {
		return "", err
	}
	if invoice == nil {
		return "", domain.ErrNotFound
	}

	next, err := status.Resolve(strings.TrimSpace(action), invoice.DueDate, invoice.Status, s.clock.Now())
	if err != nil {
		return "", err
	}

	if next != invoice.Status {
		if err := s.repo.UpdateStatus(ctx, s.db, accountID, invoiceID, next); err != nil {
			return "", err
		}
		s.log.Info("invoice status updated",
			zap.String("invoice_id", invoiceID.String()),
			zap.String("from", string(invoice.Status)),
			zap.String("to", string(next)),
		)
	}
	return next, nil
}

func (s *Service) ReconcileOverdue(ctx context.Context, id string) error {
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

	if !status.NeedsReconcile(invoice.DueDate, invoice.Status, s.clock.Now()) {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, s.db, accountID, invoiceID, domain.InvoiceStatusOverdue); err != nil {
		return err
	}
	s.metrics.OverdueReconciliations.Inc()
	return nil
}

// reconcileAsync persists the overdue overlay without blocking the read
// path. The write is best effort: a failure only delays the stored
// status until the next view.
func (s *Service) reconcileAsync(accountID, invoiceID snowflake.ID) {
	if _, inFlight := s.reconciling.LoadOrStore(invoiceID, struct{}{}); inFlight {
		return
	}
	go func() {
		defer s.reconciling.Delete(invoiceID)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		invoice, err := s.repo.FindByID(ctx, s.db, accountID, invoiceID)
		if err != nil || invoice == nil {
			return
		}
		if !status.NeedsReconcile(invoice.DueDate, invoice.Status, s.clock.Now()) {
			return
		}
		if err := s.repo.UpdateStatus(ctx, s.db, accountID, invoiceID, domain.InvoiceStatusOverdue); err != nil {
			s.log.Warn("overdue write-back failed",
				zap.String("invoice_id", invoiceID.String()),
				zap.Error(err),
			)
			return
		}
		s.metrics.OverdueReconciliations.Inc()
	}()
}
