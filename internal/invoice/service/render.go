package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MathisL971/invoicegen/internal/invoice/calc"
	"github.com/MathisL971/invoicegen/internal/invoice/domain"
	"github.com/MathisL971/invoicegen/internal/invoice/render"
	"github.com/MathisL971/invoicegen/internal/userctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

func (s *Service) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, invoice, err := s.buildDocument(ctx, id)
	if err != nil {
		return nil, "", err
	}

	out, err := render.PDF(doc)
	if err != nil {
		s.log.Error("pdf generation failed",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	s.metrics.PDFsRendered.Inc()
	return out, fmt.Sprintf("invoice-%s.pdf", invoice.Reference), nil
}

func (s *Service) RenderHTML(ctx context.Context, id string) (string, error) {
	doc, _, err := s.buildDocument(ctx, id)
	if err != nil {
		return "", err
	}
	return render.HTML(doc)
}

// buildDocument resolves everything one invoice document needs: sender
// profile, client, lines and recomputed totals.
func (s *Service) buildDocument(ctx context.Context, id string) (*render.Document, *domain.Invoice, error) {
	accountID, ok := userctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, nil, domain.ErrInvalidAccount
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, nil, domain.ErrInvalidID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, accountID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, invoice.ID)
	if err != nil {
		return nil, nil, err
	}

	sender, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, nil, err
	}

	client, err := s.clientrepo.FindByID(ctx, s.db, accountID, invoice.ClientID)
	if err != nil {
		return nil, nil, err
	}

	totals := calc.Compute(items, invoice.VATApplicable)
	return render.Render(sender, client, *invoice, items, totals), invoice, nil
}
