package service

import (
	"context"
	"testing"
	"time"

	clientdomain "github.com/MathisL971/invoicegen/internal/client/domain"
	clientrepo "github.com/MathisL971/invoicegen/internal/client/repository"
	"github.com/MathisL971/invoicegen/internal/clock"
	"github.com/MathisL971/invoicegen/internal/invoice/domain"
	invoicerepo "github.com/MathisL971/invoicegen/internal/invoice/repository"
	"github.com/MathisL971/invoicegen/internal/invoice/status"
	"github.com/MathisL971/invoicegen/internal/observability/metrics"
	profiledomain "github.com/MathisL971/invoicegen/internal/profile/domain"
	profilerepo "github.com/MathisL971/invoicegen/internal/profile/repository"
	profileservice "github.com/MathisL971/invoicegen/internal/profile/service"
	"github.com/MathisL971/invoicegen/internal/reference"
	referencedomain "github.com/MathisL971/invoicegen/internal/reference/domain"
	"github.com/MathisL971/invoicegen/internal/userctx"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// promauto registers on the default registry, so the instruments are
// shared across every test in the package.
var testMetrics = metrics.New()

type fixture struct {
	svc      domain.Service
	db       *gorm.DB
	clock    *clock.FakeClock
	node     *snowflake.Node
	ctx      context.Context
	clientID snowflake.ID
}

func newFixture(t *testing.T, dsn string) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&profiledomain.Profile{},
		&clientdomain.Client{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
		&referencedomain.Counter{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fakeClock := clock.NewFakeClock(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	clients := clientrepo.Provide()
	profiles := profileservice.New(profileservice.Params{
		DB:    db,
		Log:   log,
		Clock: fakeClock,
		Repo:  profilerepo.Provide(),
	})

	svc := New(Params{
		DB:         db,
		Log:        log,
		GenID:      node,
		Clock:      fakeClock,
		Metrics:    testMetrics,
		Repo:       invoicerepo.Provide(),
		RefRepo:    reference.NewRepository(),
		ClientRepo: clients,
		Profiles:   profiles,
	})

	accountID := snowflake.ID(1001)
	ctx := userctx.WithAccountID(context.Background(), accountID)

	client := clientdomain.Client{
		ID:        node.Generate(),
		AccountID: accountID,
		Reference: "C-000001",
		Name:      "ACME SARL",
		Address:   "1 avenue de la République, 75011 Paris",
		CreatedAt: fakeClock.Now(),
		UpdatedAt: fakeClock.Now(),
	}
	require.NoError(t, clients.Insert(ctx, db, &client))

	return &fixture{
		svc:      svc,
		db:       db,
		clock:    fakeClock,
		node:     node,
		ctx:      ctx,
		clientID: client.ID,
	}
}

func createRequest(f *fixture) domain.CreateInvoiceRequest {
	return domain.CreateInvoiceRequest{
		ClientID:      f.clientID.String(),
		InvoiceDate:   f.clock.Now(),
		DueDate:       f.clock.Now().AddDate(0, 0, 30),
		PaymentMethod: "Virement bancaire",
		VATApplicable: true,
		Items: []domain.ItemInput{
			{Description: "Développement", UnitPriceHT: 500, Quantity: 2},
			{Description: "Conseil", AdditionalInfo: "Sur site", UnitPriceHT: 100, Quantity: 0.5},
		},
	}
}

func TestCreateInvoice(t *testing.T) {
	f := newFixture(t, "file:create_invoice?mode=memory&cache=shared")

	invoice, err := f.svc.Create(f.ctx, createRequest(f))
	require.NoError(t, err)

	assert.Equal(t, "F-000001", invoice.Reference)
	assert.Equal(t, "1.0", invoice.Version)
	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, "C-000001", invoice.ClientReference)

	detail, err := f.svc.Get(f.ctx, invoice.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, 1000.0, detail.Items[0].TotalHT)
	assert.Equal(t, 50.0, detail.Items[1].TotalHT)
	assert.Equal(t, 1050.0, detail.TotalHT)
	assert.Equal(t, 210.0, detail.TotalVAT)
	assert.Equal(t, 1260.0, detail.TotalTTC)
	assert.Equal(t, domain.InvoiceStatusDraft, detail.DisplayStatus)

	// References keep counting per account.
	second, err := f.svc.Create(f.ctx, createRequest(f))
	require.NoError(t, err)
	assert.Equal(t, "F-000002", second.Reference)
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newFixture(t, "file:create_invoice_validation?mode=memory&cache=shared")

	req := createRequest(f)
	req.Items = nil
	_, err := f.svc.Create(f.ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidItems)

	req = createRequest(f)
	req.ClientID = f.node.Generate().String()
	_, err = f.svc.Create(f.ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidClient)

	_, err = f.svc.Create(context.Background(), createRequest(f))
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)
}

func TestUpdateInvoiceBumpsVersion(t *testing.T) {
	f := newFixture(t, "file:update_invoice?mode=memory&cache=shared")

	invoice, err := f.svc.Create(f.ctx, createRequest(f))
	require.NoError(t, err)

	update := domain.UpdateInvoiceRequest{
		ClientID:      f.clientID.String(),
		InvoiceDate:   invoice.InvoiceDate,
		DueDate:       invoice.DueDate,
		PaymentMethod: "Chèque",
		VATApplicable: true,
		Items: []domain.ItemInput{
			{Description: "Forfait", UnitPriceHT: 2000, Quantity: 1},
		},
	}

	updated, err := f.svc.Update(f.ctx, invoice.ID.String(), update)
	require.NoError(t, err)
	assert.Equal(t, "1.1", updated.Version)
	assert.Equal(t, invoice.Reference, updated.Reference)
	assert.Equal(t, "Chèque", updated.PaymentMethod)

	updated, err = f.svc.Update(f.ctx, invoice.ID.String(), update)
	require.NoError(t, err)
	assert.Equal(t, "1.2", updated.Version)

	// Items are replaced wholesale.
	detail, err := f.svc.Get(f.ctx, invoice.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Forfait", detail.Items[0].Description)
	assert.Equal(t, 2000.0, detail.TotalHT)
}

func TestUpdateInvoiceManualReference(t *testing.T) {
	f := newFixture(t, "file:update_invoice_reference?mode=memory&cache=shared")

	first, err := f.svc.Create(f.ctx, createRequest(f))
	require.NoError(t, err)
	second, err := f.svc.Create(f.ctx, createRequest(f))
	require.NoError(t, err)

	update := domain.UpdateInvoiceRequest{
		Reference:     first.Reference,
		ClientID:      f.clientID.String(),
		InvoiceDate:   second.InvoiceDate,
		DueDate:       second.DueDate,
		VATApplicable: true,
		Items: []domain.ItemInput{
			{Description: "Forfait", UnitPriceHT: 100, Quantity: 1},
		},
	}
	_, err = f.svc.Update(f.ctx, second.ID.String(), update)
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)

	// A free manual reference advances the counter past it.
	update.Reference = "F-000050"
	_, err = f.svc.Update(f.ctx, second.ID.String(), update)
	require.NoError(t, err)

	third, err := f.svc.Create(f.ctx, createRequest(f))
	require.NoError(t, err)
	assert.Equal(t, "F-000051", third.Reference)
}

func TestDuplicateInvoice(t *testing.T) {
	f := newFixture(t, "file:duplicate_invoice?mode=memory&cache=shared")

	req := createRequest(f)
	req.DueDate = f.clock.Now().AddDate(0, 0, -10)
	source, err := f.svc.Create(f.ctx, req)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.ctx, source.ID.String(), status.ActionPaid)
	require.NoError(t, err)

	f.clock.Advance(48 * time.Hour)

	dup, err := f.svc.Duplicate(f.ctx, source.ID.String())
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, dup.ID)
	assert.Equal(t, "F-000002", dup.Reference)
	assert.Equal(t, "1.0", dup.Version)
	assert.Equal(t, domain.InvoiceStatusDraft, dup.Status)
	assert.Equal(t, f.clock.Now(), dup.InvoiceDate)
	assert.Equal(t, f.clock.Now().AddDate(0, 0, 30), dup.DueDate)

	detail, err := f.svc.Get(f.ctx, dup.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, 0, detail.Items[0].OrderIndex)
	assert.Equal(t, 1, detail.Items[1].OrderIndex)
}

func TestStatusLifecycle(t *testing.T) {
	f := newFixture(t, "file:status_lifecycle?mode=memory&cache=shared")

	invoice, err := f.svc.Create(f.ctx, createRequest(f))
	require.NoError(t, err)

	next, err := f.svc.UpdateStatus(f.ctx, invoice.ID.String(), status.ActionSent)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, next)

	next, err = f.svc.UpdateStatus(f.ctx, invoice.ID.String(), status.ActionPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, next)

	// Sent is only reachable from draft.
	_, err = f.svc.UpdateStatus(f.ctx, invoice.ID.String(), status.ActionSent)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(f.ctx, invoice.ID.String(), "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestOverdueReconciliation(t *testing.T) {
	f := newFixture(t, "file:overdue_reconcile?mode=memory&cache=shared")

	req := createRequest(f)
	req.DueDate = f.clock.Now().AddDate(0, 0, 5)
	invoice, err := f.svc.Create(f.ctx, req)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.ctx, invoice.ID.String(), status.ActionSent)
	require.NoError(t, err)

	f.clock.Advance(10 * 24 * time.Hour)

	detail, err := f.svc.Get(f.ctx, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusOverdue, detail.DisplayStatus)

	require.NoError(t, f.svc.ReconcileOverdue(f.ctx, invoice.ID.String()))

	detail, err = f.svc.Get(f.ctx, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusOverdue, detail.Invoice.Status)

	// Paying clears the overlay for good.
	next, err := f.svc.UpdateStatus(f.ctx, invoice.ID.String(), status.ActionPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, next)

	detail, err = f.svc.Get(f.ctx, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, detail.DisplayStatus)
}

func TestDeleteInvoice(t *testing.T) {
	f := newFixture(t, "file:delete_invoice?mode=memory&cache=shared")

	invoice, err := f.svc.Create(f.ctx, createRequest(f))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(f.ctx, invoice.ID.String()))

	_, err = f.svc.Get(f.ctx, invoice.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&domain.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRenderPDFFilename(t *testing.T) {
	f := newFixture(t, "file:render_pdf?mode=memory&cache=shared")

	invoice, err := f.svc.Create(f.ctx, createRequest(f))
	require.NoError(t, err)

	out, filename, err := f.svc.RenderPDF(f.ctx, invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "invoice-F-000001.pdf", filename)
	assert.True(t, len(out) > 0)

	html, err := f.svc.RenderHTML(f.ctx, invoice.ID.String())
	require.NoError(t, err)
	assert.Contains(t, html, "F-000001")
	assert.Contains(t, html, "ACME SARL")
}

func TestBumpVersion(t *testing.T) {
	assert.Equal(t, "1.1", bumpVersion("1.0"))
	assert.Equal(t, "2.0", bumpVersion("1.9"))
	assert.Equal(t, "3.3", bumpVersion("3.2"))
	assert.Equal(t, "1.1", bumpVersion("n/a"))
}
