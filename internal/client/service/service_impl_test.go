package service

import (
	"context"
	"testing"
	"time"

	"github.com/MathisL971/invoicegen/internal/client/domain"
	clientrepo "github.com/MathisL971/invoicegen/internal/client/repository"
	"github.com/MathisL971/invoicegen/internal/clock"
	invoicedomain "github.com/MathisL971/invoicegen/internal/invoice/domain"
	invoicerepo "github.com/MathisL971/invoicegen/internal/invoice/repository"
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

type fixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
	ctx  context.Context
}

func newFixture(t *testing.T, dsn string) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Client{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&referencedomain.Counter{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.NewFakeClock(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)),
		Repo:        clientrepo.Provide(),
		RefRepo:     reference.NewRepository(),
		InvoiceRepo: invoicerepo.Provide(),
	})

	return &fixture{
		svc:  svc,
		db:   db,
		node: node,
		ctx:  userctx.WithAccountID(context.Background(), snowflake.ID(1001)),
	}
}

func TestCreateClientAutoReference(t *testing.T) {
	f := newFixture(t, "file:client_create?mode=memory&cache=shared")

	client, err := f.svc.Create(f.ctx, domain.CreateClientRequest{
		Name:    "  ACME SARL  ",
		Address: "1 avenue de la République, 75011 Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, "C-000001", client.Reference)
	assert.Equal(t, "ACME SARL", client.Name)

	second, err := f.svc.Create(f.ctx, domain.CreateClientRequest{Name: "Beta SAS"})
	require.NoError(t, err)
	assert.Equal(t, "C-000002", second.Reference)
}

func TestCreateClientManualReference(t *testing.T) {
	f := newFixture(t, "file:client_manual_ref?mode=memory&cache=shared")

	client, err := f.svc.Create(f.ctx, domain.CreateClientRequest{
		Reference: "C-000010",
		Name:      "ACME SARL",
	})
	require.NoError(t, err)
	assert.Equal(t, "C-000010", client.Reference)

	_, err = f.svc.Create(f.ctx, domain.CreateClientRequest{
		Reference: "C-000010",
		Name:      "Doublon",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)

	// The counter resumes past the manual reference.
	next, err := f.svc.Create(f.ctx, domain.CreateClientRequest{Name: "Beta SAS"})
	require.NoError(t, err)
	assert.Equal(t, "C-000011", next.Reference)
}

func TestCreateClientValidation(t *testing.T) {
	f := newFixture(t, "file:client_validation?mode=memory&cache=shared")

	_, err := f.svc.Create(f.ctx, domain.CreateClientRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = f.svc.Create(context.Background(), domain.CreateClientRequest{Name: "ACME"})
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)
}

func TestUpdateClient(t *testing.T) {
	f := newFixture(t, "file:client_update?mode=memory&cache=shared")

	client, err := f.svc.Create(f.ctx, domain.CreateClientRequest{Name: "ACME SARL"})
	require.NoError(t, err)

	updated, err := f.svc.Update(f.ctx, client.ID.String(), domain.UpdateClientRequest{
		Name:    "ACME Group",
		Address: "2 rue Neuve, 33000 Bordeaux",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME Group", updated.Name)
	// Blank reference keeps the existing one.
	assert.Equal(t, client.Reference, updated.Reference)

	_, err = f.svc.Update(f.ctx, f.node.Generate().String(), domain.UpdateClientRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteClientCascadesInvoices(t *testing.T) {
	f := newFixture(t, "file:client_delete?mode=memory&cache=shared")

	client, err := f.svc.Create(f.ctx, domain.CreateClientRequest{Name: "ACME SARL"})
	require.NoError(t, err)

	accountID, _ := userctx.AccountID(f.ctx)
	invoice := invoicedomain.Invoice{
		ID:          f.node.Generate(),
		AccountID:   accountID,
		Reference:   "F-000001",
		Version:     "1.0",
		ClientID:    client.ID,
		InvoiceDate: time.Now(),
		DueDate:     time.Now(),
		Status:      invoicedomain.InvoiceStatusDraft,
	}
	items := []invoicedomain.InvoiceItem{
		{ID: f.node.Generate(), InvoiceID: invoice.ID, Description: "Conseil", UnitPriceHT: 100, Quantity: 1, TotalHT: 100},
	}
	require.NoError(t, invoicerepo.Provide().Insert(f.ctx, f.db, &invoice, items))

	require.NoError(t, f.svc.Delete(f.ctx, client.ID.String()))

	_, err = f.svc.GetByID(f.ctx, client.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var invoices, lines int64
	require.NoError(t, f.db.Model(&invoicedomain.Invoice{}).Where("client_id = ?", client.ID).Count(&invoices).Error)
	require.NoError(t, f.db.Model(&invoicedomain.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).Count(&lines).Error)
	assert.Equal(t, int64(0), invoices)
	assert.Equal(t, int64(0), lines)
}

func TestListClientsPagination(t *testing.T) {
	f := newFixture(t, "file:client_list?mode=memory&cache=shared")

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := f.svc.Create(f.ctx, domain.CreateClientRequest{Name: name})
		require.NoError(t, err)
	}

	page, err := f.svc.List(f.ctx, domain.ListClientRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Clients, 2)
	assert.True(t, page.HasMore)
	require.NotEmpty(t, page.NextPageToken)

	rest, err := f.svc.List(f.ctx, domain.ListClientRequest{PageSize: 2, PageToken: page.NextPageToken})
	require.NoError(t, err)
	require.Len(t, rest.Clients, 1)
	assert.False(t, rest.HasMore)
	assert.Equal(t, "Gamma", rest.Clients[0].Name)
}
