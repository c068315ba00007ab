package status

import (
	"testing"
	"time"

	"github.com/MathisL971/invoicegen/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsOverdue(t *testing.T) {
	due := day("2024-01-01")

	assert.True(t, IsOverdue(due, domain.InvoiceStatusSent, day("2024-02-01")))
	assert.True(t, IsOverdue(due, domain.InvoiceStatusDraft, day("2024-01-02")))

	// Due day itself is not overdue.
	assert.False(t, IsOverdue(due, domain.InvoiceStatusSent, day("2024-01-01")))
	assert.False(t, IsOverdue(due, domain.InvoiceStatusSent, day("2023-12-31")))

	// Paid invoices never show overdue.
	assert.False(t, IsOverdue(due, domain.InvoiceStatusPaid, day("2024-02-01")))
}

func TestIsOverdueIgnoresTimeOfDay(t *testing.T) {
	due := day("2024-01-01").Add(23 * time.Hour)
	today := day("2024-01-01").Add(1 * time.Hour)

	assert.False(t, IsOverdue(due, domain.InvoiceStatusSent, today))
}

func TestDisplay(t *testing.T) {
	due := day("2024-01-01")

	assert.Equal(t, domain.InvoiceStatusOverdue, Display(due, domain.InvoiceStatusSent, day("2024-02-01")))
	assert.Equal(t, domain.InvoiceStatusPaid, Display(due, domain.InvoiceStatusPaid, day("2024-02-01")))
	assert.Equal(t, domain.InvoiceStatusSent, Display(due, domain.InvoiceStatusSent, day("2023-12-31")))
	assert.Equal(t, domain.InvoiceStatusDraft, Display(due, domain.InvoiceStatusDraft, day("2023-12-31")))
}

func TestNeedsReconcile(t *testing.T) {
	due := day("2024-01-01")
	later := day("2024-02-01")

	assert.True(t, NeedsReconcile(due, domain.InvoiceStatusSent, later))
	assert.True(t, NeedsReconcile(due, domain.InvoiceStatusDraft, later))

	// Already stored as overdue, nothing to write.
	assert.False(t, NeedsReconcile(due, domain.InvoiceStatusOverdue, later))
	assert.False(t, NeedsReconcile(due, domain.InvoiceStatusPaid, later))
	assert.False(t, NeedsReconcile(due, domain.InvoiceStatusSent, day("2023-12-31")))
}

func TestResolvePaid(t *testing.T) {
	next, err := Resolve(ActionPaid, day("2024-01-01"), domain.InvoiceStatusOverdue, day("2024-02-01"))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, next)
}

func TestResolveUnpaid(t *testing.T) {
	due := day("2024-01-01")

	// Past due resolves straight to overdue.
	next, err := Resolve(ActionUnpaid, due, domain.InvoiceStatusPaid, day("2024-02-01"))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusOverdue, next)

	// Not past due: drafts stay draft, everything else becomes sent.
	next, err = Resolve(ActionUnpaid, due, domain.InvoiceStatusDraft, day("2023-12-01"))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, next)

	next, err = Resolve(ActionUnpaid, due, domain.InvoiceStatusPaid, day("2023-12-01"))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, next)
}

func TestResolveSent(t *testing.T) {
	due := day("2024-06-01")

	next, err := Resolve(ActionSent, due, domain.InvoiceStatusDraft, day("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, next)

	_, err = Resolve(ActionSent, due, domain.InvoiceStatusPaid, day("2024-01-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestResolveUnknownAction(t *testing.T) {
	_, err := Resolve("archived", day("2024-01-01"), domain.InvoiceStatusDraft, day("2024-01-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
