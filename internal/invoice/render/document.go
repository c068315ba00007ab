// Package render maps a fully resolved invoice onto a fixed-layout
// document tree. The PDF export and the on-screen preview both serialize
// this one tree, so they cannot drift apart.
package render

// Document is the abstract invoice document. All values are already
// formatted strings; serializers only lay them out.
type Document struct {
	Title   string
	Sender  SenderBlock
	Meta    MetaBlock
	Client  *ClientBlock
	Table   ItemTable
	Totals  TotalsBlock
	VATNote string
	Banking BankingBlock
	Payment PaymentBlock
	Notes   string
	Legal   []string
}

type SenderBlock struct {
	CompanyName  string
	AddressLines []string
	Phone        string
	Email        string
}

type MetaBlock struct {
	Reference       string
	Version         string
	InvoiceDate     string
	ClientReference string
}

type ClientBlock struct {
	Name    string
	Address string
}

type ItemRow struct {
	Description    string
	AdditionalInfo string
	UnitPrice      string
	Quantity       string
	Total          string
}

type ItemTable struct {
	Rows []ItemRow
}

// TotalLine is one row of the totals block. Emphasized lines are the two
// final TTC rows, which always show the same amount under two labels.
type TotalLine struct {
	Label      string
	Value      string
	Emphasized bool
}

type TotalsBlock struct {
	Lines []TotalLine
}

type BankingBlock struct {
	Title string
	Lines []string
}

type PaymentBlock struct {
	DueDate       string
	PaymentMethod string
	ServiceLine   string
}
