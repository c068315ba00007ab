package render

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDF serializes the document tree to A4 PDF bytes.
func PDF(doc *Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()

	m := maroto.New(cfg)

	// Header: sender on the left, title and meta on the right.
	sender := col.New(6)
	if doc.Sender.CompanyName != "" {
		sender.Add(text.New(doc.Sender.CompanyName, props.Text{Size: 14, Style: fontstyle.Bold}))
	}
	top := 7.0
	for _, line := range doc.Sender.AddressLines {
		sender.Add(text.New(line, props.Text{Size: 9, Top: top}))
		top += 4
	}
	if doc.Sender.Phone != "" {
		sender.Add(text.New(doc.Sender.Phone, props.Text{Size: 9, Top: top}))
		top += 4
	}
	if doc.Sender.Email != "" {
		sender.Add(text.New(doc.Sender.Email, props.Text{Size: 9, Top: top}))
	}

	meta := col.New(6)
	meta.Add(text.New(doc.Title, props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Right}))
	metaLines := []string{
		"Référence: " + doc.Meta.Reference,
		"Version: " + doc.Meta.Version,
		"Date de facturation: " + doc.Meta.InvoiceDate,
	}
	if doc.Meta.ClientReference != "" {
		metaLines = append(metaLines, "Référence client: "+doc.Meta.ClientReference)
	}
	top = 10
	for _, line := range metaLines {
		meta.Add(text.New(line, props.Text{Size: 9, Top: top, Align: align.Right}))
		top += 4
	}

	m.AddRow(40, sender, meta)

	// Client block, only when resolved.
	if doc.Client != nil {
		clientCol := col.New(12).
			Add(text.New(doc.Client.Name, props.Text{Size: 12, Style: fontstyle.Bold}))
		if doc.Client.Address != "" {
			clientCol.Add(text.New(doc.Client.Address, props.Text{Size: 9, Top: 6}))
		}
		m.AddRow(18, clientCol)
	}

	// Item table.
	m.AddRow(8,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Prix Unit. HT", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Quantité", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total HT", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, row := range doc.Table.Rows {
		height := 8.0
		desc := col.New(5).Add(text.New(row.Description, props.Text{Size: 9}))
		if row.AdditionalInfo != "" {
			desc.Add(text.New(row.AdditionalInfo, props.Text{Size: 7, Top: 4}))
			height = 10
		}
		m.AddRow(height,
			desc,
			text.NewCol(3, row.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, row.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, row.Total, props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals, right aligned.
	for _, line := range doc.Totals.Lines {
		style := fontstyle.Normal
		size := 9.0
		if line.Emphasized {
			style = fontstyle.Bold
			size = 11
		}
		m.AddRow(7,
			col.New(6),
			text.NewCol(3, line.Label, props.Text{Size: size, Style: style, Align: align.Right}),
			text.NewCol(3, line.Value, props.Text{Size: size, Style: style, Align: align.Right}),
		)
	}

	if doc.VATNote != "" {
		m.AddRow(6, text.NewCol(12, doc.VATNote, props.Text{Size: 8}))
	}

	// Banking block left, payment terms right.
	banking := col.New(6)
	banking.Add(text.New(doc.Banking.Title, props.Text{Size: 10, Style: fontstyle.Bold}))
	top = 6
	for _, line := range doc.Banking.Lines {
		banking.Add(text.New(line, props.Text{Size: 9, Top: top}))
		top += 4
	}

	payment := col.New(6).
		Add(text.New("Date d'échéance: "+doc.Payment.DueDate, props.Text{Size: 9})).
		Add(text.New("Mode de paiement: "+doc.Payment.PaymentMethod, props.Text{Size: 9, Top: 4})).
		Add(text.New(doc.Payment.ServiceLine, props.Text{Size: 8, Top: 9}))

	m.AddRow(28, banking, payment)

	if doc.Notes != "" {
		m.AddRow(12, text.NewCol(12, doc.Notes, props.Text{Size: 9}))
	}

	for _, line := range doc.Legal {
		m.AddRow(5, text.NewCol(12, line, props.Text{Size: 7, Align: align.Center}))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return out.GetBytes(), nil
}
