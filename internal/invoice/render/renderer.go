package render

import (
	"strings"

	clientdomain "github.com/MathisL971/invoicegen/internal/client/domain"
	"github.com/MathisL971/invoicegen/internal/format"
	"github.com/MathisL971/invoicegen/internal/invoice/calc"
	invoicedomain "github.com/MathisL971/invoicegen/internal/invoice/domain"
	profiledomain "github.com/MathisL971/invoicegen/internal/profile/domain"
)

const (
	documentTitle = "FACTURE"
	serviceLine   = "Prestation de service"

	legalIdentity = "Micro-Entreprise - SIRET: 978 934 560 00019 - SIREN: 978 934 560 - " +
		"RCS: Basse-Terre - APE/NAF: 6201Z - Num TVA: FR 70 978 934 560"
	legalLatePayment = "En cas de retard de paiement, une indemnité forfaitaire pour frais " +
		"de recouvrement de 40 euros sera exigée (Décret n°2012-1115 du 2 octobre 2012)."
)

// Render builds the document tree for one invoice. It is pure: same
// inputs, same tree; no I/O.
func Render(
	sender profiledomain.Profile,
	client *clientdomain.Client,
	invoice invoicedomain.Invoice,
	items []invoicedomain.InvoiceItem,
	totals calc.Totals,
) *Document {
	doc := &Document{
		Title: documentTitle,
		Sender: SenderBlock{
			CompanyName:  sender.CompanyName,
			AddressLines: splitAddress(sender.Address),
			Phone:        formatPhone(sender.Phone),
			Email:        sender.Email,
		},
		Meta: MetaBlock{
			Reference:       invoice.Reference,
			Version:         invoice.Version,
			InvoiceDate:     format.FormatDate(invoice.InvoiceDate),
			ClientReference: invoice.ClientReference,
		},
		Payment: PaymentBlock{
			DueDate:       format.FormatDate(invoice.DueDate),
			PaymentMethod: invoice.PaymentMethod,
			ServiceLine:   serviceLine,
		},
		Notes: strings.TrimSpace(invoice.Notes),
		Legal: []string{legalIdentity, legalLatePayment},
	}

	if client != nil {
		doc.Client = &ClientBlock{
			Name:    client.Name,
			Address: client.Address,
		}
	}

	rows := make([]ItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, ItemRow{
			Description:    item.Description,
			AdditionalInfo: item.AdditionalInfo,
			UnitPrice:      format.FormatCurrency(item.UnitPriceHT),
			Quantity:       format.FormatNumber(item.Quantity),
			Total:          format.FormatCurrency(item.TotalHT),
		})
	}
	doc.Table = ItemTable{Rows: rows}

	lines := []TotalLine{
		{Label: "Total HT:", Value: format.FormatCurrency(totals.TotalHT)},
	}
	if invoice.VATApplicable {
		lines = append(lines, TotalLine{
			Label: "TVA (20%):",
			Value: format.FormatCurrency(totals.TotalVAT),
		})
	}
	// The final amount appears twice under different labels, always both.
	lines = append(lines,
		TotalLine{Label: "Total Net TTC:", Value: format.FormatCurrency(totals.TotalTTC), Emphasized: true},
		TotalLine{Label: "Net à payer:", Value: format.FormatCurrency(totals.TotalTTC), Emphasized: true},
	)
	doc.Totals = TotalsBlock{Lines: lines}

	if !invoice.VATApplicable && strings.TrimSpace(invoice.VATArticle) != "" {
		doc.VATNote = "TVA non applicable, " + strings.TrimSpace(invoice.VATArticle)
	}

	doc.Banking = bankingBlock(sender.BankingInfo.Data())

	return doc
}

// splitAddress regroups a comma-separated address two tokens per line for
// compact display.
func splitAddress(address string) []string {
	if strings.TrimSpace(address) == "" {
		return nil
	}
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	var lines []string
	for i := 0; i < len(parts); i += 2 {
		end := i + 2
		if end > len(parts) {
			end = len(parts)
		}
		lines = append(lines, strings.Join(parts[i:end], ", "))
	}
	return lines
}

func formatPhone(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return ""
	}
	return "Tél.: " + phone
}

func bankingBlock(info profiledomain.BankingInfo) BankingBlock {
	block := BankingBlock{Title: "Informations Bancaires"}
	if info.BankName != "" {
		block.Lines = append(block.Lines, "Banque: "+info.BankName)
	}
	if info.RIB != "" {
		block.Lines = append(block.Lines, "RIB: "+info.RIB)
	}
	if info.IBAN != "" {
		block.Lines = append(block.Lines, "IBAN: "+info.IBAN)
	}
	if info.BIC != "" {
		block.Lines = append(block.Lines, "BIC: "+info.BIC)
	}
	return block
}
