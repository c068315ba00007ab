package render

import (
	"bytes"
	"html/template"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="fr">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}} {{.Meta.Reference}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: Helvetica, Arial, sans-serif;
      font-size: 13px;
      color: #111827;
      background: #f7f9fc;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 48px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
    .company-name { font-size: 18px; font-weight: 700; margin-bottom: 6px; }
    .muted { color: #4b5563; font-size: 12px; }
    .title-box {
      background: #e5e7eb;
      padding: 10px 18px;
      border-radius: 4px;
      text-align: center;
      font-size: 22px;
      font-weight: 700;
    }
    .meta { margin-top: 10px; font-size: 11px; color: #4b5563; }
    .client { margin: 24px 0 32px; }
    .client-name { font-size: 15px; font-weight: 700; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th {
      text-align: left;
      font-size: 11px;
      text-transform: uppercase;
      color: #4b5563;
      border-bottom: 1px solid #e5e7eb;
      padding: 8px;
      background: #f9fafb;
    }
    th.num, td.num { text-align: right; }
    td { font-size: 12px; padding: 8px; border-bottom: 1px solid #e5e7eb; }
    .additional { font-size: 10px; color: #6b7280; margin-top: 2px; }
    .totals { margin-left: auto; width: 260px; }
    .total-line { display: flex; justify-content: space-between; padding: 4px 0; font-size: 12px; }
    .total-line.emph {
      font-size: 14px;
      font-weight: 700;
      border-top: 1px solid #e5e7eb;
      border-bottom: 1px solid #e5e7eb;
      padding: 6px 0;
    }
    .vat-note { font-size: 11px; color: #6b7280; margin-top: 10px; }
    .banking { display: flex; justify-content: space-between; margin-top: 32px; }
    .banking-title { font-weight: 700; font-size: 12px; margin-bottom: 6px; }
    .notes { margin-top: 24px; font-size: 12px; color: #4b5563; }
    .legal { margin-top: 40px; text-align: center; font-size: 9px; color: #6b7280; line-height: 1.4; }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <div>
        {{if .Sender.CompanyName}}<div class="company-name">{{.Sender.CompanyName}}</div>{{end}}
        {{range .Sender.AddressLines}}<div class="muted">{{.}}</div>{{end}}
        {{if .Sender.Phone}}<div class="muted">{{.Sender.Phone}}</div>{{end}}
        {{if .Sender.Email}}<div class="muted">{{.Sender.Email}}</div>{{end}}
      </div>
      <div>
        <div class="title-box">{{.Title}}</div>
        <div class="meta">
          <div>Référence: {{.Meta.Reference}}</div>
          <div>Version: {{.Meta.Version}}</div>
          <div>Date de facturation: {{.Meta.InvoiceDate}}</div>
          {{if .Meta.ClientReference}}<div>Référence client: {{.Meta.ClientReference}}</div>{{end}}
        </div>
      </div>
    </div>

    {{with .Client}}
    <div class="client">
      <div class="client-name">{{.Name}}</div>
      {{if .Address}}<div class="muted">{{.Address}}</div>{{end}}
    </div>
    {{end}}

    <table>
      <thead>
        <tr>
          <th>Description</th>
          <th class="num">Prix Unit. HT</th>
          <th class="num">Quantité</th>
          <th class="num">Total HT</th>
        </tr>
      </thead>
      <tbody>
        {{range .Table.Rows}}
        <tr>
          <td>
            {{.Description}}
            {{if .AdditionalInfo}}<div class="additional">{{.AdditionalInfo}}</div>{{end}}
          </td>
          <td class="num">{{.UnitPrice}}</td>
          <td class="num">{{.Quantity}}</td>
          <td class="num">{{.Total}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      {{range .Totals.Lines}}
      <div class="total-line{{if .Emphasized}} emph{{end}}">
        <span>{{.Label}}</span>
        <span>{{.Value}}</span>
      </div>
      {{end}}
    </div>

    {{if .VATNote}}<div class="vat-note">{{.VATNote}}</div>{{end}}

    <div class="banking">
      <div>
        <div class="banking-title">{{.Banking.Title}}</div>
        {{range .Banking.Lines}}<div class="muted">{{.}}</div>{{end}}
      </div>
      <div>
        <div class="muted">Date d'échéance: {{.Payment.DueDate}}</div>
        <div class="muted">Mode de paiement: {{.Payment.PaymentMethod}}</div>
        <div class="muted">{{.Payment.ServiceLine}}</div>
      </div>
    </div>

    {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}

    <div class="legal">
      {{range .Legal}}<div>{{.}}</div>{{end}}
    </div>
  </div>
</body>
</html>`

var htmlTmpl = template.Must(template.New("invoice").Parse(invoiceHTMLTemplate))

// HTML serializes the document tree to the on-screen preview.
func HTML(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
