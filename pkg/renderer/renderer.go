package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/omkarj/kirana-billing-api/pkg/money"
)

// HTML renders a receipt as a printable HTML page, the on-screen
// counterpart of the thermal receipt. Pure function of its input.
func HTML(r *entity.Receipt) (string, error) {
	var buf bytes.Buffer
	if err := billTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render bill: %w", err)
	}
	return buf.String(), nil
}

var billTemplate = template.Must(template.New("bill").Funcs(template.FuncMap{
	"rupees": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"signed": func(v float64) string { return fmt.Sprintf("%+.2f", v) },
	"qty":    money.FormatQty,
}).Parse(billTemplateHTML))

const billTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.BillNo}}</title>
<style>
  body { font-family: monospace; max-width: 420px; margin: 16px auto; }
  .header { text-align: center; }
  .header h1 { margin: 0; font-size: 1.3em; }
  table { width: 100%; border-collapse: collapse; }
  th, td { padding: 2px 4px; text-align: left; }
  td.num, th.num { text-align: right; }
  .totals td { border-top: 1px dashed #000; }
  .grand { font-weight: bold; }
  .footer { text-align: center; margin-top: 12px; }
</style>
</head>
<body>
<div class="header">
  <h1>{{.Header.StoreName}}</h1>
  {{if .Header.Address}}<div>{{.Header.Address}}</div>{{end}}
  {{if .Header.City}}<div>{{.Header.City}}</div>{{end}}
</div>
<hr>
<div>Bill No: {{.BillNo}}</div>
<div>Date: {{.Date}}</div>
{{if .Customer}}<div>Customer: {{.Customer}}</div>{{end}}
{{if .Cashier}}<div>Cashier: {{.Cashier}}</div>{{end}}
<hr>
<table>
  <tr><th>Item</th><th class="num">Qty</th><th class="num">Rate</th><th class="num">Amount</th></tr>
  {{range .Items}}
  <tr>
    <td>{{.Name}}{{if .RateOverridden}} *{{end}}</td>
    <td class="num">{{qty .Quantity}}</td>
    <td class="num">{{rupees .Rate}}</td>
    <td class="num">{{rupees .Amount}}</td>
  </tr>
  {{end}}
  <tr class="totals"><td colspan="3">Subtotal</td><td class="num">{{rupees .SubTotal}}</td></tr>
  {{if ne .RoundOff 0.0}}<tr><td colspan="3">Round Off</td><td class="num">{{signed .RoundOff}}</td></tr>{{end}}
  <tr class="grand"><td colspan="3">Grand Total</td><td class="num">{{rupees .GrandTotal}}</td></tr>
</table>
<div class="footer">Thank you! Visit again!</div>
</body>
</html>
`
