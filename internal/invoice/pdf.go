package invoice

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/noah-isme/sivakasi-crackers/internal/order"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

// ErrNoLines is returned when rendering an order without line items.
var ErrNoLines = errors.New("invoice: order has no lines")

// table column widths in mm; they sum to the printable A4 width.
var columns = []struct {
	title string
	width float64
	align string
}{
	{"Product", 62, "L"},
	{"Qty", 14, "C"},
	{"Rate", 24, "R"},
	{"Disc.", 18, "R"},
	{"Amount", 26, "R"},
	{"GST", 22, "R"},
	{"Total", 24, "R"},
}

// RenderPDF writes an A4 portrait invoice for o. Core fonts cannot encode the rupee sign,
// so amounts are prefixed with "Rs.".
func RenderPDF(w io.Writer, shop Shop, o order.Order) error {
	if len(o.Lines) == 0 {
		return ErrNoLines
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Invoice "+o.ID, true)
	pdf.SetAuthor(shop.Name, true)
	pdf.SetCreationDate(o.PlacedAt)
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(194, 65, 12)
	pdf.CellFormat(0, 9, tr(shop.Name), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	if shop.Tagline != "" {
		pdf.CellFormat(0, 5, tr(shop.Tagline), "", 1, "C", false, 0, "")
	}
	if shop.Footer != "" {
		pdf.CellFormat(0, 5, tr(shop.Footer), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 6, "Invoice #: "+o.ID, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Date: "+o.PlacedAt.Format(dateLayout), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Bill To", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr("Name: "+o.Customer.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Phone: "+o.Customer.Phone, "", 1, "L", false, 0, "")
	if o.Customer.Email != "" {
		pdf.CellFormat(0, 5, "Email: "+o.Customer.Email, "", 1, "L", false, 0, "")
	}
	pdf.MultiCell(0, 5, tr("Address: "+o.Customer.Address), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(255, 237, 213)
	for _, c := range columns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range o.Lines {
		cells := []string{
			tr(l.Name),
			fmt.Sprintf("%d", l.Quantity),
			pricing.Format(l.UnitPrice),
			pricing.Format(l.DiscountPercentage) + "%",
			pricing.Format(l.Subtotal - l.Discount),
			pricing.Format(l.GST),
			pricing.Format(l.Total),
		}
		for i, c := range columns {
			pdf.CellFormat(c.width, 6, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)

	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", "Rs. " + pricing.Format(o.Summary.Subtotal)},
		{"Discount", "- Rs. " + pricing.Format(o.Summary.Discount)},
		{"GST (" + pricing.RatePercent(o.Tax.RateBps) + "%)", "Rs. " + pricing.Format(o.Tax.GST)},
	}
	for _, t := range totals {
		pdf.CellFormat(150, 6, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, t.value, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 8, "Grand Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Rs. "+pricing.Format(o.Tax.GrandTotal), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Bank Details", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Bank: "+shop.Bank.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "A/C No: "+shop.Bank.Account, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "IFSC: "+shop.Bank.IFSC, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Branch: "+shop.Bank.Branch, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(shop.Terms) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Terms & Conditions", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for i, term := range shop.Terms {
			pdf.CellFormat(0, 5, fmt.Sprintf("%d. %s", i+1, tr(term)), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("invoice: render pdf: %w", err)
	}
	return nil
}
