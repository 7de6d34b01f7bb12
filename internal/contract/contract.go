// Package contract renders rental agreement PDFs handed to customers at
// checkout and downloadable from the back office.
package contract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// A4 layout in millimetres.
const (
	pageWidth    = 210
	pageHeight   = 297
	marginLeft   = 15
	marginRight  = 15
	marginTop    = 15
	marginBottom = 15
	contentWidth = pageWidth - marginLeft - marginRight
	maxY         = pageHeight - marginBottom
)

// ContractItem is one line of the agreement's equipment table.
type ContractItem struct {
	Name       string
	Quantity   int32
	Days       int32
	DailyPrice int32
	Deposit    int32
	TotalPrice int32
}

// ContractData carries everything the PDF layout needs.
type ContractData struct {
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	PickupLocation  string
	DateFrom        string
	DateTo          string
	// TotalPrice is the full payable amount, deposits included.
	TotalPrice   int32
	TotalDeposit int32
	Items        []ContractItem
}

// Company identifies the lessor on the agreement and in the payment code.
type Company struct {
	Name     string
	Email    string
	Phone    string
	Web      string
	Address  string
	BankIBAN string
}

type Generator struct {
	company Company
}

func NewGenerator(company Company) *Generator {
	return &Generator{company: company}
}

var nonDigits = regexp.MustCompile(`\D`)

// PaymentQRPayload builds the SPD bank-payment string encoded into the
// contract's QR code. The variable symbol is the numeric part of the
// order number, capped at ten digits.
func (g *Generator) PaymentQRPayload(orderNumber string, totalAmount int32) string {
	vs := nonDigits.ReplaceAllString(orderNumber, "")
	if len(vs) > 10 {
		vs = vs[:10]
	}
	if vs == "" {
		vs = "000"
	}
	return fmt.Sprintf("SPD*1.0*ACC:%s*AM:%d.00*CC:CZK*X-VS:%s*MSG:%s %s",
		g.company.BankIBAN, totalAmount, vs, g.company.Name, orderNumber)
}

// Generate renders the rental agreement and returns the PDF bytes.
func (g *Generator) Generate(data ContractData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	g.header(pdf, data)
	g.parties(pdf, data)
	g.rentalPeriod(pdf, data)
	g.itemsTable(pdf, data)
	g.totals(pdf, data)
	if err := g.paymentQR(pdf, data); err != nil {
		// Contract is still usable without the QR code.
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentWidth, 5, "Payment QR code unavailable", "", 1, "L", false, 0, "")
	}
	g.signatures(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render contract PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) header(pdf *gofpdf.Fpdf, data ContractData) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(contentWidth, 10, strings.ToUpper(g.company.Name), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Rental Agreement no. %s", data.OrderNumber), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth, 5, fmt.Sprintf("%s | %s | %s", g.company.Web, g.company.Email, g.company.Phone), "", 1, "L", false, 0, "")

	y := pdf.GetY() + 2
	pdf.SetDrawColor(44, 62, 80)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, y, pageWidth-marginRight, y)
	pdf.SetY(y + 6)
}

func (g *Generator) parties(pdf *gofpdf.Fpdf, data ContractData) {
	colWidth := float64(contentWidth) / 2

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colWidth, 6, "Lessor", "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth, 6, "Lessee", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	left := []string{g.company.Name, g.company.Address, g.company.Email, g.company.Phone}
	right := []string{data.CustomerName, data.CustomerAddress, data.CustomerEmail, data.CustomerPhone}
	for i := range left {
		pdf.CellFormat(colWidth, 5, left[i], "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidth, 5, right[i], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *Generator) rentalPeriod(pdf *gofpdf.Fpdf, data ContractData) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, 6, "Rental period", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth, 5, fmt.Sprintf("From %s to %s, pickup: %s", data.DateFrom, data.DateTo, data.PickupLocation), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (g *Generator) itemsTable(pdf *gofpdf.Fpdf, data ContractData) {
	widths := []float64{74, 16, 16, 26, 24, 24}
	headers := []string{"Item", "Qty", "Days", "Price/day", "Deposit", "Total"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(236, 240, 241)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, it := range data.Items {
		pdf.CellFormat(widths[0], 6, it.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", it.Days), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, formatPrice(it.DailyPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, formatPrice(it.Deposit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, formatPrice(it.TotalPrice), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

func (g *Generator) totals(pdf *gofpdf.Fpdf, data ContractData) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth, 5, fmt.Sprintf("Rental total: %s", formatPrice(data.TotalPrice-data.TotalDeposit)), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentWidth, 5, fmt.Sprintf("Deposit total: %s", formatPrice(data.TotalDeposit)), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentWidth, 7, fmt.Sprintf("Total payable: %s", formatPrice(data.TotalPrice)), "", 1, "R", false, 0, "")
	pdf.Ln(3)
}

func (g *Generator) paymentQR(pdf *gofpdf.Fpdf, data ContractData) error {
	payload := g.PaymentQRPayload(data.OrderNumber, data.TotalPrice)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("payment-qr", opts, bytes.NewReader(png))

	y := pdf.GetY()
	if y+36 > maxY {
		pdf.AddPage()
		y = pdf.GetY()
	}
	pdf.ImageOptions("payment-qr", marginLeft, y, 30, 30, false, opts, 0, "")
	pdf.SetXY(marginLeft+34, y+12)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth-34, 5, "Scan to pay by bank transfer", "", 1, "L", false, 0, "")
	pdf.SetY(y + 36)
	return nil
}

func (g *Generator) signatures(pdf *gofpdf.Fpdf) {
	if pdf.GetY()+50 > maxY {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "", 10)
	terms := "The lessee agrees to pay the rental charge and the deposit, and to return " +
		"the equipment undamaged, in the condition in which it was received. By signing, " +
		"the lessee confirms having read and accepted the rental terms."
	pdf.MultiCell(contentWidth, 5, terms, "", "L", false)
	pdf.Ln(14)

	y := pdf.GetY()
	const sigWidth = 60.0
	dateX := marginLeft + sigWidth + 15

	pdf.SetDrawColor(44, 62, 80)
	pdf.SetLineWidth(0.3)
	pdf.Line(marginLeft, y, marginLeft+sigWidth, y)
	pdf.Line(dateX, y, dateX+35, y)
	pdf.Line(dateX+40, y, dateX+40+sigWidth, y)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, y+2)
	pdf.CellFormat(sigWidth, 5, "Handed over by "+strings.ToUpper(g.company.Name), "", 0, "L", false, 0, "")
	pdf.SetX(dateX)
	pdf.CellFormat(35, 5, "Date", "", 0, "L", false, 0, "")
	pdf.SetX(dateX + 40)
	pdf.CellFormat(sigWidth, 5, "Received - lessee signature", "", 1, "L", false, 0, "")
}

func formatPrice(price int32) string {
	return fmt.Sprintf("%d CZK", price)
}
