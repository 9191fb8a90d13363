package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

var invoiceSecret = func() []byte {
	if s := os.Getenv("INVOICE_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("vestra_invoice_secret")
}()

// SignedPayload returns "orderID|userID|timestamp|signature" for embedding in
// the invoice QR code, so a scan can be verified server-side.
func SignedPayload(orderID, userID string, ts int64) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, userID, ts)
	h := hmac.New(sha256.New, invoiceSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintInvoice renders a PDF receipt for an order: line items, totals,
// shipping details and a signed QR verification code.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, ok := loadOrder(ctx, w, ps.ByName("orderid"))
	if !ok {
		return
	}
	if !mayAccess(r, order) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	qrPNG, err := qrcode.Encode(SignedPayload(order.OrderID, order.UserID, time.Now().Unix()), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Order Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Order: %s", order.OrderID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("02 Jan 2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Payment method: %s", order.PaymentMethod))
	pdf.Ln(6)
	status := "pending payment"
	if order.IsPaid {
		status = "paid " + order.PaidAt.Format("02 Jan 2006")
	}
	if order.IsDelivered {
		status += ", delivered " + order.DeliveredAt.Format("02 Jan 2006")
	}
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", status))
	pdf.Ln(10)

	pdf.MultiCell(0, 6, fmt.Sprintf("Ship to:\n%s\n%s %s\n%s",
		order.ShippingAddress.Street,
		order.ShippingAddress.PostalCode,
		order.ShippingAddress.City,
		order.ShippingAddress.Country,
	), "", "L", false)
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, "Price", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		name := item.Name
		if item.Size != "" || item.Color != "" {
			name = fmt.Sprintf("%s (%s %s)", item.Name, item.Size, item.Color)
		}
		pdf.CellFormat(90, 7, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", item.Price), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.CellFormat(115, 6, "Items", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", order.ItemsPrice), "", 1, "R", false, 0, "")
	pdf.CellFormat(115, 6, "Shipping", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", order.ShippingPrice), "", 1, "R", false, 0, "")
	pdf.CellFormat(115, 6, "Tax", "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", order.TaxPrice), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(115, 7, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", order.TotalPrice), "T", 1, "R", false, 0, "")

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 230, 35, 35, false, imgOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", order.OrderID))
	if _, err := w.Write(buf.Bytes()); err != nil {
		_ = err // headers already sent
	}
}
