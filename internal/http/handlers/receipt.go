package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"spiceroute-services/pkg/response"

	"github.com/phpdave11/gofpdf"
)

const restaurantName = "SpiceRoute"

// OrderReceiptPDF renders an order as a printable PDF receipt.
func (h *Handler) OrderReceiptPDF(w http.ResponseWriter, r *http.Request) {
	orderID := readPathString(r, "orderId")
	if orderID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Order ID is required")
		return
	}

	var file OrdersFile
	if err := h.loadOrDefault(FileOrders, &file); err != nil {
		h.Logger.Error("orders load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load orders")
		return
	}

	var order *Order
	for i := range file.Orders {
		if file.Orders[i].ID == orderID {
			order = &file.Orders[i]
			break
		}
	}
	if order == nil {
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}

	buf, err := renderOrderReceipt(*order)
	if err != nil {
		h.Logger.Error("receipt render failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate receipt")
		return
	}

	filename := fmt.Sprintf("receipt_%s.pdf", sanitizeFilename(order.ID))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func sanitizeFilename(value string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	return strings.Trim(re.ReplaceAllString(value, "_"), "_")
}

func formatAmount(v float64) string {
	return fmt.Sprintf("Rs %.2f", v)
}

func renderOrderReceipt(order Order) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, restaurantName, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Order %s", order.ID), "", 1, "C", false, 0, "")
	if order.OrderType != "" {
		pdf.CellFormat(0, 5, order.OrderType, "", 1, "C", false, 0, "")
	}
	if order.TableNumber != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Table %s", order.TableNumber), "", 1, "C", false, 0, "")
	}
	if order.DeliveryAddress != "" {
		pdf.MultiCell(0, 4, order.DeliveryAddress, "", "C", false)
	}
	if order.Timestamp != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Placed: %s", order.Timestamp), "", 1, "C", false, 0, "")
	}
	if order.CustomerName != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Customer: %s", order.CustomerName), "", 1, "C", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Items", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, item := range order.Items {
		pdf.CellFormat(0, 5, fmt.Sprintf("%dx %s", item.Quantity, item.Name), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Subtotal: %s", formatAmount(item.Price*float64(item.Quantity))), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %s", formatAmount(order.Total)), "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "", 9)
	if order.PaymentMethod != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Payment: %s", order.PaymentMethod), "", 1, "L", false, 0, "")
	}
	if order.Status != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s", order.Status), "", 1, "L", false, 0, "")
	}
	if order.Waiter != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Served by: %s", order.Waiter), "", 1, "L", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
