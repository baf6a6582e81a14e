// Package export renders the daily sales report as a CSV download.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"cafe-order-api/models"
)

// Summary holds the per-day aggregates shown on the sales page and appended
// to the CSV export.
type Summary struct {
	TotalOrders      int     `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	PaidOrders       int     `json:"paid_orders"`
	PaidRevenue      float64 `json:"paid_revenue"`
	CompletedOrders  int     `json:"completed_orders"`
	CompletedRevenue float64 `json:"completed_revenue"`
	PendingOrders    int     `json:"pending_orders"`
	PendingRevenue   float64 `json:"pending_revenue"`
}

// Report is one calendar day of orders plus its summary.
type Report struct {
	Date    time.Time      `json:"date"`
	Orders  []models.Order `json:"orders"`
	Summary Summary        `json:"summary"`
}

// Summarize computes the per-status aggregates for a day's orders.
func Summarize(orders []models.Order) Summary {
	var s Summary
	s.TotalOrders = len(orders)
	for _, o := range orders {
		s.TotalRevenue += o.TotalAmount
		switch o.Status {
		case models.StatusPaid:
			s.PaidOrders++
			s.PaidRevenue += o.TotalAmount
		case models.StatusCompleted:
			s.CompletedOrders++
			s.CompletedRevenue += o.TotalAmount
		case models.StatusAwaitingPayment:
			s.PendingOrders++
			s.PendingRevenue += o.TotalAmount
		}
	}
	return s
}

// Filename is the attachment name for a day's export.
func Filename(date time.Time) string {
	return "laporan-penjualan-" + date.Format("2006-01-02") + ".csv"
}

// BuildCSV renders the report: BOM, header row, one row per order, a blank
// line, then the SUMMARY block of label,value pairs.
func BuildCSV(r Report) []byte {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	w.Write([]string{"No", "Meja", "Nama Pelanggan", "Total", "Status", "Waktu"})
	for i, order := range r.Orders {
		name := order.CustomerName
		if name == "" {
			name = "-"
		}
		w.Write([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(order.TableNumber),
			name,
			formatAmount(order.TotalAmount),
			string(order.Status),
			order.CreatedAt.Format("02/01/2006 15:04"),
		})
	}
	w.Write([]string{})
	w.Write([]string{"SUMMARY"})
	w.Write([]string{"Total Pesanan", strconv.Itoa(r.Summary.TotalOrders)})
	w.Write([]string{"Total Revenue", formatAmount(r.Summary.TotalRevenue)})
	w.Write([]string{"Dibayar", strconv.Itoa(r.Summary.PaidOrders)})
	w.Write([]string{"Selesai", strconv.Itoa(r.Summary.CompletedOrders)})
	w.Write([]string{"Menunggu Pembayaran", strconv.Itoa(r.Summary.PendingOrders)})
	w.Flush()

	return buf.Bytes()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
