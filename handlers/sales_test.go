package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"cafe-order-api/config"
	"cafe-order-api/export"
	"cafe-order-api/handlers"
	"cafe-order-api/models"
)

func TestSalesReport_DayBoundaries(t *testing.T) {
	r := setupTest(t)
	_, token := seedAdmin(t)

	// Two days ago, well inside the retention window the report load sweeps.
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -2)
	seedOrder(t, 1, models.StatusPaid, 10000, day)                                       // 00:00, included
	seedOrder(t, 2, models.StatusCompleted, 20000, day.Add(23*time.Hour+59*time.Minute)) // included
	seedOrder(t, 3, models.StatusPaid, 30000, day.Add(-time.Minute))                     // previous day
	seedOrder(t, 4, models.StatusAwaitingPayment, 40000, day.Add(25*time.Hour))          // next day

	w := doJSON(t, r, "GET", "/api/admin/sales?date="+day.Format("2006-01-02"), token, nil)
	requireStatus(t, w, http.StatusOK)

	var report export.Report
	decodeBody(t, w, &report)

	if report.Summary.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", report.Summary.TotalOrders)
	}
	if report.Summary.TotalRevenue != 30000 {
		t.Errorf("TotalRevenue = %v, want 30000", report.Summary.TotalRevenue)
	}
	if report.Summary.PaidOrders != 1 || report.Summary.CompletedOrders != 1 {
		t.Errorf("per-status counts wrong: %+v", report.Summary)
	}
	if len(report.Orders) != 2 {
		t.Errorf("expected 2 orders in day list, got %d", len(report.Orders))
	}
}

func TestSalesReport_RejectsMalformedDate(t *testing.T) {
	r := setupTest(t)
	_, token := seedAdmin(t)

	w := doJSON(t, r, "GET", "/api/admin/sales?date=15-06-2024", token, nil)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestRetentionSweep(t *testing.T) {
	setupTest(t)

	now := time.Now()
	old := seedOrder(t, 1, models.StatusCompleted, 10000, now.AddDate(0, 0, -31))
	config.DB.Create(&models.OrderItem{OrderID: old.ID, MenuItemID: 1, Name: "Kopi", Price: 10000, Quantity: 1, Subtotal: 10000})
	config.DB.Create(&models.OrderStatusHistory{OrderID: old.ID, ToStatus: models.StatusCompleted})
	// 29 days 23 hours old: must survive.
	fresh := seedOrder(t, 2, models.StatusCompleted, 20000, now.Add(-(29*24+23)*time.Hour))

	handlers.SweepExpiredOrders(now)

	var count int64
	config.DB.Model(&models.Order{}).Where("id = ?", old.ID).Count(&count)
	if count != 0 {
		t.Error("order older than 30 days must be deleted")
	}
	config.DB.Model(&models.OrderItem{}).Where("order_id = ?", old.ID).Count(&count)
	if count != 0 {
		t.Error("items of a swept order must be deleted with it")
	}
	config.DB.Model(&models.OrderStatusHistory{}).Where("order_id = ?", old.ID).Count(&count)
	if count != 0 {
		t.Error("history of a swept order must be deleted with it")
	}
	config.DB.Model(&models.Order{}).Where("id = ?", fresh.ID).Count(&count)
	if count != 1 {
		t.Error("order younger than 30 days must be retained")
	}
}

func TestSweepRunsWhenReportLoads(t *testing.T) {
	r := setupTest(t)
	_, token := seedAdmin(t)
	old := seedOrder(t, 1, models.StatusPaid, 10000, time.Now().AddDate(0, 0, -40))

	w := doJSON(t, r, "GET", "/api/admin/sales", token, nil)
	requireStatus(t, w, http.StatusOK)

	var count int64
	config.DB.Model(&models.Order{}).Where("id = ?", old.ID).Count(&count)
	if count != 0 {
		t.Error("loading the sales report should sweep expired orders")
	}
}

func TestExportSalesCSV(t *testing.T) {
	r := setupTest(t)
	_, token := seedAdmin(t)

	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -2)
	order := seedOrder(t, 5, models.StatusPaid, 68000, day.Add(10*time.Hour))
	config.DB.Model(&order).Update("customer_name", "Budi")

	w := doJSON(t, r, "GET", "/api/admin/sales/export?date="+day.Format("2006-01-02"), token, nil)
	requireStatus(t, w, http.StatusOK)

	wantName := "laporan-penjualan-" + day.Format("2006-01-02") + ".csv"
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, wantName) {
		t.Errorf("Content-Disposition %q should name %q", cd, wantName)
	}

	body := w.Body.String()
	if !strings.HasPrefix(body, "\uFEFF") {
		t.Error("export must start with the UTF-8 BOM")
	}
	if !strings.Contains(body, "No,Meja,Nama Pelanggan,Total,Status,Waktu") {
		t.Error("export missing header row")
	}
	if !strings.Contains(body, "1,5,Budi,68000,PAID,") {
		t.Errorf("export missing order row, body:\n%s", body)
	}
	if !strings.Contains(body, "SUMMARY") {
		t.Error("export missing SUMMARY block")
	}
}

func TestExportSalesCSV_EmptyDay(t *testing.T) {
	r := setupTest(t)
	_, token := seedAdmin(t)

	w := doJSON(t, r, "GET", "/api/admin/sales/export?date=2020-01-01", token, nil)
	requireStatus(t, w, http.StatusNotFound)
}
