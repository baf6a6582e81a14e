package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"cafe-order-api/config"
	"cafe-order-api/export"
	"cafe-order-api/models"
	"cafe-order-api/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// dayBounds returns the inclusive [00:00:00.000, 23:59:59.999] range of the
// given local calendar day.
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

func loadSalesReport(date time.Time) (export.Report, error) {
	start, end := dayBounds(date)

	var orders []models.Order
	err := config.DB.
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return export.Report{}, err
	}

	return export.Report{
		Date:    date,
		Orders:  orders,
		Summary: export.Summarize(orders),
	}, nil
}

func parseReportDate(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now(), true
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

// GetSalesReport returns one calendar day of orders with per-status
// aggregates. Loading the report also runs the retention sweep, so old data
// gets cleaned up whenever staff look at sales.
func GetSalesReport(c *gin.Context) {
	date, ok := parseReportDate(c)
	if !ok {
		return
	}

	SweepExpiredOrders(time.Now())

	report, err := loadSalesReport(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sales data"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportSalesCSV streams the day's report as a CSV attachment
func ExportSalesCSV(c *gin.Context) {
	date, ok := parseReportDate(c)
	if !ok {
		return
	}

	report, err := loadSalesReport(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sales data"})
		return
	}
	if len(report.Orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No data to export for this date"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(date)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.BuildCSV(report))
}

// SweepExpiredOrders deletes orders (and their items, via ownership) older
// than the retention window. Runs opportunistically; failures are logged and
// never surfaced.
func SweepExpiredOrders(now time.Time) {
	cutoff := now.AddDate(0, 0, -config.App.Retention.MaxAgeDays)

	var expired []models.Order
	if err := config.DB.Where("created_at < ?", cutoff).Find(&expired).Error; err != nil {
		slog.Error("retention sweep: listing expired orders failed", "error", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	ids := make([]uint, 0, len(expired))
	for _, o := range expired {
		ids = append(ids, o.ID)
	}

	// One transaction: an order must never outlive its items and history,
	// or vice versa.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id IN ?", ids).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id IN ?", ids).Delete(&models.OrderStatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, ids).Error
	})
	if err != nil {
		slog.Error("retention sweep: deleting expired orders failed", "error", err)
		return
	}

	for _, o := range expired {
		realtime.Default.Emit(realtime.Event{
			Table:       realtime.TableOrders,
			Type:        realtime.EventDelete,
			OrderID:     o.ID,
			TableNumber: o.TableNumber,
		})
	}

	slog.Info("retention sweep: removed expired orders", "count", len(ids), "cutoff", cutoff)
}
