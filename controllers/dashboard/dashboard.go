package dashboard

import (
	"time"

	"salon-booking/logger"
	bookingModel "salon-booking/models/booking"
	"salon-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Controller serves booking aggregates for the role dashboards
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:     db,
		Logger: asyncLogger,
	}
}

type periodStats struct {
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// Summary returns booking counts and revenue for today, this week and this
// month, plus a per-status breakdown of service lines.
func (dc *Controller) Summary(c *fiber.Ctx) error {
	currentTime := time.Now()

	today, err := dc.statsSince(now.With(currentTime).BeginningOfDay())
	if err != nil {
		logger.Error("Failed to compute daily stats", err)
		return dc.internalError(c)
	}

	week, err := dc.statsSince(now.With(currentTime).BeginningOfWeek())
	if err != nil {
		logger.Error("Failed to compute weekly stats", err)
		return dc.internalError(c)
	}

	month, err := dc.statsSince(now.With(currentTime).BeginningOfMonth())
	if err != nil {
		logger.Error("Failed to compute monthly stats", err)
		return dc.internalError(c)
	}

	type statusCount struct {
		Status bookingModel.ServiceStatus `json:"status"`
		Count  int64                      `json:"count"`
	}
	var byStatus []statusCount
	if err := dc.DB.Model(&bookingModel.ServiceLine{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		logger.Error("Failed to compute status breakdown", err)
		return dc.internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard summary",
		Data: fiber.Map{
			"today":      today,
			"this_week":  week,
			"this_month": month,
			"by_status":  byStatus,
		},
	})
}

func (dc *Controller) statsSince(since time.Time) (*periodStats, error) {
	stats := &periodStats{}

	if err := dc.DB.Model(&bookingModel.Booking{}).
		Where("created_at >= ?", since).
		Count(&stats.Bookings).Error; err != nil {
		return nil, err
	}

	// Revenue counts completed service lines only
	row := dc.DB.Model(&bookingModel.ServiceLine{}).
		Select("COALESCE(SUM(price), 0)").
		Where("status = ? AND status_updated_at >= ?", bookingModel.StatusDone, since).
		Row()
	if err := row.Scan(&stats.Revenue); err != nil {
		return nil, err
	}

	return stats, nil
}

func (dc *Controller) internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Internal server error",
		Data:    nil,
	})
}
