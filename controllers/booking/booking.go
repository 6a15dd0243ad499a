package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"salon-booking/logger"
	addressModel "salon-booking/models/address"
	bookingModel "salon-booking/models/booking"
	serviceModel "salon-booking/models/service"
	userModel "salon-booking/models/user"
	bookingService "salon-booking/services/booking"
	"salon-booking/storage"
	"salon-booking/types"
	bookingTypes "salon-booking/types/booking"
	"salon-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB            *gorm.DB
	Logger        *logger.AsyncLogger
	StatusService *bookingService.StatusService
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger, statusSvc *bookingService.StatusService) *BookingController {
	return &BookingController{
		DB:            db,
		Logger:        asyncLogger,
		StatusService: statusSvc,
	}
}

// Store creates a new booking with its service lines
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	actorUUID, _, ok := utils.ActorFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "")
	}

	var account userModel.User
	if err := bc.DB.Where("uuid = ?", actorUUID).First(&account).Error; err != nil {
		logger.Error("Error finding user by UUID", err)
		return utils.Unauthorized(c, "User not found")
	}

	var booking bookingModel.Booking

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		booking = bookingModel.Booking{
			UserID:        account.ID,
			TrackingCode:  uuid.NewString(),
			CustomerName:  req.CustomerName,
			CustomerPhone: utils.NormalizePhone(req.CustomerPhone),
			BookingDate:   time.Now(),
			CreatedBy:     actorUUID,
		}
		if req.Notes != "" {
			booking.Notes = &req.Notes
		}

		// At-home bookings carry an address
		if req.StreetAddress != "" || req.City != "" {
			addr := addressModel.Address{}
			if req.City != "" {
				addr.City = &req.City
			}
			if req.Area != "" {
				addr.Area = &req.Area
			}
			if req.StreetAddress != "" {
				addr.StreetAddress = &req.StreetAddress
			}
			if req.Landmark != "" {
				addr.Landmark = &req.Landmark
			}
			if req.Pincode != "" {
				addr.Pincode = &req.Pincode
			}
			if err := tx.Create(&addr).Error; err != nil {
				logger.Error("Failed to create address", err)
				return err
			}
			booking.AddressID = &addr.ID
		}

		if err := tx.Create(&booking).Error; err != nil {
			logger.Error("Failed to create booking", err)
			return err
		}

		for _, lineReq := range req.ServiceLines {
			var svc serviceModel.Service
			if err := tx.First(&svc, lineReq.ServiceID).Error; err != nil {
				return fmt.Errorf("service %d not found: %w", lineReq.ServiceID, err)
			}

			scheduledAt, err := time.Parse(time.RFC3339, lineReq.ScheduledAt)
			if err != nil {
				return fmt.Errorf("invalid scheduled_at for service %d: %w", lineReq.ServiceID, err)
			}

			line := bookingModel.ServiceLine{
				BookingID:       booking.ID,
				ServiceID:       svc.ID,
				Price:           svc.EffectivePrice(),
				ScheduledAt:     scheduledAt,
				Status:          bookingModel.StatusPending,
				StatusUpdatedAt: time.Now(),
			}
			if err := tx.Create(&line).Error; err != nil {
				logger.Error("Failed to create service line", err)
				return err
			}
		}

		return nil
	})

	if err != nil {
		status := fiber.StatusInternalServerError
		message := "Failed to save booking"
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "invalid scheduled_at") {
			status = fiber.StatusBadRequest
			message = err.Error()
		}
		return c.Status(status).JSON(types.ApiResponse{
			Status:  status,
			Message: message,
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Booking created successfully with ID: %d", booking.ID))

	var created bookingModel.Booking
	if err := bc.DB.Preload("User").Preload("AddressInfo").Preload("ServiceLines").Preload("ServiceLines.Service").First(&created, booking.ID).Error; err != nil {
		logger.Error("Failed to load created booking data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Booking created but failed to retrieve complete data",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    created,
	})
}

// Track returns a booking by tracking code. Public route backing the
// customer tracking page, so the response hides internal attribution.
func (bc *BookingController) Track(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return utils.BadRequest(c, "Tracking code required")
	}

	var booking bookingModel.Booking
	err := bc.DB.Preload("ServiceLines").Preload("ServiceLines.Service").
		Where("tracking_code = ?", code).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find booking by tracking code", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	lines := make([]fiber.Map, 0, len(booking.ServiceLines))
	for _, line := range booking.ServiceLines {
		lines = append(lines, fiber.Map{
			"service":           line.Service.Name,
			"price":             line.Price,
			"scheduled_at":      line.ScheduledAt,
			"status":            line.Status,
			"status_updated_at": line.StatusUpdatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking",
		Data: fiber.Map{
			"tracking_code": booking.TrackingCode,
			"customer_name": booking.CustomerName,
			"booking_date":  booking.BookingDate,
			"service_lines": lines,
		},
	})
}

// List returns bookings scoped by role: members see their own, artists see
// lines assigned to them, staff see everything.
func (bc *BookingController) List(c *fiber.Ctx) error {
	actorUUID, role, ok := utils.ActorFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "")
	}

	query := bc.DB.Preload("User").Preload("ServiceLines").Preload("ServiceLines.Service").Order("created_at DESC")

	switch role {
	case "member":
		var account userModel.User
		if err := bc.DB.Where("uuid = ?", actorUUID).First(&account).Error; err != nil {
			return utils.Unauthorized(c, "User not found")
		}
		query = query.Where("user_id = ?", account.ID)
	case "artist":
		var account userModel.User
		if err := bc.DB.Where("uuid = ?", actorUUID).First(&account).Error; err != nil {
			return utils.Unauthorized(c, "User not found")
		}
		query = query.Where("id IN (?)",
			bc.DB.Model(&bookingModel.ServiceLine{}).Select("booking_id").Where("assigned_to = ?", account.ID))
	}

	var bookings []bookingModel.Booking
	if err := query.Find(&bookings).Error; err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings",
		Data:    bookings,
	})
}

// UpdateStatus applies a non-OTP status transition to a service line
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	var req bookingTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	actor, ok := actorFromClaims(c)
	if !ok {
		return utils.Unauthorized(c, "")
	}

	line, err := bc.StatusService.UpdateStatus(req.ServiceLineID, bookingModel.ServiceStatus(req.Status), actor)
	if err != nil {
		return statusErrorResponse(c, err)
	}

	logger.Success(fmt.Sprintf("Line %d moved to %s by %s", line.ID, line.Status, actor.UUID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status updated",
		Data: fiber.Map{
			"service_line_id":   line.ID,
			"status":            line.Status,
			"status_updated_at": line.StatusUpdatedAt,
		},
	})
}

// AssignArtist sets the artist on a service line with attribution
func (bc *BookingController) AssignArtist(c *fiber.Ctx) error {
	var req bookingTypes.AssignArtistRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	actorUUID, _, ok := utils.ActorFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "")
	}

	var artist userModel.User
	if err := bc.DB.Where("id = ? AND role = ?", req.ArtistID, userModel.RoleArtist).First(&artist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "Artist not found")
		}
		logger.Error("Failed to load artist", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	var line bookingModel.ServiceLine
	if err := bc.DB.First(&line, req.ServiceLineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Service line not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to load service line", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if line.Status.IsTerminal() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Cannot assign an artist to a finished service line",
			Data:    nil,
		})
	}

	now := time.Now()
	line.AssignedTo = &artist.ID
	line.AssignedBy = &actorUUID
	line.AssignedOn = &now

	if err := bc.DB.Save(&line).Error; err != nil {
		logger.Error("Failed to assign artist", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to assign artist",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Artist %d assigned to line %d by %s", artist.ID, line.ID, actorUUID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Artist assigned",
		Data:    line,
	})
}

func actorFromClaims(c *fiber.Ctx) (storage.Actor, bool) {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return storage.Actor{}, false
	}

	actor := storage.Actor{}
	actor.UUID, _ = claims["uuid"].(string)
	actor.Role, _ = claims["role"].(string)
	if id, ok := claims["user_id"].(float64); ok {
		actor.UserID = uint(id)
	}

	return actor, actor.UUID != ""
}

func statusErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Failed to update status"

	switch {
	case errors.Is(err, bookingService.ErrUnknownStatus):
		status = fiber.StatusBadRequest
		message = "Unknown status"
	case errors.Is(err, bookingService.ErrOTPRequired):
		status = fiber.StatusForbidden
		message = "This status requires OTP verification"
	case errors.Is(err, bookingService.ErrRoleNotAllowed):
		status = fiber.StatusForbidden
		message = "Your role may not set this status"
	case errors.Is(err, bookingService.ErrIllegalTransition):
		status = fiber.StatusConflict
		message = "Transition not allowed from the current status"
	case errors.Is(err, bookingService.ErrLineNotFound):
		status = fiber.StatusNotFound
		message = "Service line not found"
	}

	logger.Error(fmt.Sprintf("Status update failed: %s", message), err)

	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
		Data:    nil,
	})
}
