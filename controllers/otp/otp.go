package otp

import (
	"errors"
	"fmt"

	"salon-booking/logger"
	bookingModel "salon-booking/models/booking"
	otpService "salon-booking/services/otp"
	"salon-booking/storage"
	"salon-booking/types"
	otpTypes "salon-booking/types/otp"
	"salon-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles OTP-related HTTP requests
type Controller struct {
	DB         *gorm.DB
	Logger     *logger.AsyncLogger
	OTPService *otpService.Service
}

// NewOTPController creates a new OTP controller
func NewOTPController(db *gorm.DB, asyncLogger *logger.AsyncLogger, otpSvc *otpService.Service) *Controller {
	return &Controller{
		DB:         db,
		Logger:     asyncLogger,
		OTPService: otpSvc,
	}
}

// IssueTransitionOTP dispatches a code gating a service line transition
func (oc *Controller) IssueTransitionOTP(c *fiber.Ctx) error {
	var req otpTypes.IssueOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	transition, ok := bookingModel.ParseTransitionType(req.TransitionType)
	if !ok {
		return utils.BadRequest(c, "Invalid transition type")
	}

	result, err := oc.OTPService.IssueOTP(c.Context(), req.ServiceLineID, transition)
	if err != nil {
		return issueErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP sent successfully",
		Data: otpTypes.IssueOTPResponse{
			Message:       "OTP sent to the customer's phone",
			ServiceLineID: result.ServiceLineID,
			CustomerName:  result.CustomerName,
			PhoneNumber:   utils.MaskPhone(result.PhoneNumber),
			ExpiresAt:     result.ExpiresAt.Format("2006-01-02 15:04:05"),
		},
	})
}

// VerifyTransitionOTP validates a submitted code and applies the gated transition
func (oc *Controller) VerifyTransitionOTP(c *fiber.Ctx) error {
	var req otpTypes.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	transition, ok := bookingModel.ParseTransitionType(req.TransitionType)
	if !ok {
		return utils.BadRequest(c, "Invalid transition type")
	}

	actor, ok := actorFromClaims(c)
	if !ok {
		return utils.Unauthorized(c, "")
	}

	result, err := oc.OTPService.VerifyOTP(c.Context(), req.ServiceLineID, transition, req.OTPCode, actor)
	if err != nil {
		return verifyErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP verified",
		Data: otpTypes.VerifyOTPResponse{
			Success:         true,
			NewStatus:       result.NewStatus.String(),
			StatusUpdatedAt: result.StatusUpdatedAt.Format("2006-01-02 15:04:05"),
		},
	})
}

// SendRegistrationOTP dispatches an account-registration code (public route)
func (oc *Controller) SendRegistrationOTP(c *fiber.Ctx) error {
	var req otpTypes.RegistrationOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	result, err := oc.OTPService.IssueRegistrationOTP(c.Context(), req.Phone)
	if err != nil {
		return issueErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OTP sent successfully",
		Data: otpTypes.IssueOTPResponse{
			Message:     "OTP sent to your phone number",
			PhoneNumber: utils.MaskPhone(result.PhoneNumber),
			ExpiresAt:   result.ExpiresAt.Format("2006-01-02 15:04:05"),
		},
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

// issueErrorResponse maps issuance failures onto distinct responses so the
// caller can decide whether to retry issuance or abort.
func issueErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Failed to send OTP"

	switch {
	case errors.Is(err, otpService.ErrBookingNotFound):
		status = fiber.StatusNotFound
		message = "Booking not found"
	case errors.Is(err, otpService.ErrMissingPhone):
		status = fiber.StatusBadRequest
		message = "Booking has no phone number"
	case errors.Is(err, otpService.ErrInvalidTransition):
		status = fiber.StatusBadRequest
		message = "Invalid transition type"
	case errors.Is(err, otpService.ErrIllegalTransition):
		status = fiber.StatusConflict
		message = "Transition not allowed from the current status"
	case errors.Is(err, otpService.ErrPersistence):
		message = "Failed to store OTP"
	case errors.Is(err, otpService.ErrGatewayDispatch):
		status = fiber.StatusBadGateway
		message = "Failed to deliver SMS"
	}

	logger.Error(fmt.Sprintf("OTP issuance failed: %s", message), err)

	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
		Data:    fiber.Map{"error": message, "details": err.Error()},
	})
}

// verifyErrorResponse maps verification failures onto distinct responses.
// Issuance and verification failures must never look alike to the caller.
func verifyErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	message := "OTP verification failed"

	switch {
	case errors.Is(err, otpService.ErrNoActiveOTP):
		status = fiber.StatusNotFound
		message = "No active OTP for this transition. Request a new code."
	case errors.Is(err, otpService.ErrOTPExpired):
		status = fiber.StatusGone
		message = "OTP has expired. Request a new code."
	case errors.Is(err, otpService.ErrOTPMismatch):
		message = "Incorrect OTP"
	case errors.Is(err, otpService.ErrOTPBlocked):
		status = fiber.StatusTooManyRequests
		message = "Too many failed attempts. Try again later."
	case errors.Is(err, otpService.ErrBookingNotFound):
		status = fiber.StatusNotFound
		message = "Booking not found"
	case errors.Is(err, otpService.ErrIllegalTransition):
		status = fiber.StatusConflict
		message = "Transition not allowed from the current status"
	case errors.Is(err, otpService.ErrInvalidTransition):
		message = "Invalid transition type"
	default:
		status = fiber.StatusInternalServerError
		message = "Internal server error"
	}

	logger.Error(fmt.Sprintf("OTP verification failed: %s", message), err)

	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
		Data: otpTypes.VerifyOTPResponse{
			Success: false,
			Error:   message,
		},
	})
}
