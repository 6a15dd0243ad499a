package statuscode

import (
	"errors"

	"salon-booking/logger"
	statusModel "salon-booking/models/statuscode"
	"salon-booking/types"
	catalogTypes "salon-booking/types/catalog"
	"salon-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles the status code display rows
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewStatusCodeController creates a new status code controller
func NewStatusCodeController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:     db,
		Logger: asyncLogger,
	}
}

// List returns all status code rows in display order
func (sc *Controller) List(c *fiber.Ctx) error {
	var codes []statusModel.StatusCode
	if err := sc.DB.Order("sort_order ASC").Find(&codes).Error; err != nil {
		logger.Error("Failed to list status codes", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status codes",
		Data:    codes,
	})
}

// Create adds a status code row (admin route)
func (sc *Controller) Create(c *fiber.Ctx) error {
	var req catalogTypes.StatusCodeRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	code := statusModel.StatusCode{
		Code:      req.Code,
		Label:     req.Label,
		Color:     req.Color,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}

	if err := sc.DB.Create(&code).Error; err != nil {
		logger.Error("Failed to create status code", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Status code already exists",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Status code created",
		Data:    code,
	})
}

// Update modifies a status code row (admin route)
func (sc *Controller) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid status code id")
	}

	var req catalogTypes.StatusCodeRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var code statusModel.StatusCode
	if err := sc.DB.First(&code, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Status code not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to load status code", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	code.Code = req.Code
	code.Label = req.Label
	code.Color = req.Color
	code.SortOrder = req.SortOrder
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}

	if err := sc.DB.Save(&code).Error; err != nil {
		logger.Error("Failed to update status code", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update status code",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status code updated",
		Data:    code,
	})
}

// Delete removes a status code row (admin route)
func (sc *Controller) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid status code id")
	}

	if err := sc.DB.Delete(&statusModel.StatusCode{}, id).Error; err != nil {
		logger.Error("Failed to delete status code", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete status code",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status code deleted",
		Data:    nil,
	})
}
