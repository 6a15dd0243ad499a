package catalog

import (
	"errors"

	"salon-booking/logger"
	serviceModel "salon-booking/models/service"
	"salon-booking/types"
	catalogTypes "salon-booking/types/catalog"
	"salon-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListServices returns active services, optionally filtered by category
// (public route backing the browse page)
func (cc *Controller) ListServices(c *fiber.Ctx) error {
	query := cc.DB.Preload("Category").Where("is_active = true").Order("name ASC")

	if categoryID := c.QueryInt("category_id"); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var services []serviceModel.Service
	if err := query.Find(&services).Error; err != nil {
		logger.Error("Failed to list services", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Services",
		Data:    services,
	})
}

// GetService returns one service by id (public route)
func (cc *Controller) GetService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid service id")
	}

	var svc serviceModel.Service
	if err := cc.DB.Preload("Category").First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Service not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to load service", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Service",
		Data:    svc,
	})
}

// CreateService creates a new salon service (admin route)
func (cc *Controller) CreateService(c *fiber.Ctx) error {
	var req catalogTypes.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	actorUUID, _, _ := utils.ActorFromContext(c)

	svc := serviceModel.Service{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Price:           req.Price,
		DiscountPrice:   req.DiscountPrice,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
		CreatedBy:       actorUUID,
	}
	if req.Description != "" {
		svc.Description = &req.Description
	}
	if req.ImageURL != "" {
		svc.ImageURL = &req.ImageURL
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := cc.DB.Create(&svc).Error; err != nil {
		logger.Error("Failed to create service", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create service",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Service created",
		Data:    svc,
	})
}

// UpdateService updates an existing service (admin route)
func (cc *Controller) UpdateService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid service id")
	}

	var req catalogTypes.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	actorUUID, _, _ := utils.ActorFromContext(c)

	var svc serviceModel.Service
	if err := cc.DB.First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Service not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to load service", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	svc.CategoryID = req.CategoryID
	svc.Name = req.Name
	svc.Price = req.Price
	svc.DiscountPrice = req.DiscountPrice
	svc.DurationMinutes = req.DurationMinutes
	svc.UpdatedBy = actorUUID
	if req.Description != "" {
		svc.Description = &req.Description
	}
	if req.ImageURL != "" {
		svc.ImageURL = &req.ImageURL
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := cc.DB.Save(&svc).Error; err != nil {
		logger.Error("Failed to update service", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update service",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Service updated",
		Data:    svc,
	})
}

// DeleteService deletes a service (admin route)
func (cc *Controller) DeleteService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid service id")
	}

	if err := cc.DB.Delete(&serviceModel.Service{}, id).Error; err != nil {
		logger.Error("Failed to delete service", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete service",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Service deleted",
		Data:    nil,
	})
}
