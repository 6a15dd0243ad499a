package catalog

import (
	"errors"

	"salon-booking/logger"
	categoryModel "salon-booking/models/category"
	"salon-booking/types"
	catalogTypes "salon-booking/types/catalog"
	"salon-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles service and category management
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:     db,
		Logger: asyncLogger,
	}
}

// ListCategories returns active categories ordered for display (public route)
func (cc *Controller) ListCategories(c *fiber.Ctx) error {
	var categories []categoryModel.Category
	if err := cc.DB.Where("is_active = true").Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list categories", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Categories",
		Data:    categories,
	})
}

// CreateCategory creates a new category (admin route)
func (cc *Controller) CreateCategory(c *fiber.Ctx) error {
	var req catalogTypes.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	actorUUID, _, _ := utils.ActorFromContext(c)

	category := categoryModel.Category{
		Name:      req.Name,
		Slug:      req.Slug,
		SortOrder: req.SortOrder,
		IsActive:  true,
		CreatedBy: actorUUID,
	}
	if req.Description != "" {
		category.Description = &req.Description
	}
	if req.ImageURL != "" {
		category.ImageURL = &req.ImageURL
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := cc.DB.Create(&category).Error; err != nil {
		logger.Error("Failed to create category", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Category with this name or slug already exists",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Category created",
		Data:    category,
	})
}

// UpdateCategory updates an existing category (admin route)
func (cc *Controller) UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid category id")
	}

	var req catalogTypes.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var category categoryModel.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Category not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to load category", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.SortOrder = req.SortOrder
	if req.Description != "" {
		category.Description = &req.Description
	}
	if req.ImageURL != "" {
		category.ImageURL = &req.ImageURL
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		logger.Error("Failed to update category", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update category",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Category updated",
		Data:    category,
	})
}

// DeleteCategory soft-deletes a category (admin route)
func (cc *Controller) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid category id")
	}

	if err := cc.DB.Delete(&categoryModel.Category{}, id).Error; err != nil {
		logger.Error("Failed to delete category", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete category",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Category deleted",
		Data:    nil,
	})
}
