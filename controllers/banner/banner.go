package banner

import (
	"errors"

	"salon-booking/logger"
	bannerModel "salon-booking/models/banner"
	"salon-booking/types"
	catalogTypes "salon-booking/types/catalog"
	"salon-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller handles banner image management
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewBannerController creates a new banner controller
func NewBannerController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:     db,
		Logger: asyncLogger,
	}
}

// List returns active banners in display order (public route)
func (bc *Controller) List(c *fiber.Ctx) error {
	var banners []bannerModel.Banner
	if err := bc.DB.Where("is_active = true").Order("sort_order ASC").Find(&banners).Error; err != nil {
		logger.Error("Failed to list banners", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Banners",
		Data:    banners,
	})
}

// Create adds a banner (admin route)
func (bc *Controller) Create(c *fiber.Ctx) error {
	var req catalogTypes.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	actorUUID, _, _ := utils.ActorFromContext(c)

	banner := bannerModel.Banner{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
		IsActive:  true,
		CreatedBy: actorUUID,
	}
	if req.LinkURL != "" {
		banner.LinkURL = &req.LinkURL
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := bc.DB.Create(&banner).Error; err != nil {
		logger.Error("Failed to create banner", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create banner",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Banner created",
		Data:    banner,
	})
}

// Update modifies a banner (admin route)
func (bc *Controller) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid banner id")
	}

	var req catalogTypes.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var banner bannerModel.Banner
	if err := bc.DB.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Banner not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to load banner", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	banner.Title = req.Title
	banner.ImageURL = req.ImageURL
	banner.SortOrder = req.SortOrder
	if req.LinkURL != "" {
		banner.LinkURL = &req.LinkURL
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := bc.DB.Save(&banner).Error; err != nil {
		logger.Error("Failed to update banner", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update banner",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Banner updated",
		Data:    banner,
	})
}

// Delete removes a banner (admin route)
func (bc *Controller) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid banner id")
	}

	if err := bc.DB.Delete(&bannerModel.Banner{}, id).Error; err != nil {
		logger.Error("Failed to delete banner", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete banner",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Banner deleted",
		Data:    nil,
	})
}
