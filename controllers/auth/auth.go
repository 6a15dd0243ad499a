package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"salon-booking/constants"
	"salon-booking/logger"
	userModel "salon-booking/models/user"
	otpService "salon-booking/services/otp"
	"salon-booking/types"
	authTypes "salon-booking/types/auth"
	"salon-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthController handles login and registration
type AuthController struct {
	DB         *gorm.DB
	Logger     *logger.AsyncLogger
	OTPService *otpService.Service
}

// NewAuthController creates a new auth controller
func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger, otpSvc *otpService.Service) *AuthController {
	return &AuthController{
		DB:         db,
		Logger:     asyncLogger,
		OTPService: otpSvc,
	}
}

// Login verifies phone + password and issues a signed token
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	phone := utils.NormalizePhone(req.Phone)

	var account userModel.User
	if err := ac.DB.Where("phone = ?", phone).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid phone or password")
		}
		logger.Error("Failed to look up user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	ok, err := utils.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil {
		logger.Error(fmt.Sprintf("Password check failed for user %d", account.ID), err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	if !ok {
		return utils.Unauthorized(c, "Invalid phone or password")
	}

	token, err := signToken(&account)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to issue token",
			Data:    nil,
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(24 * time.Hour),
	})

	logger.Success(fmt.Sprintf("User %s logged in", account.Uuid))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data: authTypes.LoginResponse{
			Token: token,
			UUID:  account.Uuid,
			Name:  account.Name,
			Role:  string(account.Role),
		},
	})
}

// Register creates a member account once the registration OTP checks out
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	phone := utils.NormalizePhone(req.Phone)

	if err := ac.OTPService.VerifyRegistrationOTP(c.Context(), phone, req.OTPCode); err != nil {
		status := fiber.StatusBadRequest
		message := "OTP verification failed"
		switch {
		case errors.Is(err, otpService.ErrNoActiveOTP):
			message = "No active OTP for this phone. Request a new code."
		case errors.Is(err, otpService.ErrOTPExpired):
			message = "OTP has expired. Request a new code."
		case errors.Is(err, otpService.ErrOTPMismatch):
			message = "Incorrect OTP"
		case errors.Is(err, otpService.ErrOTPBlocked):
			status = fiber.StatusTooManyRequests
			message = "Too many failed attempts. Try again later."
		default:
			status = fiber.StatusInternalServerError
			message = "Internal server error"
			logger.Error("Registration OTP verification failed", err)
		}
		return c.Status(status).JSON(types.ApiResponse{
			Status:  status,
			Message: message,
			Data:    nil,
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	account := userModel.User{
		Uuid:          uuid.NewString(),
		Name:          req.Name,
		Phone:         phone,
		PhoneVerified: true,
		Role:          userModel.RoleMember,
		PasswordHash:  hash,
		Permissions:   userModel.StringSlice{constants.PermMemberFull},
	}
	if req.Email != "" {
		account.Email = &req.Email
	}

	if err := ac.DB.Create(&account).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Account already exists for this phone or email",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("User registered: %s", account.Uuid))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Registration successful",
		Data: fiber.Map{
			"uuid": account.Uuid,
			"name": account.Name,
		},
	})
}

// Profile returns the authenticated user's account
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	actorUUID, _, ok := utils.ActorFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "")
	}

	var account userModel.User
	if err := ac.DB.Where("uuid = ?", actorUUID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "User not found")
		}
		logger.Error("Failed to load profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile",
		Data:    account,
	})
}

// Logout clears the access cookie
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access",
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out",
		Data:    nil,
	})
}

func signToken(account *userModel.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not configured")
	}

	permissions := account.Permissions
	if len(permissions) == 0 {
		if perm := constants.PermissionForRole(string(account.Role)); perm != "" {
			permissions = userModel.StringSlice{perm}
		}
	}

	claims := jwt.MapClaims{
		"uuid":        account.Uuid,
		"name":        account.Name,
		"user_id":     account.ID,
		"role":        string(account.Role),
		"permissions": []string(permissions),
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
