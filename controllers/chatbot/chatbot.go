package chatbot

import (
	"fmt"
	"os"
	"strings"

	"salon-booking/logger"
	categoryModel "salon-booking/models/category"
	serviceModel "salon-booking/models/service"
	"salon-booking/types"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

// Controller answers customer questions about services and bookings using the
// Gemini API.
type Controller struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewChatbotController creates a new chatbot controller
func NewChatbotController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *Controller {
	return &Controller{
		DB:     db,
		Logger: asyncLogger,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Ask handles a single customer question and returns the assistant's reply
func (cc *Controller) Ask(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Message is required",
			Data:    nil,
		})
	}
	if len(message) > 1000 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Message too long. Maximum length is 1000 characters",
			Data:    nil,
		})
	}

	reply, err := cc.generateReply(c, message)
	if err != nil {
		logger.Error("Failed to generate chatbot reply", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to generate reply",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Chatbot reply generated",
		Data:    fiber.Map{"reply": reply},
	})
}

// generateReply builds a catalog-aware prompt and asks Gemini for an answer
func (cc *Controller) generateReply(c *fiber.Ctx, message string) (string, error) {
	ctx := c.Context()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := fmt.Sprintf(`You are a helpful assistant for a salon and beauty services booking platform.
Answer the customer's question using the service catalog below. Keep answers short and friendly.
If a question is unrelated to salon services or bookings, politely say you can only help with those topics.

Service catalog:
%s

Customer question: %s`, cc.catalogSummary(), message)

	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.4)),
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	reply := result.Candidates[0].Content.Parts[0].Text
	if reply == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return strings.TrimSpace(reply), nil
}

// catalogSummary renders active categories and services as prompt context.
// Errors here degrade the prompt instead of failing the request.
func (cc *Controller) catalogSummary() string {
	var categories []categoryModel.Category
	if err := cc.DB.Where("is_active = ?", true).Order("sort_order asc").Find(&categories).Error; err != nil {
		logger.Warning("Failed to load categories for chatbot prompt")
		return "(catalog unavailable)"
	}

	var services []serviceModel.Service
	if err := cc.DB.Where("is_active = ?", true).Find(&services).Error; err != nil {
		logger.Warning("Failed to load services for chatbot prompt")
		return "(catalog unavailable)"
	}

	byCategory := make(map[uint][]serviceModel.Service)
	for _, svc := range services {
		byCategory[svc.CategoryID] = append(byCategory[svc.CategoryID], svc)
	}

	var sb strings.Builder
	for _, cat := range categories {
		fmt.Fprintf(&sb, "%s:\n", cat.Name)
		for _, svc := range byCategory[cat.ID] {
			fmt.Fprintf(&sb, "- %s: %.2f (%d minutes)\n", svc.Name, svc.EffectivePrice(), svc.DurationMinutes)
		}
	}
	if sb.Len() == 0 {
		return "(no services listed yet)"
	}
	return sb.String()
}
