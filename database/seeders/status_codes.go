package seeders

import (
	"log"

	"salon-booking/models/statuscode"

	"gorm.io/gorm"
)

func SeedStatusCodes(db *gorm.DB) {
	log.Printf("🔍 Checking status codes data integrity...")

	codes := []statuscode.StatusCode{
		{Code: "pending", Label: "Pending", Color: "#9E9E9E", SortOrder: 1, IsActive: true},
		{Code: "confirm", Label: "Confirmed", Color: "#2196F3", SortOrder: 2, IsActive: true},
		{Code: "on_the_way", Label: "On The Way", Color: "#FF9800", SortOrder: 3, IsActive: true},
		{Code: "service_started", Label: "Service Started", Color: "#9C27B0", SortOrder: 4, IsActive: true},
		{Code: "done", Label: "Completed", Color: "#4CAF50", SortOrder: 5, IsActive: true},
		{Code: "cancelled", Label: "Cancelled", Color: "#F44336", SortOrder: 6, IsActive: true},
	}

	// Get all existing codes from database
	var existingCodes []string
	if err := db.Model(&statuscode.StatusCode{}).Pluck("code", &existingCodes).Error; err != nil {
		log.Printf("❌ Failed to fetch existing status codes: %v", err)
		return
	}

	existingCodesMap := make(map[string]bool)
	for _, code := range existingCodes {
		existingCodesMap[code] = true
	}

	// Find missing status codes
	var missing []statuscode.StatusCode
	for _, sc := range codes {
		if !existingCodesMap[sc.Code] {
			missing = append(missing, sc)
		}
	}

	if len(missing) == 0 {
		log.Printf("✅ All status codes are already present. No seeding needed.")
		return
	}

	log.Printf("🌱 Seeding %d missing status codes...", len(missing))

	successCount := 0
	failureCount := 0

	for _, sc := range missing {
		if err := db.Create(&sc).Error; err != nil {
			log.Printf("❌ Failed to seed status code %s: %v", sc.Code, err)
			failureCount++
		} else {
			log.Printf("✅ Added: %s (%s)", sc.Label, sc.Code)
			successCount++
		}
	}

	log.Printf("🎉 Seeding completed! Successfully inserted %d status codes, %d failures", successCount, failureCount)
}
