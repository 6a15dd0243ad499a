package seeders

import (
	"log"

	"salon-booking/models/category"

	"gorm.io/gorm"
)

func SeedCategories(db *gorm.DB) {
	log.Printf("🔍 Checking service categories data integrity...")

	categories := []category.Category{
		{Name: "Hair", Slug: "hair", SortOrder: 1, IsActive: true},
		{Name: "Skin Care", Slug: "skin-care", SortOrder: 2, IsActive: true},
		{Name: "Nails", Slug: "nails", SortOrder: 3, IsActive: true},
		{Name: "Makeup", Slug: "makeup", SortOrder: 4, IsActive: true},
		{Name: "Spa & Massage", Slug: "spa-massage", SortOrder: 5, IsActive: true},
		{Name: "Bridal", Slug: "bridal", SortOrder: 6, IsActive: true},
		{Name: "Mehendi", Slug: "mehendi", SortOrder: 7, IsActive: true},
	}

	var existingSlugs []string
	if err := db.Model(&category.Category{}).Pluck("slug", &existingSlugs).Error; err != nil {
		log.Printf("❌ Failed to fetch existing category slugs: %v", err)
		return
	}

	existingSlugsMap := make(map[string]bool)
	for _, slug := range existingSlugs {
		existingSlugsMap[slug] = true
	}

	var missing []category.Category
	for _, cat := range categories {
		if !existingSlugsMap[cat.Slug] {
			missing = append(missing, cat)
		}
	}

	if len(missing) == 0 {
		log.Printf("✅ All service categories are already present. No seeding needed.")
		return
	}

	log.Printf("🌱 Seeding %d missing service categories...", len(missing))

	successCount := 0
	failureCount := 0

	for _, cat := range missing {
		if err := db.Create(&cat).Error; err != nil {
			log.Printf("❌ Failed to seed category %s: %v", cat.Slug, err)
			failureCount++
		} else {
			log.Printf("✅ Added: %s (%s)", cat.Name, cat.Slug)
			successCount++
		}
	}

	log.Printf("🎉 Seeding completed! Successfully inserted %d categories, %d failures", successCount, failureCount)
}
