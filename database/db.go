package database

import (
	"fmt"
	"os"

	"salon-booking/database/seeders"
	"salon-booking/logger"
	"salon-booking/models/address"
	"salon-booking/models/banner"
	"salon-booking/models/booking"
	"salon-booking/models/category"
	"salon-booking/models/log"
	"salon-booking/models/otp"
	"salon-booking/models/service"
	"salon-booking/models/statuscode"
	"salon-booking/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Handle foreign key constraints after migrations
	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	// Seed reference data
	seeders.SeedStatusCodes(DB)
	seeders.SeedCategories(DB)

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
		&address.Address{},
		&category.Category{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Catalog models with dependencies on Stage 1
	stage2Models := []interface{}{
		&service.Service{},
		&banner.Banner{},
		&statuscode.StatusCode{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Booking models
	stage3Models := []interface{}{
		&booking.Booking{},
		&booking.ServiceLine{},
	}

	for _, model := range stage3Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 4: OTP, event and logging models
	remainingModels := []interface{}{
		&otp.OTP{},
		&otp.OTPEvent{},
		&booking.ServiceLineStatusEvent{},
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// User indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(uuid)").Error; err != nil {
		return fmt.Errorf("failed to create user uuid index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_phone ON users(phone)").Error; err != nil {
		return fmt.Errorf("failed to create user phone index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)").Error; err != nil {
		return fmt.Errorf("failed to create user role index: %w", err)
	}

	// Booking indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_tracking_code ON bookings(tracking_code)").Error; err != nil {
		return fmt.Errorf("failed to create booking tracking_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create booking user_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create booking created_at index: %w", err)
	}

	// Service line indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_service_lines_status ON booking_service_lines(status)").Error; err != nil {
		return fmt.Errorf("failed to create service line status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_service_lines_assigned_to ON booking_service_lines(assigned_to)").Error; err != nil {
		return fmt.Errorf("failed to create service line assigned_to index: %w", err)
	}

	// OTP indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_otps_line_transition ON otps(service_line_id, transition_type)").Error; err != nil {
		return fmt.Errorf("failed to create otp line transition index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_otps_phone ON otps(phone)").Error; err != nil {
		return fmt.Errorf("failed to create otp phone index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_otps_expires_at ON otps(expires_at)").Error; err != nil {
		return fmt.Errorf("failed to create otp expires_at index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	// Define constraints with their names for checking existence
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_bookings_address",
			sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_address
				  FOREIGN KEY (address_id) REFERENCES addresses(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_service_lines_booking",
			sql: `ALTER TABLE booking_service_lines ADD CONSTRAINT fk_service_lines_booking
				  FOREIGN KEY (booking_id) REFERENCES bookings(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_service_lines_service",
			sql: `ALTER TABLE booking_service_lines ADD CONSTRAINT fk_service_lines_service
				  FOREIGN KEY (service_id) REFERENCES services(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_services_category",
			sql: `ALTER TABLE services ADD CONSTRAINT fk_services_category
				  FOREIGN KEY (category_id) REFERENCES categories(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
