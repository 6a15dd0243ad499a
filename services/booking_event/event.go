package booking_event

import (
	bookingModel "salon-booking/models/booking"

	"gorm.io/gorm"
)

// RecordStatusEvent appends an audit row for a service line status change.
func RecordStatusEvent(tx *gorm.DB, lineID uint, from, to bookingModel.ServiceStatus, otpGated bool, createdBy string) error {
	ev := bookingModel.ServiceLineStatusEvent{
		ServiceLineID: lineID,
		FromStatus:    from,
		ToStatus:      to,
		OTPGated:      otpGated,
		CreatedBy:     createdBy,
	}

	return tx.Create(&ev).Error
}
