package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gqcars/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationDriverAssigned   NotificationType = "DRIVER_ASSIGNED"
	NotificationBookingCompleted NotificationType = "BOOKING_COMPLETED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationPaymentSuccess   NotificationType = "PAYMENT_SUCCESS"
	NotificationPaymentFailed    NotificationType = "PAYMENT_FAILED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type      NotificationType
	Title     string
	Message   string
	Data      map[string]interface{}
	CreatedAt time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - SMS client (Twilio)
	// - Email client (SendGrid)
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBookingConfirmed notifies the passenger that their booking is confirmed.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	notification := Notification{
		Type:    NotificationBookingConfirmed,
		Title:   "Booking Confirmed",
		Message: fmt.Sprintf("Your %s booking has been confirmed", booking.ServiceType),
		Data: map[string]interface{}{
			"booking_id":   booking.ID,
			"service_type": booking.ServiceType,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyDriverAssigned notifies the passenger that a driver has been assigned.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, booking *domain.Booking) error {
	driverName := "your driver"
	data := map[string]interface{}{
		"booking_id": booking.ID,
	}
	if booking.Driver != nil {
		driverName = booking.Driver.Name
		data["driver_id"] = booking.Driver.ID
		data["driver_name"] = booking.Driver.Name
	}

	notification := Notification{
		Type:      NotificationDriverAssigned,
		Title:     "Driver Assigned",
		Message:   fmt.Sprintf("%s has been assigned to your booking", driverName),
		Data:      data,
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyBookingCompleted notifies the passenger that their trip is complete.
func (s *NotificationService) NotifyBookingCompleted(ctx context.Context, booking *domain.Booking) error {
	message := "Your trip is complete. Thank you for riding with GQCars!"
	data := map[string]interface{}{
		"booking_id": booking.ID,
	}
	if booking.PriceEstimate != nil {
		message = fmt.Sprintf("Your trip is complete. Total fare: £%.2f", booking.PriceEstimate.Total)
		data["total"] = booking.PriceEstimate.Total
	}

	notification := Notification{
		Type:      NotificationBookingCompleted,
		Title:     "Trip Completed",
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyBookingCancelled notifies the passenger about a cancellation.
func (s *NotificationService) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking, reason string) error {
	notification := Notification{
		Type:    NotificationBookingCancelled,
		Title:   "Booking Cancelled",
		Message: "Your booking has been cancelled",
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"reason":     reason,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPaymentSuccess notifies the passenger of a successful charge.
func (s *NotificationService) NotifyPaymentSuccess(ctx context.Context, auth *domain.Authorization) error {
	notification := Notification{
		Type:    NotificationPaymentSuccess,
		Title:   "Payment Successful",
		Message: fmt.Sprintf("Payment of £%.2f was successful", float64(auth.AmountMinorUnits)/100),
		Data: map[string]interface{}{
			"authorization_id": auth.ID,
			"transaction_id":   auth.TransactionID,
			"amount":           auth.AmountMinorUnits,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPaymentFailed notifies the passenger of a declined charge.
func (s *NotificationService) NotifyPaymentFailed(ctx context.Context, amountMinorUnits int64) error {
	notification := Notification{
		Type:    NotificationPaymentFailed,
		Title:   "Payment Failed",
		Message: fmt.Sprintf("Payment of £%.2f failed. Please try another payment method.", float64(amountMinorUnits)/100),
		Data: map[string]interface{}{
			"amount": amountMinorUnits,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	// In a real implementation, this would:
	// 1. Store notification in database
	// 2. Send push notification via FCM/APNS
	// 3. Broadcast via WebSocket for real-time updates

	log.Printf("[NOTIFICATION] Type=%s, Title=%s, Message=%s",
		notification.Type, notification.Title, notification.Message)

	return nil
}
