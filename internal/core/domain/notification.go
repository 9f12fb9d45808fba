package domain

import "fmt"

// NotificationKind distinguishes the alerts raised for a tracking number.
type NotificationKind string

const (
	NotificationStatusChanged NotificationKind = "status_changed"
	NotificationDelivered     NotificationKind = "delivered"
)

// Notification is a user-facing alert about a tracked package.
type Notification struct {
	Kind           NotificationKind `json:"kind"`
	TrackingNumber string           `json:"tracking_number"`
	Status         string           `json:"status"`
	Title          string           `json:"title"`
	Body           string           `json:"body"`
}

// StatusChangedNotification announces that trackingNumber moved to status.
func StatusChangedNotification(trackingNumber, status string) Notification {
	return Notification{
		Kind:           NotificationStatusChanged,
		TrackingNumber: trackingNumber,
		Status:         status,
		Title:          "Package Update",
		Body:           fmt.Sprintf("Your package %s is now %s", trackingNumber, status),
	}
}

// DeliveredNotification announces that trackingNumber reached the terminal status.
func DeliveredNotification(trackingNumber string) Notification {
	return Notification{
		Kind:           NotificationDelivered,
		TrackingNumber: trackingNumber,
		Status:         StatusArrivedAtHub,
		Title:          "Delivered 🎉",
		Body:           fmt.Sprintf("Your package %s has been delivered", trackingNumber),
	}
}
