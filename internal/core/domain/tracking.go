package domain

import "errors"

// Well-known status labels reported by the tracking store.
const (
	StatusOrderCreated = "Order Created"
	StatusShipped      = "Shipped"
	StatusInTransit    = "In Transit"
	// StatusArrivedAtHub is the terminal label; a package carrying it is delivered.
	StatusArrivedAtHub = "Arrived at Hub"
)

var ErrTrackingNotFound = errors.New("tracking number not found")
var ErrSavedPackageNotFound = errors.New("saved package not found")
var ErrForbidden = errors.New("access forbidden")

// TrackEvent is a single dated entry of a shipment's history.
type TrackEvent struct {
	Date     string `json:"date" bson:"date" yaml:"date"`
	Status   string `json:"status" bson:"status" yaml:"status"`
	Location string `json:"location" bson:"location" yaml:"location"`
}

// ParsedDate parses the event date with APIDateLayout.
func (e TrackEvent) ParsedDate() (Date, bool) {
	return ParseAPIDate(e.Date)
}

// TrackingInfo is the snapshot returned by one remote fetch of a tracking number.
type TrackingInfo struct {
	TrackingNumber string       `json:"tracking_number" bson:"tracking_number" yaml:"tracking_number"`
	Status         string       `json:"status" bson:"status" yaml:"status"`
	LastLocation   string       `json:"last_location" bson:"last_location" yaml:"last_location"`
	ETA            string       `json:"eta" bson:"eta" yaml:"eta"`
	History        []TrackEvent `json:"history" bson:"history" yaml:"history"`
}

// SavedPackage is a locally persisted bookmark of a tracking number.
type SavedPackage struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
	ETA            string `json:"eta"`
}
