package domain

import "strings"

// ShipmentStatus is the arrival state of a shipment.
type ShipmentStatus string

const (
	ShipmentShipping ShipmentStatus = "shipping"
	ShipmentArrived  ShipmentStatus = "arrived"
	ShipmentEarly    ShipmentStatus = "early"
	ShipmentDelayed  ShipmentStatus = "delayed"
)

var shipmentStatusLabels = map[ShipmentStatus]string{
	ShipmentShipping: "Shipping",
	ShipmentArrived:  "Arrived",
	ShipmentEarly:    "Arrived Early",
	ShipmentDelayed:  "Delayed",
}

// Label returns a human-readable label for the status.
func (s ShipmentStatus) Label() string {
	if label, ok := shipmentStatusLabels[s]; ok {
		return label
	}

	return "Unknown"
}

// HasArrived reports whether an arrival was confirmed, regardless of punctuality.
func (s ShipmentStatus) HasArrived() bool {
	return s == ShipmentArrived || s == ShipmentEarly || s == ShipmentDelayed
}

// ParseShipmentStatus returns the status for a given value (case-insensitive).
func ParseShipmentStatus(value string) (ShipmentStatus, bool) {
	status := ShipmentStatus(strings.ToLower(strings.TrimSpace(value)))
	_, ok := shipmentStatusLabels[status]

	return status, ok
}

// ParseCategory returns the category for a given value (case-insensitive).
func ParseCategory(value string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(value))) {
	case CategoryStandard:
		return CategoryStandard, true
	case CategoryOversized:
		return CategoryOversized, true
	}

	return "", false
}

// AlertLevel classifies the stockout risk of a SKU.
type AlertLevel string

const (
	AlertUrgent     AlertLevel = "urgent"
	AlertWarning    AlertLevel = "warning"
	AlertSufficient AlertLevel = "sufficient"
)

// Rank orders alert levels from most to least severe.
func (a AlertLevel) Rank() int {
	switch a {
	case AlertUrgent:
		return 0
	case AlertWarning:
		return 1
	default:
		return 2
	}
}
