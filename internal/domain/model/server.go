package model

import (
	"time"

	"github.com/google/uuid"
)

// ServerStatus describes the lifecycle of a provisioned server.
type ServerStatus string

const (
	ServerStatusActive    ServerStatus = "active"
	ServerStatusSuspended ServerStatus = "suspended"
	ServerStatusExpired   ServerStatus = "expired"
)

// Server is one externally provisioned compute instance. OrderItemID ties
// it to the line item it was provisioned for; at most one server exists
// per line item.
type Server struct {
	ID              int64
	UserID          int64
	ProductID       int64
	OrderItemID     int64
	PanelID         int64
	PanelIdentifier string
	ExternalRef     uuid.UUID
	Name            string
	Status          ServerStatus
	ExpiresAt       time.Time
	CreatedAt       time.Time
}
