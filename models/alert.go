package models

import (
	"fmt"
	"time"
)

type AlertType string

const (
	AlertTypeServiceDue AlertType = "service_due"
)

type Alert struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	VehicleID string    `json:"vehicle_id" gorm:"not null;size:191"`
	Type      AlertType `json:"type" gorm:"not null;size:50"`
	Message   string    `json:"message" gorm:"not null;size:500"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AlertStats struct {
	UnreadCount int `json:"unread_count"`
	TotalCount  int `json:"total_count"`
}

type PaginatedAlerts struct {
	Alerts     []Alert `json:"alerts"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int64   `json:"total"`
	HasMore    bool    `json:"has_more"`
	TotalPages int     `json:"total_pages"`
}

// ServiceDueMessage builds the alert text for a vehicle close to or past its
// service interval.
func ServiceDueMessage(vehicleName string, dueIn float64) string {
	if dueIn <= 0 {
		return fmt.Sprintf("%s is overdue for service by %.0f miles", vehicleName, -dueIn)
	}
	return fmt.Sprintf("%s is due for service in %.0f miles", vehicleName, dueIn)
}
