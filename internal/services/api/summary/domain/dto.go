// Package domain holds DTOs for the summary http and service contracts
package domain

import "time"

// WindowInput selects an inclusive range of days
type WindowInput struct {
	From string `query:"from" json:"from" validate:"required,datetime=2006-01-02" example:"2025-08-01"`
	To   string `query:"to" json:"to" validate:"required,datetime=2006-01-02" example:"2025-08-31"`
}

// Row is one day of the net download series
type Row struct {
	Day       string    `json:"day" example:"2025-08-01"`
	Delta     int64     `json:"delta" example:"42"`
	Method    string    `json:"method" example:"even" enums:"initial,observed,even,pattern"`
	DerivedAt time.Time `json:"derived_at" example:"2025-08-02T03:00:00Z"`
}

// MethodTotal aggregates the rows derived one way
type MethodTotal struct {
	Method string `json:"method" example:"observed"`
	Days   int64  `json:"days" example:"28"`
	Delta  int64  `json:"delta" example:"1170"`
}

// Totals sums a window; Missing counts days in the window with no row
type Totals struct {
	From     string        `json:"from" example:"2025-08-01"`
	To       string        `json:"to" example:"2025-08-31"`
	Days     int           `json:"days" example:"31"`
	Missing  int           `json:"missing" example:"0"`
	Delta    int64         `json:"delta" example:"1302"`
	ByMethod []MethodTotal `json:"by_method"`
}
