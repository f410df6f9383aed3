package entity

import "time"

// WorkLog tramo de trabajo de un técnico sobre una orden. EndTime nil = abierto.
type WorkLog struct {
	ID              string
	OrderID         string
	TechnicianID    string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
}

func (w *WorkLog) IsOpen() bool { return w.EndTime == nil }
