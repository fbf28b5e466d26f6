package entities

import "time"

// MatchRecord is a diagnostics row written when a room starts. It is never
// read back into room state; rooms live and die in memory only.
type MatchRecord struct {
	ID        uint `gorm:"primarykey"`
	Code      string
	Players   string
	Seats     int
	StartedAt time.Time
}
