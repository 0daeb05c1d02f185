package model

import "time"

// Setting is a process-wide key/value configuration row.
// The labour rate (cents per hour) lives here as a singleton —
// current value only, no versioning.
type Setting struct {
	Key       string `gorm:"primaryKey;size:64"`
	IntValue  int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// SettingLabourRate is the key of the labour-rate singleton.
const SettingLabourRate = "labour_rate_cents_per_hour"
