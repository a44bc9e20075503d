package entity

import "time"

// Session is the phone-number session a user operates under. Every draft and
// approval action belongs to exactly one session msisdn.
type Session struct {
	Msisdn    string
	CreatedAt time.Time
	LastSeen  time.Time
}
