package domain

import "time"

// Section names of the daily schedule
const (
	SectionMorning   = "Morning"
	SectionAfternoon = "Afternoon"
	SectionEvening   = "Evening"
	SectionNight     = "Night"
)

// Booking window around a section's resolved start time
const (
	WindowOpensBefore = 4 * time.Hour
	WindowClosesAfter = 6 * time.Hour
)

// TokenValidity lifetime of an issued booking token
const TokenValidity = 6 * time.Hour

// DefaultAfternoonDescriptor applies when the location has no specific slot
const DefaultAfternoonDescriptor = "11:45 AM – 2:00 PM"

// NoMenuText shown for an item without a menu description
const NoMenuText = "No menu available"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone canteen local time zone
const DefaultTimezone = "Asia/Kolkata"
