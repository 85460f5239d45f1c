package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire format of an appointment date
const DateLayout = "2006-01-02"

var nameRegex = regexp.MustCompile(`^[\p{L} ]+$`)

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameInvalid  = errors.New("name must contain only letters and spaces")
	ErrDateRequired = errors.New("date is required")
	ErrDateFormat   = errors.New("date must be in YYYY-MM-DD format")
	ErrDateInPast   = errors.New("date cannot be in the past")
	ErrTimeRequired = errors.New("time is required")
)

// DefaultSlots is the fixed daily slot list offered by the salon
var DefaultSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

// ValidateName checks a customer name: non-empty after trimming, letters and spaces only
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if !nameRegex.MatchString(name) {
		return ErrNameInvalid
	}
	return nil
}

// ValidateDate checks that date parses as YYYY-MM-DD and is not before today.
// Only the calendar day of today is compared.
func ValidateDate(date string, today time.Time) error {
	if strings.TrimSpace(date) == "" {
		return ErrDateRequired
	}
	day, err := time.ParseInLocation(DateLayout, date, today.Location())
	if err != nil {
		return ErrDateFormat
	}
	y, m, d := today.Date()
	if day.Before(time.Date(y, m, d, 0, 0, 0, 0, today.Location())) {
		return ErrDateInPast
	}
	return nil
}

// ValidateSlot checks that slot is one of DefaultSlots
func ValidateSlot(slot string) error {
	if slot == "" {
		return ErrTimeRequired
	}
	for _, s := range DefaultSlots {
		if s == slot {
			return nil
		}
	}
	return fmt.Errorf("%q is not an available time slot", slot)
}

// AvailableSlots returns DefaultSlots minus the unavailable ones, in order
func AvailableSlots(unavailable []string) []string {
	taken := make(map[string]struct{}, len(unavailable))
	for _, u := range unavailable {
		taken[u] = struct{}{}
	}
	out := make([]string, 0, len(DefaultSlots))
	for _, s := range DefaultSlots {
		if _, ok := taken[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
