package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Booking is a reservation of a listing by a user. Bookings never change after creation.
type Booking struct {
	ID        int      `json:"id"`
	ListingID int      `json:"listingId"`
	Listing   *Listing `json:"listing,omitempty"`
	User      int      `json:"user"`
	CheckIn   Date     `json:"checkIn"`
	CheckOut  Date     `json:"checkOut"`
	Guests    int      `json:"guests"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Price     float64  `json:"price"`
}

// DateLayout is the wire format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day. It decodes from "2006-01-02" or a full RFC 3339
// timestamp and always encodes as "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
