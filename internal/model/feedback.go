package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	FeedbackMinRating = 1
	FeedbackMaxRating = 5
)

type Feedback struct {
	ID        string    `json:"_id"`
	UserEmail string    `json:"user_email"`
	BookingID string    `json:"booking_id,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt Timestamp `json:"created_at"`
}

// Timestamp принимает и RFC3339, и HTTP-формат времени, который отдаёт сервер
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, http.TimeFormat, time.RFC1123, "2006-01-02T15:04:05.999999"}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q", s)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339))
}
