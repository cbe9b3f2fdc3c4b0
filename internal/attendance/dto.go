package attendance

import (
	"time"

	"github.com/workhub/leave-management/internal"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseTimestamp(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, internal.NewValidationFieldError(field, "must be a date (YYYY-MM-DD) or RFC3339 timestamp", internal.ErrCodeValidationFailed)
}

type ClockInDTO struct {
	Date    string `json:"date"`
	ClockIn string `json:"clock_in"`
}

func (d *ClockInDTO) Validate() error {
	if d.Date == "" || d.ClockIn == "" {
		return internal.NewValidationError("Missing required fields: date, clock_in", internal.ErrCodeMissingFields)
	}
	return nil
}

type ClockOutDTO struct {
	Date     string `json:"date"`
	ClockOut string `json:"clock_out"`
}

func (d *ClockOutDTO) Validate() error {
	if d.Date == "" || d.ClockOut == "" {
		return internal.NewValidationError("Missing required fields: date, clock_out", internal.ErrCodeMissingFields)
	}
	return nil
}
