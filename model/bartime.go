package model

import (
	"encoding/json"
	"time"
)

const DateLayout = "2006-01-02"

// BarTime is the time coordinate of a bar or indicator point. Intraday series
// are encoded as Unix seconds, daily and coarser series as calendar dates in
// the exchange timezone.
type BarTime struct {
	At       time.Time
	Intraday bool
}

func NewBarTime(at time.Time, intraday bool) BarTime {
	return BarTime{At: at, Intraday: intraday}
}

func (t BarTime) MarshalJSON() ([]byte, error) {
	if t.Intraday {
		return json.Marshal(t.At.Unix())
	}
	return json.Marshal(t.At.Format(DateLayout))
}

func (t *BarTime) UnmarshalJSON(data []byte) error {
	var epoch int64
	if err := json.Unmarshal(data, &epoch); err == nil {
		t.At = time.Unix(epoch, 0).UTC()
		t.Intraday = true
		return nil
	}

	var date string
	if err := json.Unmarshal(data, &date); err != nil {
		return err
	}
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return err
	}
	t.At = parsed
	t.Intraday = false
	return nil
}

func (t BarTime) String() string {
	if t.Intraday {
		return t.At.UTC().Format(time.RFC3339)
	}
	return t.At.Format(DateLayout)
}
