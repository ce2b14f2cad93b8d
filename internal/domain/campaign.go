package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// represents an outbound outreach effort and its engagement counters
type Campaign struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Channel    string            `json:"channel" yaml:"channel"`
	Status     CampaignStatus    `json:"status,omitempty" yaml:"status"`
	Sent       int               `json:"sent" yaml:"sent"`
	Opens      int               `json:"opens" yaml:"opens"`
	Clicks     int               `json:"clicks" yaml:"clicks"`
	Responses  int               `json:"responses" yaml:"responses"`
	Timeseries []TimeseriesPoint `json:"timeseries,omitempty" yaml:"timeseries"`
	CreatedAt  time.Time         `json:"createdAt,omitempty" yaml:"created_at"`
}

// HasTimeseries is true when per-day counters are present.
func (c Campaign) HasTimeseries() bool {
	return len(c.Timeseries) > 0
}

// one day of campaign counters
type TimeseriesPoint struct {
	Date      DateValue `json:"date" yaml:"date"`
	Sent      int       `json:"sent" yaml:"sent"`
	Opens     int       `json:"opens" yaml:"opens"`
	Clicks    int       `json:"clicks" yaml:"clicks"`
	Responses int       `json:"responses" yaml:"responses"`
}

// DateValue is a timeseries date as it arrived on the wire. The API may send either
// a date string or a number of Unix milliseconds; the raw text is kept so that
// malformed values can be reported verbatim.
type DateValue struct {
	Raw    string
	Millis *int64
}

// DateString builds a DateValue from a string.
func DateString(s string) DateValue {
	return DateValue{Raw: s}
}

// DateMillis builds a DateValue from Unix milliseconds.
func DateMillis(ms int64) DateValue {
	return DateValue{Raw: strconv.FormatInt(ms, 10), Millis: &ms}
}

func (d *DateValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = DateValue{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DateString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("timeseries date must be a string or a number: %w", err)
	}
	ms, err := n.Int64()
	if err != nil {
		// keep it; normalization will reject it
		*d = DateValue{Raw: n.String()}
		return nil
	}
	*d = DateMillis(ms)
	return nil
}

func (d DateValue) MarshalJSON() ([]byte, error) {
	if d.Millis != nil {
		return []byte(strconv.FormatInt(*d.Millis, 10)), nil
	}
	return json.Marshal(d.Raw)
}

func (d *DateValue) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*d = DateString(s)
	return nil
}

func (d DateValue) String() string {
	return d.Raw
}
