package plan

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"
)

//go:embed seed.json
var seedJSON []byte

// SamplePlans returns the bundled sample plans, validated and stamped
// with the current time. Their ids carry the local prefix, so pushing
// them always inlines the days.
func SamplePlans() ([]*Plan, error) {
	var raw []Plan
	if err := json.Unmarshal(seedJSON, &raw); err != nil {
		return nil, fmt.Errorf("parsing sample plans: %w", err)
	}

	plans := make([]*Plan, 0, len(raw))
	for i := range raw {
		p, err := New(raw[i].ID, raw[i].Title, raw[i].Days)
		if err != nil {
			return nil, fmt.Errorf("sample plan %q: %w", raw[i].ID, err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// Decode parses a plan document. A missing id gets a fresh local id;
// the created timestamp is always stamped at decode time.
func Decode(data []byte, now time.Time) (*Plan, error) {
	var raw Plan
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}

	id := raw.ID
	if id == "" {
		id = NewLocalID(now)
	}
	return New(id, raw.Title, raw.Days)
}
