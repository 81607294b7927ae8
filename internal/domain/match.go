package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchPending, MatchAccepted, MatchRejected:
		return true
	}
	return false
}

// CompatibilityDetails is the per-component breakdown of a compatibility score.
// Interests holds the bio-overlap contribution.
type CompatibilityDetails struct {
	Zodiac    int `json:"zodiac"`
	Interests int `json:"interests"`
}

// Value stores the breakdown as JSON text.
func (d CompatibilityDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads the breakdown from JSON text.
func (d *CompatibilityDetails) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = CompatibilityDetails{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), d)
	case []byte:
		return json.Unmarshal(v, d)
	default:
		return fmt.Errorf("compatibility details: unsupported type %T", src)
	}
}

type Match struct {
	ID                   int64                `json:"id"`
	Profile1ID           int64                `json:"profile1_id"`
	Profile2ID           int64                `json:"profile2_id"`
	Status               MatchStatus          `json:"status"`
	CompatibilityScore   int                  `json:"compatibility_score"`
	CompatibilityDetails CompatibilityDetails `json:"compatibility_details"`
	CreatedAt            time.Time            `json:"created_at"`
}

func (m *Match) HasProfile(profileID int64) bool {
	return m.Profile1ID == profileID || m.Profile2ID == profileID
}

func (m *Match) Counterpart(profileID int64) (int64, bool) {
	if m.Profile1ID == profileID {
		return m.Profile2ID, true
	}
	if m.Profile2ID == profileID {
		return m.Profile1ID, true
	}
	return 0, false
}

// MatchView is a match seen from one participant: the counterpart's profile
// plus whether the two bios overlap.
type MatchView struct {
	Match
	Counterpart Profile `json:"counterpart"`
	IsBioMatch  bool    `json:"is_bio_match"`
}
