package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultCarparkName is used when a session is logged without a name.
	DefaultCarparkName = "Unknown Carpark"
	// DefaultAgency is the fallback operating agency for logged sessions.
	DefaultAgency = "HDB"
)

type (
	// SpendRecord is one completed parking session. Records are immutable
	// once written; the only mutation the ledger supports is whole-record
	// deletion.
	SpendRecord struct {
		ID            string  `json:"id"`
		CarparkName   string  `json:"carparkName"`
		CarparkID     string  `json:"carparkId,omitempty"`
		Agency        string  `json:"agency"`
		Cost          float64 `json:"cost"`
		DurationHours float64 `json:"durationHours"`
		ParkedAt      int64   `json:"parkedAt"`
		EndedAt       int64   `json:"endedAt"`
		Lat           float64 `json:"lat,omitempty"`
		Lng           float64 `json:"lng,omitempty"`
	}

	// CandidateCarpark is an already-ranked carpark supplied by the
	// external optimizer. The core borrows it read-only for the duration
	// of one advisory evaluation.
	CandidateCarpark struct {
		ID                  string  `json:"id"`
		Name                string  `json:"name"`
		Agency              string  `json:"agency"`
		IsEarlyBirdEligible bool    `json:"isEarlyBirdEligible"`
		IsFreeSchemeMember  bool    `json:"isFreeSchemeMember"`
		DayRate             float64 `json:"dayRate"`
		NightCapRate        float64 `json:"nightCapRate"`
	}

	// WeeklyBucket is one trailing 7-day spend window. Derived, never persisted.
	WeeklyBucket struct {
		Label string  `json:"weekLabel"`
		Total float64 `json:"total"`
	}

	// CarparkSpend is the per-carpark aggregate returned by TopCarparks.
	CarparkSpend struct {
		CarparkName string  `json:"carparkName"`
		Agency      string  `json:"agency"`
		TotalCost   float64 `json:"totalCost"`
		Visits      int     `json:"visits"`
	}
)

var (
	ErrInvalidCost     = errors.New("cost must not be negative")
	ErrInvalidDuration = errors.New("duration must not be negative")
	ErrInvalidParkedAt = errors.New("parkedAt must be a positive timestamp")
)

// NewSpendRecord builds a normalized record from raw session data:
// defaults applied, cost rounded to 2 decimals, duration to 1, and the
// id derived from parkedAt. Two sessions starting in the same
// millisecond collide on id and the later write overwrites the earlier
// one; accepted limitation.
func NewSpendRecord(name, carparkID, agency string, cost, durationHours float64, parkedAt, endedAt int64) SpendRecord {
	if strings.TrimSpace(name) == "" {
		name = DefaultCarparkName
	}
	if strings.TrimSpace(agency) == "" {
		agency = DefaultAgency
	}
	return SpendRecord{
		ID:            SpendID(parkedAt),
		CarparkName:   name,
		CarparkID:     carparkID,
		Agency:        agency,
		Cost:          Round2(cost),
		DurationHours: Round1(durationHours),
		ParkedAt:      parkedAt,
		EndedAt:       endedAt,
	}
}

// SpendID derives the record id from the session start timestamp.
func SpendID(parkedAtMs int64) string {
	return fmt.Sprintf("spend_%d", parkedAtMs)
}

func (r SpendRecord) Validate() error {
	if r.Cost < 0 {
		return ErrInvalidCost
	}
	if r.DurationHours < 0 {
		return ErrInvalidDuration
	}
	if r.ParkedAt <= 0 {
		return ErrInvalidParkedAt
	}
	return nil
}
