package advisory

import "parksmart/internal/core"

// Type tags the closed set of recommendation signals.
type Type string

const (
	TypeFreeDay     Type = "FREE_DAY"
	TypeEveningSoon Type = "EVENING_SOON"
	TypeNightActive Type = "NIGHT_ACTIVE"
	TypeEarlyBird   Type = "EARLY_BIRD"
)

// Signal is a closed tagged union: the only implementations live in
// this package, so the selector's priority handling stays exhaustive.
// Signals are ephemeral; they are computed per evaluation tick and
// never persisted.
type Signal interface {
	SignalType() Type
	sealed()
}

// FreeDay fires when the Free Parking Scheme is active right now and at
// least one candidate participates.
type FreeDay struct {
	FreeCount int `json:"freeCount"`
}

// EveningSoon fires inside the lead window just before night rates
// start. BestCarpark is the lowest-day-rate candidate and may be nil
// when the candidate set is empty.
type EveningSoon struct {
	WaitMinutes   int                    `json:"waitMinutes"`
	BestCarpark   *core.CandidateCarpark `json:"bestCarpark,omitempty"`
	SavingsAmount float64                `json:"savingsAmount"`
}

// NightActive fires while the capped night rate window is in effect.
type NightActive struct{}

// EarlyBird fires before the early-bird entry cutoff when at least one
// candidate offers an early-bird rate.
type EarlyBird struct {
	// Wire name kept from the upstream dataset vocabulary.
	EligibleCount int `json:"ltaCount"`
}

func (FreeDay) SignalType() Type     { return TypeFreeDay }
func (EveningSoon) SignalType() Type { return TypeEveningSoon }
func (NightActive) SignalType() Type { return TypeNightActive }
func (EarlyBird) SignalType() Type   { return TypeEarlyBird }

func (FreeDay) sealed()     {}
func (EveningSoon) sealed() {}
func (NightActive) sealed() {}
func (EarlyBird) sealed()   {}
