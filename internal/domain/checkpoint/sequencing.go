package checkpoint

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Verdict is the outcome of validating a candidate checkpoint visit.
// The reject verdicts are machine-checkable business declines, not
// errors; callers surface them as data, never as failures.
type Verdict string

const (
	// VerdictAllowNewDeclaration permits the journey's first-ever checkin.
	// Any station of the bound path is a legal entry point, not just the
	// order-1 station.
	VerdictAllowNewDeclaration Verdict = "ALLOW_NEW_DECLARATION"
	// VerdictAllowNextCheckin permits the next in-sequence visit
	VerdictAllowNextCheckin Verdict = "ALLOW_NEXT_CHECKIN"
	// VerdictAllowComplete permits the visit and completes the journey:
	// the candidate is the terminal station and no weight was gained
	VerdictAllowComplete Verdict = "ALLOW_COMPLETE"
	// VerdictRejectNotInPath declines a station outside the bound path
	VerdictRejectNotInPath Verdict = "REJECT_NOT_IN_PATH"
	// VerdictRejectWrongDirection declines backward movement along the path
	VerdictRejectWrongDirection Verdict = "REJECT_WRONG_DIRECTION"
	// VerdictRejectSkippedStations declines a forward jump over unvisited
	// stations; the decision carries the first skipped one
	VerdictRejectSkippedStations Verdict = "REJECT_SKIPPED_STATIONS"
	// VerdictRejectPreviousUnpaid declines progression while the latest
	// checkin is still pending or unpaid
	VerdictRejectPreviousUnpaid Verdict = "REJECT_PREVIOUS_UNPAID"
	// VerdictRejectAlreadyCheckedHere declines a second visit to the same
	// station within one journey
	VerdictRejectAlreadyCheckedHere Verdict = "REJECT_ALREADY_CHECKED_HERE"
	// VerdictRejectJourneyClosed declines continuing a completed or
	// cancelled journey; the entity must restart through the weighbridge
	VerdictRejectJourneyClosed Verdict = "REJECT_JOURNEY_CLOSED"
)

// Allowed reports whether the verdict permits creating a checkin
func (v Verdict) Allowed() bool {
	switch v {
	case VerdictAllowNewDeclaration, VerdictAllowNextCheckin, VerdictAllowComplete:
		return true
	default:
		return false
	}
}

// Candidate describes an attempted checkpoint visit
type Candidate struct {
	StationID uuid.UUID
	NetWeight decimal.Decimal
}

// Decision is the full outcome of sequence validation. Latest and the
// weight fields are populated whenever a prior checkin exists so callers
// can assess tax without re-deriving the sequence.
type Decision struct {
	Verdict           Verdict
	Latest            *Checkin        // latest prior checkin by checkin time, nil on first visit
	PreviousWeight    decimal.Decimal // zero on first visit
	IncrementalWeight decimal.Decimal // candidate weight minus previous, clamped at zero
	SkippedStationID  uuid.UUID       // first skipped station, REJECT_SKIPPED_STATIONS only
	Terminal          bool            // candidate is the path's maximum-order station
	CompletesJourney  bool            // creating this checkin must also complete the journey
}

// ValidateSequence decides whether a journey may check in at the
// candidate station. It is a pure function: it performs no I/O and
// mutates nothing; callers act on the verdict inside the same
// transaction that re-runs this check.
//
// checkins must be all existing checkins of the journey, in insertion
// order. path is the journey's bound path, nil when no path has been
// assigned yet.
func ValidateSequence(journey TrackedJourney, path *Path, checkins []Checkin, candidate Candidate) Decision {
	for i := range checkins {
		if checkins[i].StationID == candidate.StationID {
			return Decision{Verdict: VerdictRejectAlreadyCheckedHere, Latest: &checkins[i]}
		}
	}

	if len(checkins) == 0 {
		if path != nil && !path.ContainsStation(candidate.StationID) {
			return Decision{Verdict: VerdictRejectNotInPath}
		}
		incremental := clampWeight(candidate.NetWeight)
		return Decision{
			Verdict:           VerdictAllowNewDeclaration,
			IncrementalWeight: incremental,
			Terminal:          path != nil && path.IsTerminal(candidate.StationID),
		}
	}

	latest := latestCheckin(checkins)

	if journey.IsClosed() {
		return Decision{Verdict: VerdictRejectJourneyClosed, Latest: latest}
	}

	if path == nil || !path.ContainsStation(candidate.StationID) {
		return Decision{Verdict: VerdictRejectNotInPath, Latest: latest}
	}

	candidateOrder, _ := path.OrderOf(candidate.StationID)
	latestOrder, inPath := path.OrderOf(latest.StationID)
	if inPath {
		if latestOrder > candidateOrder {
			return Decision{Verdict: VerdictRejectWrongDirection, Latest: latest}
		}
		if skipped, ok := path.FirstSkippedBetween(latestOrder, candidateOrder); ok {
			if !visited(checkins, skipped) {
				return Decision{Verdict: VerdictRejectSkippedStations, Latest: latest, SkippedStationID: skipped}
			}
		}
	}

	if latest.BlocksProgression() {
		return Decision{Verdict: VerdictRejectPreviousUnpaid, Latest: latest}
	}

	previous := latest.NetWeight
	incremental := candidate.NetWeight.Sub(previous)
	if incremental.IsNegative() {
		incremental = decimal.Zero
	}

	terminal := path.IsTerminal(candidate.StationID)
	if terminal && !incremental.IsPositive() {
		return Decision{
			Verdict:           VerdictAllowComplete,
			Latest:            latest,
			PreviousWeight:    previous,
			IncrementalWeight: incremental,
			Terminal:          true,
			CompletesJourney:  true,
		}
	}

	return Decision{
		Verdict:           VerdictAllowNextCheckin,
		Latest:            latest,
		PreviousWeight:    previous,
		IncrementalWeight: incremental,
		Terminal:          terminal,
	}
}

// latestCheckin selects the checkin with the maximum checkin time.
// Identical timestamps are broken by insertion order, later wins, so the
// choice is deterministic even under a clock tie.
func latestCheckin(checkins []Checkin) *Checkin {
	latest := &checkins[0]
	for i := 1; i < len(checkins); i++ {
		if !checkins[i].CheckinTime.Before(latest.CheckinTime) {
			latest = &checkins[i]
		}
	}
	return latest
}

func visited(checkins []Checkin, stationID uuid.UUID) bool {
	for i := range checkins {
		if checkins[i].StationID == stationID {
			return true
		}
	}
	return false
}

func clampWeight(w decimal.Decimal) decimal.Decimal {
	if w.IsNegative() {
		return decimal.Zero
	}
	return w
}
