// internal/models/outcome.go
package models

import (
	"encoding/json"
	"fmt"
)

// Outcome kinds. A single resolution reports at most one outstanding
// ambiguity, so exactly one kind is ever set per response.
const (
	OutcomeError                  = "error"
	OutcomeNeedsBuildingSelection = "needs_building_selection"
	OutcomeNeedsUnitSelection     = "needs_unit_selection"
	OutcomeNeedsUsageSelection    = "needs_usage_selection"
	OutcomeSuccess                = "success"
)

// UnitIndex selects a unit on the resolved floor: either a zero-based index
// into the candidate list or the whole-floor aggregate. On the wire it is a
// JSON number or the string "whole-floor".
type UnitIndex struct {
	WholeFloor bool
	Index      int
}

func (u UnitIndex) MarshalJSON() ([]byte, error) {
	if u.WholeFloor {
		return []byte(`"whole-floor"`), nil
	}
	return json.Marshal(u.Index)
}

func (u *UnitIndex) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"whole-floor"`, `"total"`:
		u.WholeFloor = true
		return nil
	}
	if err := json.Unmarshal(b, &u.Index); err != nil {
		return fmt.Errorf("unit index must be a number or \"whole-floor\": %w", err)
	}
	return nil
}

// Selections carries the choices already made by the caller across turns.
type Selections struct {
	BuildingIndex *int       `json:"buildingIndex,omitempty"`
	Unit          *UnitIndex `json:"unitIndex,omitempty"`
	UsageChoice   string     `json:"usageChoice,omitempty"`
}

// Caches carries previously fetched registry results back into the pipeline
// so a resumed turn performs no I/O it can avoid. The caller owns this state;
// the pipeline holds nothing between invocations.
type Caches struct {
	Buildings []BuildingRecord `json:"buildings,omitempty"`
	Details   *DetailSet       `json:"details,omitempty"`
}

// ClassificationResult is the outcome of the usage-classification cascade.
type ClassificationResult struct {
	RawUsage string `json:"rawUsage,omitempty"`
	EtcUsage string `json:"etcUsage,omitempty"`
	// Judged is a member of the closed statutory category set, the raw
	// string when Warning is set, or empty when NeedsSelection is set.
	Judged         string  `json:"judged,omitempty"`
	NeedsSelection bool    `json:"needsSelection,omitempty"`
	Warning        bool    `json:"warning,omitempty"`
	AreaM2         float64 `json:"areaM2,omitempty"` // area the judgment was based on
}

// AreaComparison cross-checks the chat-stated area against the registry.
type AreaComparison struct {
	ListingArea  float64 `json:"listingArea,omitempty"`
	ActualArea   float64 `json:"actualArea,omitempty"`
	RegistryArea float64 `json:"registryArea,omitempty"`

	Diff     float64 `json:"diff,omitempty"`
	Match    bool    `json:"match,omitempty"`
	Compared bool    `json:"compared,omitempty"` // false when no registry area was found

	SelectedUnitArea float64       `json:"selectedUnitArea,omitempty"`
	WholeFloor       bool          `json:"wholeFloor,omitempty"`
	UnitBreakdown    []UnitSummary `json:"unitBreakdown,omitempty"`
}

// UnitSummary is one candidate exclusively-owned unit on the subject floor.
type UnitSummary struct {
	Ho         string  `json:"ho"`
	Area       float64 `json:"area"`
	MainUsage  string  `json:"mainUsage,omitempty"`
	EtcUsage   string  `json:"etcUsage,omitempty"`
	FloorLabel string  `json:"floor,omitempty"`
}

// UnitComparison recommends a unit selection by comparing the chat-stated
// area against the candidate areas within 0.1 m2.
type UnitComparison struct {
	TotalArea   float64    `json:"totalArea"`
	MatchTotal  bool       `json:"matchTotal"`
	Recommended *UnitIndex `json:"recommended,omitempty"`
}

// ErrorInfo is the error payload of an Error outcome.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Outcome is the single response shape of a pipeline invocation. Kind
// selects the variant; only the fields of that variant are populated.
type Outcome struct {
	Kind string `json:"outcome"`

	// Error variant.
	Error *ErrorInfo `json:"error,omitempty"`

	// NeedsBuildingSelection variant.
	Buildings []BuildingRecord `json:"buildingCandidates,omitempty"`

	// NeedsUnitSelection variant.
	Units          []UnitSummary   `json:"unitCandidates,omitempty"`
	UnitComparison *UnitComparison `json:"unitComparison,omitempty"`

	// NeedsUsageSelection variant.
	UsageOptions []string `json:"usageOptions,omitempty"`

	// Success variant.
	Text           string                `json:"text,omitempty"`
	Building       *BuildingRecord       `json:"building,omitempty"`
	Classification *ClassificationResult `json:"classification,omitempty"`
	AreaComparison *AreaComparison       `json:"areaComparison,omitempty"`

	// Resumption context, present on every non-error outcome.
	Parsed      *ListingRecord `json:"parsed,omitempty"`
	AddressCode *AddressCode   `json:"addressCode,omitempty"`
	Caches      *Caches        `json:"caches,omitempty"`
}
