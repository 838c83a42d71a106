// internal/models/registry.go
package models

import "strings"

// BuildingRecord is one normalized building-title entry from the registry.
// Loose payload aliases are resolved at the registry-client boundary; the
// core only ever sees these typed shapes.
type BuildingRecord struct {
	RegistryKey string `json:"mgmBldrgstPk"`
	Name        string `json:"bldNm,omitempty"`
	DongName    string `json:"dongNm,omitempty"`

	GroundFloors int `json:"grndFlrCnt,omitempty"`
	TotalFloors  int `json:"flrCnt,omitempty"`

	ApprovalDate string `json:"useAprDay,omitempty"` // YYYYMMDD

	ParkingIndoor      int `json:"indrAutoUtcnt,omitempty"`
	ParkingOutdoor     int `json:"oudrAutoUtcnt,omitempty"`
	ParkingMechIndoor  int `json:"indrMechUtcnt,omitempty"`
	ParkingMechOutdoor int `json:"oudrMechUtcnt,omitempty"`
	ParkingAggregate   int `json:"pkngCnt,omitempty"`

	ViolationStatus string  `json:"vlatGbCdNm,omitempty"`
	GrossArea       float64 `json:"totArea,omitempty"`
	Households      int     `json:"hhldCnt,omitempty"`
}

// ParkingCount returns the total parking-space count, preferring the sum of
// the four per-type counts over the single aggregate field.
func (b BuildingRecord) ParkingCount() int {
	total := b.ParkingIndoor + b.ParkingOutdoor + b.ParkingMechIndoor + b.ParkingMechOutdoor
	if total > 0 {
		return total
	}
	return b.ParkingAggregate
}

// FloorRecord is one normalized per-floor aggregate entry.
type FloorRecord struct {
	FloorLabel string  `json:"flrNoNm"` // free text: "3층", "지하1층", ...
	MainUsage  string  `json:"mainPurpsCdNm,omitempty"`
	EtcUsage   string  `json:"etcPurps,omitempty"`
	Area       float64 `json:"area,omitempty"`
}

// UnitAreaRecord is one normalized exclusive/common area entry per unit.
type UnitAreaRecord struct {
	FloorLabel string  `json:"flrNoNm"`
	HoName     string  `json:"hoNm,omitempty"`
	Ownership  string  `json:"exposPubuseGbCdNm,omitempty"` // "전유" or "공용"
	MainUsage  string  `json:"mainPurpsCdNm,omitempty"`
	EtcUsage   string  `json:"etcPurps,omitempty"`
	Area       float64 `json:"area,omitempty"`
}

// Exclusive reports whether the record represents exclusively-owned floor
// space, as opposed to common-area entries.
func (u UnitAreaRecord) Exclusive() bool {
	return strings.Contains(u.Ownership, "전유")
}

// UnitRecord is one normalized unit-info entry.
type UnitRecord struct {
	FloorLabel string  `json:"flrNoNm"`
	HoName     string  `json:"hoNm,omitempty"`
	DongName   string  `json:"dongNm,omitempty"`
	MainUsage  string  `json:"mainPurpsCdNm,omitempty"`
	EtcUsage   string  `json:"etcPurps,omitempty"`
	Area       float64 `json:"area,omitempty"`
}

// DetailSet bundles the three detail-lookup results for one building. A
// non-nil DetailSet in Caches means the fetch already happened and must not
// be silently repeated.
type DetailSet struct {
	Floors    []FloorRecord    `json:"floors"`
	UnitAreas []UnitAreaRecord `json:"unitAreas"`
	Units     []UnitRecord     `json:"units,omitempty"`
}
