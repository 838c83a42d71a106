// Package area cross-checks area figures reported in the chat listing
// against the building registry, and holds the floor-label parsing shared by
// the pipeline. Everything here is a synchronous, side-effect-free
// transformation.
package area

import (
	"math"

	"disclosure-pipeline/internal/models"
)

// MatchTolerance is the absolute difference in m2 under which a chat-stated
// area and a registry area count as the same figure.
const MatchTolerance = 0.1

// SelectedUnit describes a unit choice made in a prior turn: either one
// exclusively-owned unit or the whole-floor aggregate.
type SelectedUnit struct {
	WholeFloor bool
	Ho         string
	Area       float64
	Usage      string
	Units      []models.UnitSummary
}

// Reconcile resolves the registry-side area for the subject floor/unit and
// compares it against the chat-stated area. Resolution order: an explicitly
// selected unit's recorded area, then the exclusively-owned unit entry whose
// label matches the listing's, then the floor-level aggregate. A comparison
// is returned whenever a chat-stated area is present, even when no registry
// area can be found.
func Reconcile(listing models.ListingRecord, floors []models.FloorRecord, areas []models.UnitAreaRecord, floor int, ho string, selected *SelectedUnit) models.AreaComparison {
	cmp := models.AreaComparison{
		ListingArea: listing.AreaM2,
		ActualArea:  listing.ActualAreaM2,
	}
	if listing.AreaM2 <= 0 {
		return cmp
	}

	if selected != nil && selected.Area > 0 {
		cmp.RegistryArea = selected.Area
	} else {
		cmp.RegistryArea = registryArea(floors, areas, floor, ho)
	}

	if cmp.RegistryArea > 0 {
		diff := math.Abs(cmp.RegistryArea - cmp.ListingArea)
		cmp.Diff = math.Round(diff*100) / 100
		cmp.Match = diff < MatchTolerance
		cmp.Compared = true
	}
	return cmp
}

// registryArea searches unit-level records first (exclusively-owned entry
// with a matching unit label), then floor-level aggregates.
func registryArea(floors []models.FloorRecord, areas []models.UnitAreaRecord, floor int, ho string) float64 {
	searchFloor := floor
	if searchFloor == 0 {
		searchFloor = 1
	}

	if ho != "" {
		for _, a := range areas {
			if a.Exclusive() && SameHo(ho, a.HoName) && a.Area > 0 {
				return a.Area
			}
		}
	}

	for _, f := range floors {
		if MatchFloor(searchFloor, f.FloorLabel) && f.Area > 0 {
			return f.Area
		}
	}
	return 0
}

// UnitsOnFloor returns all exclusively-owned unit entries on the given
// floor, falling back to floor-level aggregates when the registry carries no
// exclusive entries for the building.
func UnitsOnFloor(areas []models.UnitAreaRecord, floors []models.FloorRecord, floor int) []models.UnitSummary {
	searchFloor := floor
	if searchFloor == 0 {
		searchFloor = 1
	}

	var units []models.UnitSummary
	for _, a := range areas {
		if !a.Exclusive() {
			continue
		}
		if MatchFloor(searchFloor, a.FloorLabel) && a.Area > 0 {
			units = append(units, models.UnitSummary{
				Ho:         a.HoName,
				Area:       a.Area,
				MainUsage:  a.MainUsage,
				EtcUsage:   a.EtcUsage,
				FloorLabel: a.FloorLabel,
			})
		}
	}
	if len(units) > 0 {
		return units
	}

	for _, f := range floors {
		if MatchFloor(searchFloor, f.FloorLabel) && f.Area > 0 {
			units = append(units, models.UnitSummary{
				Area:       f.Area,
				MainUsage:  f.MainUsage,
				EtcUsage:   f.EtcUsage,
				FloorLabel: f.FloorLabel,
			})
		}
	}
	return units
}

// CompareUnits recommends a selection among multiple candidate units: the
// whole floor when the listing area matches the summed unit areas, else the
// first individual unit within tolerance.
func CompareUnits(listingArea float64, units []models.UnitSummary) models.UnitComparison {
	cmp := models.UnitComparison{}
	for _, u := range units {
		cmp.TotalArea += u.Area
	}
	if listingArea <= 0 {
		return cmp
	}
	if math.Abs(cmp.TotalArea-listingArea) < MatchTolerance {
		cmp.MatchTotal = true
		cmp.Recommended = &models.UnitIndex{WholeFloor: true}
		return cmp
	}
	for i, u := range units {
		if math.Abs(u.Area-listingArea) < MatchTolerance {
			idx := i
			cmp.Recommended = &models.UnitIndex{Index: idx}
			break
		}
	}
	return cmp
}
