// internal/pipeline/judge.go
package pipeline

import (
	"regexp"
	"strings"

	"disclosure-pipeline/internal/area"
	"disclosure-pipeline/internal/classify"
	"disclosure-pipeline/internal/models"
)

// Violation markers agents put on the first line of a listing, ahead of the
// listing body proper.
var violationKeywords = []string{"위반건축물", "불법건축물", "위반있음"}

var markupPattern = regexp.MustCompile(`[^\w\s가-힣]`)

// stripViolationHeader detects a violation marker on the first line of the
// chat text and, when found, drops that line so it cannot pollute parsing.
// Emoji and other decorations are stripped before matching.
func stripViolationHeader(text string) (string, bool) {
	lines := strings.SplitN(text, "\n", 2)
	first := markupPattern.ReplaceAllString(lines[0], "")
	for _, kw := range violationKeywords {
		if strings.Contains(first, kw) {
			if len(lines) == 2 {
				return lines[1], true
			}
			return "", true
		}
	}
	return text, false
}

// judgeUsage derives the raw usage strings for classification. A listing
// that names a unit is judged on that unit's exclusively-owned entry; all
// other listings are judged on the floor-level records of the subject floor.
func (p *Pipeline) judgeUsage(listing models.ListingRecord, details *models.DetailSet) models.ClassificationResult {
	searchFloor := listing.Floor
	if searchFloor == 0 {
		searchFloor = 1
	}

	var rawUsage, etcUsage string
	if listing.Ho != "" {
		for _, a := range details.UnitAreas {
			if !a.Exclusive() || !area.SameHo(listing.Ho, a.HoName) {
				continue
			}
			usage := a.MainUsage
			if usage == "" {
				usage = a.EtcUsage
			}
			if usage != "" && a.Area > 0 {
				rawUsage = usage
				if a.EtcUsage != "" && a.EtcUsage != usage {
					etcUsage = a.EtcUsage
				}
				break
			}
		}
	}
	if rawUsage == "" {
		rawUsage = joinDistinct(details.Floors, searchFloor, func(f models.FloorRecord) string { return f.MainUsage })
		etcUsage = joinDistinct(details.Floors, searchFloor, func(f models.FloorRecord) string { return f.EtcUsage })
	}

	return classify.Classify(rawUsage, etcUsage, classificationArea(listing, details, searchFloor))
}

// classificationArea picks the area figure the usage thresholds apply to:
// the registry's unit area for the subject floor when available, otherwise
// the chat-stated figures.
func classificationArea(listing models.ListingRecord, details *models.DetailSet, searchFloor int) float64 {
	for _, a := range details.UnitAreas {
		if area.MatchFloor(searchFloor, a.FloorLabel) && a.Area > 0 {
			return a.Area
		}
	}
	if listing.AreaM2 > 0 {
		return listing.AreaM2
	}
	return listing.ActualAreaM2
}

func joinDistinct(floors []models.FloorRecord, searchFloor int, field func(models.FloorRecord) string) string {
	var out []string
	seen := map[string]bool{}
	for _, f := range floors {
		if !area.MatchFloor(searchFloor, f.FloorLabel) {
			continue
		}
		v := strings.TrimSpace(field(f))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return strings.Join(out, ", ")
}

// filterByDong narrows title records to the wing the listing names,
// comparing digits only so "제1동", "1동" and "101동" vs "101" all line up.
func filterByDong(buildings []models.BuildingRecord, dong string) []models.BuildingRecord {
	want := digitsOnly(dong)
	if want == "" {
		return nil
	}
	var out []models.BuildingRecord
	for _, b := range buildings {
		if digitsOnly(b.DongName) == want {
			out = append(out, b)
		}
	}
	return out
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// autoMatchHo picks a unit without asking the caller when the listing's unit
// label matches exactly one candidate. Zero or several matches fall through
// to an explicit selection.
func autoMatchHo(ho string, units []models.UnitSummary) (int, bool) {
	if ho == "" {
		return 0, false
	}
	matched, count := -1, 0
	for i, u := range units {
		if area.SameHo(ho, u.Ho) {
			matched = i
			count++
		}
	}
	if count == 1 {
		return matched, true
	}
	return 0, false
}
