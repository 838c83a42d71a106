// Package classify maps raw registry usage descriptors into the closed
// statutory building-use category set. Classification is a pure function of
// its inputs and the fixed rule tables: no I/O, identical inputs always
// yield the identical result.
package classify

import (
	"strings"

	"disclosure-pipeline/internal/models"
)

// Classify judges the statutory use category for a raw usage descriptor, an
// optional secondary ("etc purpose") descriptor, and the floor area in m2.
//
// The cascade runs three stages in fixed order, first match wins:
//  1. exact-phrase exceptions (compound storefront/residence, bare
//     storefront, literal first/second-tier neighborhood-facility phrases);
//  2. keyword groups with area cutoffs;
//  3. the broad statutory taxonomy predicates.
//
// Registry "etc purpose" fields sometimes carry the more specific statutory
// label, so a secondary string containing a neighborhood-facility phrase is
// preferred over the primary string as classification input.
func Classify(rawUsage, etcUsage string, areaM2 float64) models.ClassificationResult {
	result := models.ClassificationResult{
		RawUsage: rawUsage,
		EtcUsage: etcUsage,
		AreaM2:   areaM2,
	}

	raw := canonicalize(rawUsage)
	etc := canonicalize(etcUsage)

	input := raw
	if etc != "" {
		if strings.Contains(etc, "근린생활시설") || strings.Contains(etc, "제1종") || strings.Contains(etc, "제2종") {
			input = etc
		} else if input == "" {
			input = etc
		} else {
			input = input + ", " + etc
		}
	}

	// Stage 1: exact-phrase exceptions.
	if input != "" {
		if strings.Contains(input, "점포 및 주택") || strings.Contains(input, "주택 및 점포") ||
			(strings.Contains(input, "점포") && strings.Contains(input, "주택") && strings.Contains(input, "및")) {
			result.Judged = input
			result.Warning = true
			return result
		}
		if strings.TrimSpace(input) == "점포" {
			result.NeedsSelection = true
			return result
		}
		if strings.Contains(input, "제1종근린생활시설") || strings.Contains(input, "제1종 근린생활시설") {
			result.Judged = CatNeighborhood1
			return result
		}
		if strings.Contains(input, "제2종근린생활시설") || strings.Contains(input, "제2종 근린생활시설") {
			result.Judged = CatNeighborhood2
			return result
		}
	}

	usage := strings.ToLower(input)

	// Stage 2: keyword groups with area cutoffs. Only reached with both a
	// usage string and an area; a matched group never falls through.
	if usage != "" && areaM2 > 0 {
		for _, rule := range thresholdRules {
			if !containsAny(usage, rule.keywords) {
				continue
			}
			for _, t := range rule.tiers {
				if t.below == 0 || areaM2 < t.below {
					result.Judged = t.category
					return result
				}
			}
		}
	}

	// Stage 3 requires both inputs as well; without them the judgment is an
	// explicit needs-confirmation default.
	if usage == "" || areaM2 <= 0 {
		result.Judged = NeedsConfirmation
		return result
	}

	// Residence types are only considered when no commercial keyword is
	// present at all.
	if !containsAny(usage, commercialKeywords) {
		if containsAny(usage, detachedKeywords) {
			result.Judged = CatDetached
			return result
		}
		if containsAny(usage, multiUnitKeywords) {
			result.Judged = CatMultiUnit
			return result
		}
	}

	for _, rule := range broadRules {
		for _, c := range rule.clauses {
			if matchClause(c, usage, areaM2) {
				result.Judged = rule.category
				return result
			}
		}
	}

	// Unclassified: surface the raw string, flagged for manual review.
	result.Judged = input
	result.Warning = true
	return result
}

func matchClause(c clause, usage string, area float64) bool {
	if !containsAny(usage, c.keywords) {
		return false
	}
	for _, ex := range c.exclude {
		if strings.Contains(usage, ex) {
			return false
		}
	}
	if c.minArea > 0 && area < c.minArea {
		return false
	}
	if c.maxArea > 0 && area >= c.maxArea {
		return false
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// canonicalize applies the fixed descriptor rewrites done before any rule
// evaluation. 사무실 and 사무소 are the same statutory use.
func canonicalize(s string) string {
	return strings.ReplaceAll(s, "사무실", "사무소")
}
