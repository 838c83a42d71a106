// Package parser turns free-form, chat-pasted property listings into the
// flat ListingRecord consumed by the resolution pipeline. Chat listings have
// no fixed layout: agents paste a mix of labeled lines ("보증금: 1,000") and
// bare fragments ("3층 301호"), so extraction is labeled-line first with
// pattern fallbacks over the whole text.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"disclosure-pipeline/internal/models"
)

const pyeongDivisor = 3.3058

var (
	addressPattern = regexp.MustCompile(`[가-힣]+(?:동|가|리|로|길)\s*\d+(?:-\d+)?(?:번지)?`)

	belowFloorPattern = regexp.MustCompile(`지하\s*(\d+)\s*층|[Bb](\d+)\s*층?`)
	floorPattern      = regexp.MustCompile(`(\d+)\s*층`)
	hoPattern         = regexp.MustCompile(`(\d+)\s*호`)
	dongPattern       = regexp.MustCompile(`(\d+)\s*동`)

	actualAreaPattern = regexp.MustCompile(`실\s*(?:면적|평수)\s*:?\s*([\d,.]+)\s*(㎡|m2|m²|평)?`)
	areaM2Pattern     = regexp.MustCompile(`([\d,.]+)\s*(?:㎡|m2|m²)`)
	areaPyPattern     = regexp.MustCompile(`([\d,.]+)\s*평`)

	depositRentPattern = regexp.MustCompile(`([\d,]+)\s*(?:만원?)?\s*/\s*([\d,]+)\s*(?:만원?)?`)
	numberPattern      = regexp.MustCompile(`([\d,]+)`)

	directionPattern = regexp.MustCompile(`([동서남북]{1,2}향)`)
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse extracts the listing fields from chat text. When no address can be
// found the returned record carries an empty Address; the caller treats
// that as an unparseable listing.
func (p *Parser) Parse(text string) models.ListingRecord {
	record := models.ListingRecord{ItemsText: text}
	lines := strings.Split(text, "\n")

	for _, raw := range lines {
		line := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "•-*"))
		if line == "" {
			continue
		}
		label, value, hasLabel := splitLabel(line)
		if !hasLabel {
			if record.Address == "" && addressPattern.MatchString(line) && !strings.Contains(line, "향") {
				record.Address = line
			}
			continue
		}

		switch {
		case strings.Contains(label, "주소"), strings.Contains(label, "소재지"):
			record.Address = value
		case strings.Contains(label, "보증금"):
			p.parseDepositLine(value, &record)
		case strings.Contains(label, "월세"), strings.Contains(label, "임대료"):
			if record.MonthlyRent == nil {
				if n, ok := parseAmount(value); ok {
					record.MonthlyRent = &n
				}
			}
		case strings.Contains(label, "관리비"):
			record.MaintenanceFee = value
		case strings.Contains(label, "주차"):
			record.Parking = value
		case strings.Contains(label, "방향"):
			record.Direction = value
		case strings.Contains(label, "권리"):
			record.Rights = value
		case strings.Contains(label, "입주"):
			record.MoveInDate = value
		case strings.Contains(label, "화장실"):
			record.BathroomCount = value
		case strings.Contains(label, "용도"):
			record.Usage = value
		case strings.Contains(label, "실면적"), strings.Contains(label, "실평수"):
			if a, ok := parseArea(value); ok {
				record.ActualAreaM2 = a
			}
		case strings.Contains(label, "면적"), strings.Contains(label, "전용"), strings.Contains(label, "평수"):
			if a, ok := parseArea(value); ok {
				record.AreaM2 = a
			}
		}
	}

	p.fillFromPatterns(text, &record)
	return record
}

// fillFromPatterns covers the fields agents rarely label.
func (p *Parser) fillFromPatterns(text string, record *models.ListingRecord) {
	if record.Floor == 0 {
		if m := belowFloorPattern.FindStringSubmatch(text); m != nil {
			digits := m[1]
			if digits == "" {
				digits = m[2]
			}
			n, _ := strconv.Atoi(digits)
			record.Floor = -n
		} else if m := floorPattern.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			record.Floor = n
		}
	}
	if record.Ho == "" {
		if m := hoPattern.FindStringSubmatch(text); m != nil {
			record.Ho = m[1] + "호"
		}
	}
	if record.Dong == "" {
		if m := dongPattern.FindStringSubmatch(text); m != nil {
			record.Dong = m[1] + "동"
		}
	}
	if record.AreaM2 == 0 {
		if m := areaM2Pattern.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
				record.AreaM2 = v
			}
		} else if m := areaPyPattern.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
				record.AreaM2 = roundArea(v * pyeongDivisor)
			}
		}
	}
	if record.ActualAreaM2 == 0 {
		if m := actualAreaPattern.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
				if m[2] == "평" {
					v = roundArea(v * pyeongDivisor)
				}
				record.ActualAreaM2 = v
			}
		}
	}
	if record.Deposit == nil {
		if m := depositRentPattern.FindStringSubmatch(text); m != nil {
			if d, ok := parseAmount(m[1]); ok {
				record.Deposit = &d
			}
			if r, ok := parseAmount(m[2]); ok {
				record.MonthlyRent = &r
			}
		}
	}
	if record.Direction == "" {
		if m := directionPattern.FindStringSubmatch(text); m != nil {
			record.Direction = m[1]
		}
	}
}

// parseDepositLine handles both "1,000/50" and a bare deposit figure.
func (p *Parser) parseDepositLine(value string, record *models.ListingRecord) {
	if m := depositRentPattern.FindStringSubmatch(value); m != nil {
		if d, ok := parseAmount(m[1]); ok {
			record.Deposit = &d
		}
		if r, ok := parseAmount(m[2]); ok {
			record.MonthlyRent = &r
		}
		return
	}
	if d, ok := parseAmount(value); ok {
		record.Deposit = &d
	}
}

func splitLabel(line string) (label, value string, ok bool) {
	label, value, ok = strings.Cut(line, ":")
	if !ok {
		label, value, ok = strings.Cut(line, "：")
	}
	if !ok || strings.TrimSpace(value) == "" {
		return "", "", false
	}
	return strings.TrimSpace(label), strings.TrimSpace(value), true
}

func parseAmount(s string) (int64, bool) {
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var areaNumberPattern = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

func parseArea(s string) (float64, bool) {
	m := areaNumberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if strings.Contains(s, "평") && !strings.Contains(s, "㎡") {
		v = roundArea(v * pyeongDivisor)
	}
	return v, true
}

func roundArea(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
