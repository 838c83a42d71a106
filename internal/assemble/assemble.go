// Package assemble renders the resolved listing into the statutory
// disclosure text block. Line order and wording are the wire format
// downstream consumers copy into advertisements; do not reorder.
package assemble

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"disclosure-pipeline/internal/models"
)

// PyeongDivisor converts square meters into the traditional unit.
const PyeongDivisor = 3.3058

// Footer is the fixed closing note of every disclosure text.
const Footer = "총 층수는 지하층은 제외"

var regionNames = []string{
	"서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종",
	"경기", "강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주",
}

// DefaultRegionPrefix is prepended when the address names no province/city.
const DefaultRegionPrefix = "대구"

var (
	floorSuffixPattern   = regexp.MustCompile(`\s*\d+\s*층\s*.*$`)
	buildingNamePattern  = regexp.MustCompile(`^(.+?\d+(?:-\d+)?(?:번지)?)\s+(.+)$`)
	lotNumberPattern     = regexp.MustCompile(`\s+(산\s*)?\d+(-\d+)?(번지)?$`)
	violationKeywords    = []string{"위반", "불법", "Y", "y", "1"}
	noViolationKeywords  = []string{"정상", "해당없음", "해당 없음", "N", "n", "0", "적합"}
	unregisteredKeywords = []string{"미등기", "등기없음", "등기안됨", "등기x"}
	whitespacePattern    = regexp.MustCompile(`\s`)
)

// Assemble renders the ordered disclosure lines for a fully resolved
// listing. Missing optional fields are omitted; fields with a statutory
// default render "확인요망" instead.
func Assemble(listing models.ListingRecord, building models.BuildingRecord, cls models.ClassificationResult, cmp models.AreaComparison) string {
	var lines []string

	lines = append(lines, "소재지: "+locationLine(listing))
	lines = append(lines, "전용면적: "+areaLine(cmp))

	if listing.Deposit != nil {
		if listing.MonthlyRent != nil && *listing.MonthlyRent > 0 {
			lines = append(lines, fmt.Sprintf("보증금/월세: %s만원 / %s만원", comma(*listing.Deposit), comma(*listing.MonthlyRent)))
		} else {
			lines = append(lines, fmt.Sprintf("보증금/월세: %s만원", comma(*listing.Deposit)))
		}
	}

	if listing.MaintenanceFee != "" {
		lines = append(lines, "관리비: "+listing.MaintenanceFee)
	}

	judged := cls.Judged
	if judged == "" {
		judged = "확인요망"
	}
	lines = append(lines, "중개대상물 종류: "+judged)

	lines = append(lines, "거래형태: 임대")

	if tf := totalFloors(building); tf > 0 {
		lines = append(lines, fmt.Sprintf("총 층수: %d층", tf))
	} else {
		lines = append(lines, "총 층수: 확인요망")
	}

	switch {
	case listing.Floor < 0:
		lines = append(lines, fmt.Sprintf("해당 층수: 지하%d층", -listing.Floor))
	case listing.Floor > 0:
		lines = append(lines, fmt.Sprintf("해당 층수: %d층", listing.Floor))
	default:
		lines = append(lines, "해당 층수: 확인요망")
	}

	if listing.MoveInDate != "" {
		lines = append(lines, "입주가능일: "+listing.MoveInDate)
	}

	if d := FormatDate(building.ApprovalDate); d != "" {
		lines = append(lines, "사용승인일: "+d)
	} else {
		lines = append(lines, "사용승인일: 확인요망")
	}

	if listing.BathroomCount != "" {
		lines = append(lines, "화장실: "+listing.BathroomCount)
	}

	if listing.Parking != "" {
		lines = append(lines, "주차: "+listing.Parking)
	} else if n := building.ParkingCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("주차: %d대", n))
	}

	if listing.Direction != "" {
		lines = append(lines, "방향: "+listing.Direction)
	}

	if listing.Rights != "" {
		lines = append(lines, "권리관계: "+listing.Rights)
	}

	lines = append(lines, "건축물대장상 위반 건축물: "+violationLine(listing, building))

	if hasUnregisteredKeyword(listing.ItemsText) {
		lines = append(lines, "미등기 건물")
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString("• " + line + "\n")
	}
	b.WriteString("\n• " + Footer)
	return b.String()
}

// locationLine cleans the address (floor suffix and building name stripped,
// regional prefix defaulted) and appends the unit label.
func locationLine(listing models.ListingRecord) string {
	address := strings.TrimSpace(floorSuffixPattern.ReplaceAllString(listing.Address, ""))
	if m := buildingNamePattern.FindStringSubmatch(address); m != nil {
		address = m[1]
	}
	if address != "" && !containsAny(address, regionNames) {
		address = DefaultRegionPrefix + " " + address
	}
	if listing.Ho == "" {
		return address
	}
	if address == "" {
		return listing.Ho
	}
	return address + " " + listing.Ho
}

// areaLine joins the known candidate figures; the line is only meaningful
// once all candidates have been resolved, so it is built last from the
// finished comparison.
func areaLine(cmp models.AreaComparison) string {
	var parts []string
	if cmp.ActualArea > 0 {
		parts = append(parts, "실면적: "+formatArea(cmp.ActualArea))
	}
	if cmp.ListingArea > 0 {
		parts = append(parts, "전용: "+formatArea(cmp.ListingArea))
	}
	if cmp.RegistryArea > 0 {
		parts = append(parts, "대장: "+formatArea(cmp.RegistryArea))
	}
	if len(parts) == 0 {
		return "확인요망"
	}
	return strings.Join(parts, " / ")
}

func formatArea(m2 float64) string {
	return fmt.Sprintf("%s㎡(%d평)", strconv.FormatFloat(m2, 'f', -1, 64), Pyeong(m2))
}

// Pyeong converts square meters to the traditional unit, rounded to the
// nearest whole number.
func Pyeong(m2 float64) int {
	return int(m2/PyeongDivisor + 0.5)
}

// violationLine is three-way: a confirmed violation, confirmed none, or a
// needs-confirmation default. The negative keyword set is evaluated before
// the positive one so "해당없음" is never misread as a violation.
func violationLine(listing models.ListingRecord, building models.BuildingRecord) string {
	if listing.ViolationBuilding {
		return "⚠️ 위반건축물"
	}
	status := strings.TrimSpace(building.ViolationStatus)
	if status != "" {
		if containsAny(status, noViolationKeywords) {
			return "해당없음"
		}
		if containsAny(status, violationKeywords) {
			return "⚠️ 위반건축물"
		}
	}
	return "확인요망"
}

func hasUnregisteredKeyword(itemsText string) bool {
	if itemsText == "" {
		return false
	}
	cleaned := whitespacePattern.ReplaceAllString(strings.ToLower(itemsText), "")
	return containsAny(cleaned, unregisteredKeywords)
}

func totalFloors(building models.BuildingRecord) int {
	if building.GroundFloors > 0 {
		return building.GroundFloors
	}
	return building.TotalFloors
}

// FormatDate converts a registry YYYYMMDD date to YYYY-MM-DD; anything else
// passes through untouched.
func FormatDate(date string) string {
	d := strings.TrimSpace(date)
	if len(d) != 8 {
		return d
	}
	return d[:4] + "-" + d[4:6] + "-" + d[6:8]
}

// RemoveAddressNumbers strips lot numbers from the location line of a
// finished disclosure text, for the copy agents publish without them.
func RemoveAddressNumbers(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		prefix, addr, found := strings.Cut(line, "소재지:")
		if !found {
			prefix, addr, found = strings.Cut(line, "소재지 :")
			if !found {
				continue
			}
			prefix += "소재지 :"
		} else {
			prefix += "소재지:"
		}
		cleaned := lotNumberPattern.ReplaceAllString(strings.TrimSpace(addr), "")
		lines[i] = prefix + " " + cleaned
	}
	return strings.Join(lines, "\n")
}

func comma(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
