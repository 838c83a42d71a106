// internal/area/floor.go
package area

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	belowGradePatterns = []*regexp.Regexp{
		regexp.MustCompile(`지하\s*(\d+)`),
		regexp.MustCompile(`[Bb]\s*(\d+)`),
		regexp.MustCompile(`-\s*(\d+)`),
	}
	aboveGradePattern  = regexp.MustCompile(`지상\s*(\d+)`)
	plainFloorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*층`),
		regexp.MustCompile(`(?i)(\d+)\s*F`),
		regexp.MustCompile(`^(\d+)$`),
	}
	nonDigit = regexp.MustCompile(`[^0-9]`)
)

// ParseFloorLabel parses a free-text floor label into a signed integer:
// below grade negative, above grade positive. Handles "3층", "지상3", "B2",
// "-2", "3F" and bare digits.
func ParseFloorLabel(label string) (int, bool) {
	s := strings.TrimSpace(label)
	if s == "" {
		return 0, false
	}
	for _, pat := range belowGradePatterns {
		if m := pat.FindStringSubmatch(s); m != nil {
			n, _ := strconv.Atoi(m[1])
			return -n, true
		}
	}
	if strings.Contains(s, "지상") {
		if m := aboveGradePattern.FindStringSubmatch(s); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n, true
		}
	}
	for _, pat := range plainFloorPatterns {
		if m := pat.FindStringSubmatch(s); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n, true
		}
	}
	return 0, false
}

// MatchFloor reports whether a registry floor label refers to the given
// signed floor. Below-grade labels never match above-grade floors and vice
// versa; the first floor additionally requires an explicit above-grade
// marker so that "10층" never matches floor 1 via digit containment.
func MatchFloor(searchFloor int, label string) bool {
	fs := strings.TrimSpace(label)
	if fs == "" {
		return false
	}
	fn := nonDigit.ReplaceAllString(fs, "")
	sn := strconv.Itoa(abs(searchFloor))

	belowGrade := strings.Contains(fs, "지하") || strings.ContainsAny(fs, "Bb") || strings.HasPrefix(fs, "-")

	if searchFloor < 0 {
		return belowGrade && fn == sn
	}

	if belowGrade {
		return false
	}
	if fs == sn || fs == sn+"층" || fs == sn+"F" {
		return true
	}
	if fs == "지상"+sn || fs == "지상"+sn+"층" {
		return true
	}
	if fn == sn {
		if searchFloor == 1 {
			return strings.Contains(fs, "지상") || fs == "1"
		}
		return true
	}
	if rest, ok := strings.CutPrefix(fs, sn+"층"); ok {
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return true
		}
	}
	return false
}

// NormalizeHo normalizes a unit label for comparison by stripping the unit
// suffix character and surrounding whitespace.
func NormalizeHo(ho string) string {
	return strings.TrimSpace(strings.ReplaceAll(ho, "호", ""))
}

// SameHo compares two unit labels after normalization, case-insensitively.
func SameHo(a, b string) bool {
	return strings.EqualFold(NormalizeHo(a), NormalizeHo(b))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
