// Package addrcode resolves a listing address into the administrative codes
// a building-registry lookup needs. Resolution is table-driven over the
// sigungu/bjdong code tables; an address outside the table yields an
// incomplete code, never an error.
package addrcode

import (
	"regexp"
	"strings"

	"disclosure-pipeline/internal/models"
)

var lotPattern = regexp.MustCompile(`(?:산\s*)?(\d+)(?:-(\d+))?(?:번지)?`)

type Resolver struct {
	sigungu map[string]string
	bjdong  map[string]map[string]string // sigungu code -> dong name -> bjdong code
}

// New builds a resolver over the bundled code tables.
func New() *Resolver {
	return &Resolver{sigungu: sigunguCodes, bjdong: bjdongCodes}
}

// Resolve derives {sigungu, bjdong, bun, ji} from a free-text address. An
// unresolvable address returns a code with empty sigungu/bjdong fields.
func (r *Resolver) Resolve(address string) models.AddressCode {
	var code models.AddressCode
	addr := strings.TrimSpace(address)
	if addr == "" {
		return code
	}

	var sgName string
	for name, sg := range r.sigungu {
		if strings.Contains(addr, name) {
			// Prefer the longest match: "수성구" over "성구".
			if len(name) > len(sgName) {
				sgName = name
				code.SigunguCode = sg
			}
		}
	}
	if code.SigunguCode == "" {
		return code
	}

	dongs := r.bjdong[code.SigunguCode]
	var dongName string
	for name, bj := range dongs {
		if strings.Contains(addr, name) {
			if len(name) > len(dongName) {
				dongName = name
				code.BjdongCode = bj
			}
		}
	}
	if code.BjdongCode == "" {
		return code
	}

	// Lot number follows the legal-dong name.
	rest := addr
	if idx := strings.Index(addr, dongName); idx >= 0 {
		rest = addr[idx+len(dongName):]
	}
	if m := lotPattern.FindStringSubmatch(rest); m != nil {
		code.Bun = pad4(m[1])
		code.Ji = pad4(m[2])
	} else {
		code.Ji = pad4("")
	}
	return code
}

// Registry lookups expect zero-padded four-digit lot numbers.
func pad4(s string) string {
	if s == "" {
		s = "0"
	}
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
