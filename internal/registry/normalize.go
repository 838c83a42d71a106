// internal/registry/normalize.go
//
// The public registry API returns loosely-typed payloads: field names vary
// per record type and per vintage of the upstream schema, and numeric values
// arrive as either numbers or strings. All of that tolerance lives here, at
// the client boundary; the rest of the system only sees the typed records.
package registry

import (
	"fmt"
	"strconv"
	"strings"

	"disclosure-pipeline/internal/models"
)

func normalizeBuilding(item map[string]interface{}) models.BuildingRecord {
	return models.BuildingRecord{
		RegistryKey:  itemString(item, "mgmBldrgstPk"),
		Name:         itemString(item, "bldNm"),
		DongName:     itemString(item, "dongNm", "dongNo", "dong", "dongNmNm", "bldDongNm"),
		GroundFloors: itemInt(item, "grndFlrCnt"),
		TotalFloors:  itemInt(item, "flrCnt", "heit"),
		ApprovalDate: itemString(item, "useAprDay", "pmsDay"),

		ParkingIndoor:      itemInt(item, "indrAutoUtcnt"),
		ParkingOutdoor:     itemInt(item, "oudrAutoUtcnt"),
		ParkingMechIndoor:  itemInt(item, "indrMechUtcnt"),
		ParkingMechOutdoor: itemInt(item, "oudrMechUtcnt"),
		ParkingAggregate:   itemInt(item, "pkngCnt", "totPkngCnt"),

		ViolationStatus: itemString(item, "vlatGbCdNm", "vlatGbCd"),
		GrossArea:       itemFloat(item, "totArea", "totArea1"),
		Households:      itemInt(item, "hhldCnt", "hhldCnt1"),
	}
}

func normalizeFloor(item map[string]interface{}) models.FloorRecord {
	return models.FloorRecord{
		FloorLabel: itemString(item, "flrNoNm", "flrNo", "flrNoNm1", "flrNo1", "flrNoNm2", "flrNo2"),
		MainUsage:  itemString(item, "mainPurpsCdNm", "mainPurps", "mainPurpsCdNm1", "mainPurps1"),
		EtcUsage:   itemString(item, "etcPurps", "etcPurps1"),
		Area:       itemFloat(item, "area"),
	}
}

func normalizeUnitArea(item map[string]interface{}) models.UnitAreaRecord {
	return models.UnitAreaRecord{
		FloorLabel: itemString(item, "flrNoNm", "flrNo", "flrNo1"),
		HoName:     itemString(item, "hoNm"),
		Ownership:  itemString(item, "exposPubuseGbCdNm"),
		MainUsage:  itemString(item, "mainPurpsCdNm", "mainPurps"),
		EtcUsage:   itemString(item, "etcPurps"),
		Area: itemFloat(item, "area", "exclArea", "exclArea1", "exclArea2", "exclArea3",
			"exclTotArea", "exclTotArea1", "exclTotArea2"),
	}
}

func normalizeUnit(item map[string]interface{}) models.UnitRecord {
	return models.UnitRecord{
		FloorLabel: itemString(item, "flrNoNm", "flrNo"),
		HoName:     itemString(item, "hoNm"),
		DongName:   itemString(item, "dongNm"),
		MainUsage:  itemString(item, "mainPurpsCdNm", "mainPurps"),
		EtcUsage:   itemString(item, "etcPurps"),
		Area:       itemFloat(item, "area"),
	}
}

// itemString returns the first non-empty value among the aliased keys.
func itemString(item map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := item[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = strings.TrimSpace(t)
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			s = strings.TrimSpace(fmt.Sprintf("%v", t))
		}
		if s != "" {
			return s
		}
	}
	return ""
}

func itemFloat(item map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		v, ok := item[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			if t != 0 {
				return t
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && f != 0 {
				return f
			}
		}
	}
	return 0
}

func itemInt(item map[string]interface{}, keys ...string) int {
	// Counts arrive as "3", "3.0" or 3; all of them mean 3.
	f := itemFloat(item, keys...)
	return int(f)
}
