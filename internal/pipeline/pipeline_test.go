// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"testing"

	"disclosure-pipeline/internal/addrcode"
	"disclosure-pipeline/internal/common/logger"
	"disclosure-pipeline/internal/models"
	"disclosure-pipeline/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeRegistry serves canned records and counts calls so tests can prove
// that supplied caches suppress lookups.
type fakeRegistry struct {
	titles []models.BuildingRecord
	floors []models.FloorRecord
	areas  []models.UnitAreaRecord
	units  []models.UnitRecord

	titleErr  error
	detailErr error

	titleCalls int
	floorCalls int
	areaCalls  int
	unitCalls  int
}

func (f *fakeRegistry) TitleInfo(ctx context.Context, code models.AddressCode, rows int) ([]models.BuildingRecord, error) {
	f.titleCalls++
	return f.titles, f.titleErr
}

func (f *fakeRegistry) FloorInfo(ctx context.Context, code models.AddressCode, registryKey string, rows int) ([]models.FloorRecord, error) {
	f.floorCalls++
	return f.floors, f.detailErr
}

func (f *fakeRegistry) UnitAreaInfo(ctx context.Context, code models.AddressCode, registryKey string, rows int) ([]models.UnitAreaRecord, error) {
	f.areaCalls++
	return f.areas, f.detailErr
}

func (f *fakeRegistry) UnitInfo(ctx context.Context, code models.AddressCode, registryKey string, rows int) ([]models.UnitRecord, error) {
	f.unitCalls++
	return f.units, f.detailErr
}

func newTestPipeline(reg *fakeRegistry) *Pipeline {
	return New(parser.New(), addrcode.New(), reg, DefaultConfig(), logger.Nop())
}

func singleBuilding() []models.BuildingRecord {
	return []models.BuildingRecord{{
		RegistryKey:     "pk-1",
		GroundFloors:    5,
		ApprovalDate:    "20150320",
		ViolationStatus: "해당없음",
	}}
}

const listingText = "수성구 범어동 123-45 3층\n전용: 84.5㎡\n보증금: 1,000/50"

func intp(n int) *int { return &n }

// ==========================
// Core Flow Tests
// ==========================

func TestResolve_Success(t *testing.T) {
	reg := &fakeRegistry{
		titles: singleBuilding(),
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 84.5}},
		areas: []models.UnitAreaRecord{
			{FloorLabel: "3층", HoName: "301호", Ownership: "전유", MainUsage: "사무소", Area: 84.5},
		},
	}
	p := newTestPipeline(reg)

	out := p.Resolve(context.Background(), listingText, models.Selections{}, models.Caches{})

	require.Equal(t, models.OutcomeSuccess, out.Kind)
	assert.Contains(t, out.Text, "• 소재지: 대구 수성구 범어동 123-45")
	assert.Contains(t, out.Text, "• 중개대상물 종류: 제2종 근린생활시설")
	assert.Contains(t, out.Text, "• 총 층수: 5층")
	assert.Contains(t, out.Text, "• 해당 층수: 3층")
	assert.Contains(t, out.Text, "• 건축물대장상 위반 건축물: 해당없음")

	require.NotNil(t, out.Classification)
	assert.Equal(t, "제2종 근린생활시설", out.Classification.Judged)
	require.NotNil(t, out.AreaComparison)
	assert.True(t, out.AreaComparison.Match)

	// No unit label in the listing, so unit info is never fetched.
	assert.Equal(t, 1, reg.titleCalls)
	assert.Equal(t, 1, reg.floorCalls)
	assert.Equal(t, 1, reg.areaCalls)
	assert.Equal(t, 0, reg.unitCalls)

	require.NotNil(t, out.Caches)
	assert.Len(t, out.Caches.Buildings, 1)
	require.NotNil(t, out.Caches.Details)
}

func TestResolve_BuildingSelection(t *testing.T) {
	reg := &fakeRegistry{
		titles: []models.BuildingRecord{
			{RegistryKey: "pk-1", DongName: "가동", GroundFloors: 5},
			{RegistryKey: "pk-2", DongName: "나동", GroundFloors: 3},
		},
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 84.5}},
	}
	p := newTestPipeline(reg)
	ctx := context.Background()

	out := p.Resolve(ctx, listingText, models.Selections{}, models.Caches{})
	require.Equal(t, models.OutcomeNeedsBuildingSelection, out.Kind)
	assert.Len(t, out.Buildings, 2)
	require.NotNil(t, out.Caches)

	// Resume with the choice and the returned caches: no second title lookup.
	out = p.Resolve(ctx, listingText,
		models.Selections{BuildingIndex: intp(1)}, *out.Caches)
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	require.NotNil(t, out.Building)
	assert.Equal(t, "pk-2", out.Building.RegistryKey)
	assert.Equal(t, 1, reg.titleCalls)
}

func TestResolve_BuildingSelectionOutOfRange(t *testing.T) {
	reg := &fakeRegistry{
		titles: []models.BuildingRecord{
			{RegistryKey: "pk-1"}, {RegistryKey: "pk-2"},
		},
	}
	p := newTestPipeline(reg)

	out := p.Resolve(context.Background(), listingText,
		models.Selections{BuildingIndex: intp(5)}, models.Caches{})
	require.Equal(t, models.OutcomeError, out.Kind)
	require.NotNil(t, out.Error)
	assert.Equal(t, "SELECTION_OUT_OF_RANGE", out.Error.Code)
}

func TestResolve_DongFilter(t *testing.T) {
	reg := &fakeRegistry{
		titles: []models.BuildingRecord{
			{RegistryKey: "pk-1", DongName: "제101동", GroundFloors: 5},
			{RegistryKey: "pk-2", DongName: "제102동", GroundFloors: 5},
		},
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 84.5}},
	}
	p := newTestPipeline(reg)

	// The wing named in the listing narrows two candidates down to one, so
	// no selection round-trip is needed.
	text := "수성구 범어동 123-45 102동 3층\n전용: 84.5㎡"
	out := p.Resolve(context.Background(), text, models.Selections{}, models.Caches{})
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	assert.Equal(t, "pk-2", out.Building.RegistryKey)
}

func TestResolve_UnitSelection(t *testing.T) {
	reg := &fakeRegistry{
		titles: singleBuilding(),
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 85}},
		areas: []models.UnitAreaRecord{
			{FloorLabel: "3층", HoName: "301호", Ownership: "전유", MainUsage: "사무소", Area: 40},
			{FloorLabel: "3층", HoName: "302호", Ownership: "전유", MainUsage: "사무소", Area: 45},
		},
	}
	p := newTestPipeline(reg)
	ctx := context.Background()

	text := "수성구 범어동 123-45 3층\n전용: 45㎡"
	out := p.Resolve(ctx, text, models.Selections{}, models.Caches{})
	require.Equal(t, models.OutcomeNeedsUnitSelection, out.Kind)
	require.Len(t, out.Units, 2)
	require.NotNil(t, out.UnitComparison)
	require.NotNil(t, out.UnitComparison.Recommended)
	assert.Equal(t, 1, out.UnitComparison.Recommended.Index)

	out = p.Resolve(ctx, text,
		models.Selections{Unit: &models.UnitIndex{Index: 1}}, *out.Caches)
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	assert.Equal(t, 45.0, out.AreaComparison.SelectedUnitArea)
	assert.True(t, out.AreaComparison.Match)

	// Caches carried the details, so detail lookups ran exactly once.
	assert.Equal(t, 1, reg.floorCalls)
	assert.Equal(t, 1, reg.areaCalls)
}

func TestResolve_UnitAutoMatchByHo(t *testing.T) {
	reg := &fakeRegistry{
		titles: singleBuilding(),
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 85}},
		areas: []models.UnitAreaRecord{
			{FloorLabel: "3층", HoName: "301호", Ownership: "전유", MainUsage: "사무소", Area: 40},
			{FloorLabel: "3층", HoName: "302호", Ownership: "전유", MainUsage: "사무소", Area: 45},
		},
	}
	p := newTestPipeline(reg)

	// The listing names 302호, which matches exactly one candidate.
	text := "수성구 범어동 123-45 3층 302호\n전용: 45㎡"
	out := p.Resolve(context.Background(), text, models.Selections{}, models.Caches{})
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	assert.Equal(t, 45.0, out.AreaComparison.SelectedUnitArea)
}

func TestResolve_WholeFloorSelection(t *testing.T) {
	reg := &fakeRegistry{
		titles: singleBuilding(),
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 85}},
		areas: []models.UnitAreaRecord{
			{FloorLabel: "3층", HoName: "301호", Ownership: "전유", MainUsage: "사무소", Area: 40},
			{FloorLabel: "3층", HoName: "302호", Ownership: "전유", MainUsage: "사무소", Area: 45},
		},
	}
	p := newTestPipeline(reg)

	text := "수성구 범어동 123-45 3층\n전용: 85㎡"
	out := p.Resolve(context.Background(), text,
		models.Selections{Unit: &models.UnitIndex{WholeFloor: true}}, models.Caches{})
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	assert.True(t, out.AreaComparison.WholeFloor)
	assert.Equal(t, 85.0, out.AreaComparison.SelectedUnitArea)
	assert.Len(t, out.AreaComparison.UnitBreakdown, 2)
	assert.True(t, out.AreaComparison.Match)
}

func TestResolve_ExactPhraseUsage(t *testing.T) {
	reg := &fakeRegistry{
		titles: singleBuilding(),
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "제1종근린생활시설", Area: 84.5}},
	}
	p := newTestPipeline(reg)

	out := p.Resolve(context.Background(), listingText, models.Selections{}, models.Caches{})
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	assert.Equal(t, "제1종 근린생활시설", out.Classification.Judged)
	assert.False(t, out.Classification.Warning)
	assert.False(t, out.Classification.NeedsSelection)
}

func TestResolve_ThreeUnitsWholeFloorResume(t *testing.T) {
	reg := &fakeRegistry{
		titles: singleBuilding(),
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 120}},
		areas: []models.UnitAreaRecord{
			{FloorLabel: "3층", HoName: "301호", Ownership: "전유", MainUsage: "사무소", Area: 40},
			{FloorLabel: "3층", HoName: "302호", Ownership: "전유", MainUsage: "사무소", Area: 45},
			{FloorLabel: "3층", HoName: "303호", Ownership: "전유", MainUsage: "사무소", Area: 35},
		},
	}
	p := newTestPipeline(reg)
	ctx := context.Background()

	// The listing names a unit the registry does not carry, so nothing
	// auto-matches and the caller must choose.
	text := "수성구 범어동 123-45 3층 305호\n전용: 120㎡"
	out := p.Resolve(ctx, text, models.Selections{}, models.Caches{})
	require.Equal(t, models.OutcomeNeedsUnitSelection, out.Kind)
	require.Len(t, out.Units, 3)
	require.NotNil(t, out.UnitComparison)
	assert.Equal(t, 120.0, out.UnitComparison.TotalArea)
	require.NotNil(t, out.UnitComparison.Recommended)
	assert.True(t, out.UnitComparison.Recommended.WholeFloor)

	out = p.Resolve(ctx, text,
		models.Selections{Unit: &models.UnitIndex{WholeFloor: true}}, *out.Caches)
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	assert.Equal(t, 120.0, out.AreaComparison.RegistryArea)
	assert.True(t, out.AreaComparison.WholeFloor)
	assert.Len(t, out.AreaComparison.UnitBreakdown, 3)
}

func TestResolve_UsageSelection(t *testing.T) {
	reg := &fakeRegistry{
		titles: singleBuilding(),
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "점포", Area: 84.5}},
	}
	p := newTestPipeline(reg)
	ctx := context.Background()

	out := p.Resolve(ctx, listingText, models.Selections{}, models.Caches{})
	require.Equal(t, models.OutcomeNeedsUsageSelection, out.Kind)
	assert.Len(t, out.UsageOptions, 3)

	out = p.Resolve(ctx, listingText,
		models.Selections{UsageChoice: "제2종 근린생활시설"}, *out.Caches)
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	assert.Equal(t, "제2종 근린생활시설", out.Classification.Judged)
	assert.Contains(t, out.Text, "• 중개대상물 종류: 제2종 근린생활시설")

	assert.Equal(t, 1, reg.titleCalls)
	assert.Equal(t, 1, reg.floorCalls)
}

func TestResolve_CachesSuppressAllLookups(t *testing.T) {
	reg := &fakeRegistry{titleErr: errors.New("must not be called")}
	p := newTestPipeline(reg)

	caches := models.Caches{
		Buildings: singleBuilding(),
		Details: &models.DetailSet{
			Floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 84.5}},
		},
	}
	out := p.Resolve(context.Background(), listingText, models.Selections{}, caches)
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	assert.Equal(t, 0, reg.titleCalls)
	assert.Equal(t, 0, reg.floorCalls)
	assert.Equal(t, 0, reg.areaCalls)
	assert.Equal(t, 0, reg.unitCalls)
}

func TestResolve_ViolationHeader(t *testing.T) {
	reg := &fakeRegistry{
		titles: singleBuilding(),
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 84.5}},
	}
	p := newTestPipeline(reg)

	text := "⚠️위반건축물⚠️\n" + listingText
	out := p.Resolve(context.Background(), text, models.Selections{}, models.Caches{})
	require.Equal(t, models.OutcomeSuccess, out.Kind)
	require.NotNil(t, out.Parsed)
	assert.True(t, out.Parsed.ViolationBuilding)
	assert.Contains(t, out.Text, "• 건축물대장상 위반 건축물: ⚠️ 위반건축물")
}

// ==========================
// Error Path Tests
// ==========================

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		reg          *fakeRegistry
		expectedCode string
	}{
		{
			name:         "no address in text",
			text:         "보증금: 1,000\n월세: 50",
			reg:          &fakeRegistry{},
			expectedCode: "ADDRESS_PARSE_FAILED",
		},
		{
			name:         "address outside code tables",
			text:         "부산 해운대구 우동 1-1 3층",
			reg:          &fakeRegistry{},
			expectedCode: "ADDRESS_CODE_FAILED",
		},
		{
			name:         "registry lookup fails",
			text:         listingText,
			reg:          &fakeRegistry{titleErr: errors.New("upstream down")},
			expectedCode: "REGISTRY_LOOKUP_FAILED",
		},
		{
			name:         "registry finds nothing",
			text:         listingText,
			reg:          &fakeRegistry{},
			expectedCode: "REGISTRY_LOOKUP_FAILED",
		},
		{
			name:         "detail lookup fails",
			text:         listingText,
			reg:          &fakeRegistry{titles: singleBuilding(), detailErr: errors.New("timeout")},
			expectedCode: "REGISTRY_LOOKUP_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPipeline(tt.reg)
			out := p.Resolve(context.Background(), tt.text, models.Selections{}, models.Caches{})
			require.Equal(t, models.OutcomeError, out.Kind)
			require.NotNil(t, out.Error)
			assert.Equal(t, tt.expectedCode, out.Error.Code)
		})
	}
}

func TestResolve_UnitSelectionOutOfRange(t *testing.T) {
	reg := &fakeRegistry{
		titles: singleBuilding(),
		floors: []models.FloorRecord{{FloorLabel: "3층", MainUsage: "사무소", Area: 85}},
		areas: []models.UnitAreaRecord{
			{FloorLabel: "3층", HoName: "301호", Ownership: "전유", Area: 40},
			{FloorLabel: "3층", HoName: "302호", Ownership: "전유", Area: 45},
		},
	}
	p := newTestPipeline(reg)

	out := p.Resolve(context.Background(), listingText,
		models.Selections{Unit: &models.UnitIndex{Index: 9}}, models.Caches{})
	require.Equal(t, models.OutcomeError, out.Kind)
	assert.Equal(t, "SELECTION_OUT_OF_RANGE", out.Error.Code)
}

// ==========================
// Helper Tests
// ==========================

func TestStripViolationHeader(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		violation bool
		remaining string
	}{
		{"plain marker", "위반건축물\n본문", true, "본문"},
		{"decorated marker", "⚠️위반건축물 있음⚠️\n본문", true, "본문"},
		{"illegal marker", "불법건축물\n본문", true, "본문"},
		{"no marker", "범어동 123-45\n본문", false, "범어동 123-45\n본문"},
		{"marker only", "위반있음", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining, violation := stripViolationHeader(tt.text)
			assert.Equal(t, tt.violation, violation)
			assert.Equal(t, tt.remaining, remaining)
		})
	}
}

func TestFilterByDong(t *testing.T) {
	buildings := []models.BuildingRecord{
		{RegistryKey: "pk-1", DongName: "제101동"},
		{RegistryKey: "pk-2", DongName: "102"},
		{RegistryKey: "pk-3", DongName: ""},
	}

	filtered := filterByDong(buildings, "101동")
	require.Len(t, filtered, 1)
	assert.Equal(t, "pk-1", filtered[0].RegistryKey)

	filtered = filterByDong(buildings, "102동")
	require.Len(t, filtered, 1)
	assert.Equal(t, "pk-2", filtered[0].RegistryKey)

	assert.Empty(t, filterByDong(buildings, "가동"))
	assert.Empty(t, filterByDong(buildings, "103동"))
}

func TestAutoMatchHo(t *testing.T) {
	units := []models.UnitSummary{
		{Ho: "301호"}, {Ho: "302호"}, {Ho: "302호"},
	}

	idx, ok := autoMatchHo("301", units)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	// Ambiguous: two candidates carry the same label.
	_, ok = autoMatchHo("302호", units)
	assert.False(t, ok)

	_, ok = autoMatchHo("", units)
	assert.False(t, ok)

	_, ok = autoMatchHo("401호", units)
	assert.False(t, ok)
}
