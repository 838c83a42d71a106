// internal/parser/parser_test.go
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LabeledListing(t *testing.T) {
	text := `소재지: 수성구 범어동 123-45
보증금: 1,000/50
관리비: 5만원
면적: 84.5㎡
실면적: 80㎡
주차: 가능
방향: 남향
권리관계: 근저당 없음
입주: 즉시
화장실: 1개
3층 301호`

	record := New().Parse(text)

	assert.Equal(t, "수성구 범어동 123-45", record.Address)
	require.NotNil(t, record.Deposit)
	assert.Equal(t, int64(1000), *record.Deposit)
	require.NotNil(t, record.MonthlyRent)
	assert.Equal(t, int64(50), *record.MonthlyRent)
	assert.Equal(t, "5만원", record.MaintenanceFee)
	assert.Equal(t, 84.5, record.AreaM2)
	assert.Equal(t, 80.0, record.ActualAreaM2)
	assert.Equal(t, "가능", record.Parking)
	assert.Equal(t, "남향", record.Direction)
	assert.Equal(t, "근저당 없음", record.Rights)
	assert.Equal(t, "즉시", record.MoveInDate)
	assert.Equal(t, "1개", record.BathroomCount)
	assert.Equal(t, 3, record.Floor)
	assert.Equal(t, "301호", record.Ho)
	assert.Equal(t, text, record.ItemsText)
}

func TestParse_UnlabeledFragments(t *testing.T) {
	text := "범어동 123-45 3층 301호\n1,000/50\n25평"

	record := New().Parse(text)

	assert.Equal(t, "범어동 123-45 3층 301호", record.Address)
	assert.Equal(t, 3, record.Floor)
	assert.Equal(t, "301호", record.Ho)
	require.NotNil(t, record.Deposit)
	assert.Equal(t, int64(1000), *record.Deposit)
	// 25평 converts to m2.
	assert.InDelta(t, 82.65, record.AreaM2, 0.01)
}

func TestParse_BelowGradeFloor(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"범어동 10 지하1층 상가", -1},
		{"범어동 10 B2층", -2},
		{"범어동 10 2층", 2},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			record := New().Parse(tt.text)
			assert.Equal(t, tt.expected, record.Floor)
		})
	}
}

func TestParse_WingLabel(t *testing.T) {
	record := New().Parse("범어동 123-45 101동 3층 301호")
	assert.Equal(t, "101동", record.Dong)
	assert.Equal(t, 3, record.Floor)
}

func TestParse_NoAddress(t *testing.T) {
	record := New().Parse("보증금: 1,000\n월세: 50")
	assert.Empty(t, record.Address)
}

func TestParse_BulletPrefixStripped(t *testing.T) {
	record := New().Parse("• 소재지: 범어동 123-45\n- 관리비: 3만원")
	assert.Equal(t, "범어동 123-45", record.Address)
	assert.Equal(t, "3만원", record.MaintenanceFee)
}

func TestParse_FullWidthColon(t *testing.T) {
	record := New().Parse("소재지： 범어동 123-45")
	assert.Equal(t, "범어동 123-45", record.Address)
}

func TestParse_ActualAreaInPyeong(t *testing.T) {
	record := New().Parse("범어동 123-45\n실평수: 10평")
	assert.InDelta(t, 33.06, record.ActualAreaM2, 0.01)
}
