// internal/addrcode/resolver_test.go
package addrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	r := New()

	tests := []struct {
		name    string
		address string
		sigungu string
		bjdong  string
		bun     string
		ji      string
	}{
		{
			name:    "full daegu address",
			address: "대구 수성구 범어동 123-45",
			sigungu: "27260", bjdong: "10300", bun: "0123", ji: "0045",
		},
		{
			name:    "district without city",
			address: "수성구 범어동 123-45",
			sigungu: "27260", bjdong: "10300", bun: "0123", ji: "0045",
		},
		{
			name:    "bare daegu district defaults",
			address: "중구 동인동 1-1",
			sigungu: "27110", bjdong: "10100", bun: "0001", ji: "0001",
		},
		{
			name:    "seoul jung-gu distinct from daegu",
			address: "서울 중구 명동 5",
			sigungu: "11140", bjdong: "12400", bun: "0005", ji: "0000",
		},
		{
			name:    "lot without ji",
			address: "수성구 범어동 123",
			sigungu: "27260", bjdong: "10300", bun: "0123", ji: "0000",
		},
		{
			name:    "beonji suffix",
			address: "수성구 범어동 123번지",
			sigungu: "27260", bjdong: "10300", bun: "0123", ji: "0000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := r.Resolve(tt.address)
			assert.Equal(t, tt.sigungu, code.SigunguCode)
			assert.Equal(t, tt.bjdong, code.BjdongCode)
			assert.Equal(t, tt.bun, code.Bun)
			assert.Equal(t, tt.ji, code.Ji)
			assert.True(t, code.Complete())
		})
	}
}

func TestResolve_Incomplete(t *testing.T) {
	r := New()

	tests := []struct {
		name    string
		address string
	}{
		{"empty", ""},
		{"unknown district", "부산 해운대구 우동 1-1"},
		{"known district unknown dong", "수성구 없는동 1-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := r.Resolve(tt.address)
			assert.False(t, code.Complete())
		})
	}
}
