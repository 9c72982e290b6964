package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name    string
		common  []string
		headers []string
		values  []string
		want    []string
		wantOK  bool
	}{
		{
			name:    "reorders to common order",
			common:  []string{"M1", "city", "id"},
			headers: []string{"id", "city", "M1"},
			values:  []string{"1", "NY", "10"},
			want:    []string{"10", "NY", "1"},
			wantOK:  true,
		},
		{
			name:    "drops non common columns",
			common:  []string{"id"},
			headers: []string{"id", "extra"},
			values:  []string{"1", "x"},
			want:    []string{"1"},
			wantOK:  true,
		},
		{
			name:    "empty common",
			common:  nil,
			headers: []string{"id"},
			values:  []string{"1"},
		},
		{
			name:    "missing column",
			common:  []string{"id", "M1"},
			headers: []string{"id"},
			values:  []string{"1"},
		},
		{
			name:    "short row",
			common:  []string{"M1", "id"},
			headers: []string{"id", "M1"},
			values:  []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Project(tt.common, tt.headers, tt.values)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProject_RoundTrip(t *testing.T) {
	record := map[string]string{"id": "7", "city": "Paris", "M1": "3", "M2": "4", "note": "x"}
	headers := []string{"note", "M2", "id", "city", "M1"}
	values := make([]string, len(headers))
	for i, h := range headers {
		values[i] = record[h]
	}
	common := NewHeaderSet("M1", "M2", "city", "id").Sorted()

	row, ok := Project(common, headers, values)
	assert.True(t, ok)
	assert.Len(t, row, len(common))
	for i, name := range common {
		assert.Equal(t, record[name], row[i], name)
	}
}
