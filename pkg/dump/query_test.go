package dump

import (
	"testing"
	"time"

	"github.com/esfalsa/pallets/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{Kind: Nations, Date: NewDate(2023, time.May, 2)},
		{Kind: Regions, Date: NewDate(2023, time.May, 1)},
		{Kind: Nations, Date: NewDate(2023, time.May, 1)},
		{Kind: Regions, Date: NewDate(2023, time.May, 3)},
		{Kind: Regions, Date: NewDate(2023, time.May, 2)},
		{Kind: Nations, Date: NewDate(2022, time.December, 31)},
	}
}

func TestQuery_KindFilter(t *testing.T) {
	records := []Record{
		{Kind: Nations, Date: NewDate(2023, time.May, 1)},
		{Kind: Regions, Date: NewDate(2023, time.May, 2)},
	}

	got := Query{Kind: Regions}.Apply(records)
	assert.Equal(t, []Record{{Kind: Regions, Date: NewDate(2023, time.May, 2)}}, got)
}

func TestQuery_Ordering(t *testing.T) {
	tests := []struct {
		name     string
		order    Order
		expected []Record
	}{
		{
			name:  "ascending by date then kind",
			order: Ascending,
			expected: []Record{
				{Kind: Nations, Date: NewDate(2022, time.December, 31)},
				{Kind: Regions, Date: NewDate(2023, time.May, 1)},
				{Kind: Nations, Date: NewDate(2023, time.May, 1)},
				{Kind: Regions, Date: NewDate(2023, time.May, 2)},
				{Kind: Nations, Date: NewDate(2023, time.May, 2)},
				{Kind: Regions, Date: NewDate(2023, time.May, 3)},
			},
		},
		{
			name:  "descending reverses the full comparison",
			order: Descending,
			expected: []Record{
				{Kind: Regions, Date: NewDate(2023, time.May, 3)},
				{Kind: Nations, Date: NewDate(2023, time.May, 2)},
				{Kind: Regions, Date: NewDate(2023, time.May, 2)},
				{Kind: Nations, Date: NewDate(2023, time.May, 1)},
				{Kind: Regions, Date: NewDate(2023, time.May, 1)},
				{Kind: Nations, Date: NewDate(2022, time.December, 31)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query{Order: tt.order}.Apply(sampleRecords())
			assert.Equal(t, tt.expected, got)

			for i := 1; i < len(got); i++ {
				c := got[i-1].Compare(got[i])
				if tt.order == Ascending {
					assert.LessOrEqual(t, c, 0)
				} else {
					assert.GreaterOrEqual(t, c, 0)
				}
			}
		})
	}
}

func TestQuery_DateRange(t *testing.T) {
	tests := []struct {
		name     string
		query    Query
		expected int
	}{
		{name: "no bounds", query: Query{}, expected: 6},
		{name: "inclusive start", query: Query{Start: NewDate(2023, time.May, 2)}, expected: 3},
		{name: "inclusive end", query: Query{End: NewDate(2023, time.May, 1)}, expected: 3},
		{name: "single day", query: Query{Start: NewDate(2023, time.May, 2), End: NewDate(2023, time.May, 2)}, expected: 2},
		{name: "kind and range", query: Query{Kind: Nations, Start: NewDate(2023, time.January, 1)}, expected: 2},
		{name: "start after end", query: Query{Start: NewDate(2023, time.May, 3), End: NewDate(2023, time.May, 1)}, expected: 0},
		{name: "no matches", query: Query{Start: NewDate(2030, time.January, 1)}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.query.Apply(sampleRecords())
			assert.Len(t, got, tt.expected)
			assert.NotNil(t, got)
			for _, r := range got {
				assert.True(t, tt.query.Match(r))
			}
		})
	}
}

func TestQuery_StartAfterEndAlwaysEmpty(t *testing.T) {
	records := sampleRecords()
	for _, r := range records {
		q := Query{Start: r.Date.AddDate(0, 0, 1), End: r.Date}
		assert.Empty(t, q.Apply(records))
	}
}

func TestQuery_Pure(t *testing.T) {
	records := sampleRecords()
	original := append([]Record(nil), records...)

	q := Query{Kind: Regions, Order: Descending}
	first := q.Apply(records)
	second := q.Apply(records)

	assert.Equal(t, first, second)
	assert.Equal(t, original, records, "input must not be reordered")
}

func TestQuery_EmptyInput(t *testing.T) {
	assert.Empty(t, Query{}.Apply(nil))
	assert.Empty(t, Query{Order: Descending}.Apply([]Record{}))
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		input       string
		expected    Order
		expectError bool
	}{
		{input: "", expected: Ascending},
		{input: "asc", expected: Ascending},
		{input: "Ascending", expected: Ascending},
		{input: "desc", expected: Descending},
		{input: "descending", expected: Descending},
		{input: "sideways", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			order, err := ParseOrder(tt.input)
			if tt.expectError {
				assert.ErrorIs(t, err, errors.ErrInvalidOrder)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, order)
		})
	}
}
