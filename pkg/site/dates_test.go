package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2020-03-01T08:30Z", time.Date(2020, 3, 1, 8, 30, 0, 0, time.UTC)},
		{"2020-03-01T08:30:15Z", time.Date(2020, 3, 1, 8, 30, 15, 0, time.UTC)},
		{"2020-03-01T08:00", time.Date(2020, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"2020-03-01", time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-3-1", time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2020/03/01", time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2020.03.01", time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"01.03.2020", time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-03-01 12:30 GMT", time.Date(2020, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2020-03-01 12:30UTC", time.Date(2020, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2020-03-01 12:30 UT", time.Date(2020, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2020-03-01 T 12:30Z", time.Date(2020, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"15-Jan-2020", time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15-JAN-2020", time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Jan-15-2020", time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15 Jan 2020", time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15-Jan-2020 10:30Z", time.Date(2020, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"1999-04-DD", time.Date(1999, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"1991-07-22Thh:mmZ", time.Date(1991, 7, 22, 0, 0, 0, 0, time.UTC)},
		{"2020-04", time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},

		// all template or unusable input maps to the zero time
		{"", time.Time{}},
		{"CCYY-MM-DD", time.Time{}},
		{"CCYY-MM-DDThh:mmZ", time.Time{}},
		{"(CCYY-MM-DDThh:mmZ)", time.Time{}},
		{"YYYY-MM-DD", time.Time{}},
		{"0000-00-00", time.Time{}},
		{"NONE", time.Time{}},
		{"12:00", time.Time{}},
		{"9:15:30", time.Time{}},
		{"no idea", time.Time{}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, parseDate(tc.in), "parseDate(%q)", tc.in)
	}
}

func TestParseEffectiveDates(t *testing.T) {
	assert := assert.New(t)

	eff := parseEffectiveDates("2018-02-01/2019-07-01")
	assert.Equal(time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), eff.From)
	assert.Equal(time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC), eff.To)

	eff = parseEffectiveDates("2018-02-01/CCYY-MM-DD")
	assert.Equal(time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), eff.From)
	assert.True(eff.To.IsZero(), "open range")

	eff = parseEffectiveDates("2018-02-01")
	assert.Equal(time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), eff.From)
	assert.True(eff.To.IsZero())
}
