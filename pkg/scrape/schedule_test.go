package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPeriods(t *testing.T) {
	tests := []struct {
		token string
		want  []Period
	}{
		{"1-2", []Period{FirstPeriod}},
		{"3-4", []Period{SecondPeriod}},
		{"5-6", []Period{ThirdPeriod}},
		{"7-8", []Period{FourthPeriod}},
		{"9-10", []Period{FifthPeriod}},
		{"11-12", []Period{SixthPeriod}},
		{"1-4", []Period{FirstPeriod, SecondPeriod}},
		{"3-6", []Period{SecondPeriod, ThirdPeriod}},
		{"5-8", []Period{ThirdPeriod, FourthPeriod}},
		{"7-10", []Period{FourthPeriod, FifthPeriod}},
		{"9-12", []Period{FifthPeriod, SixthPeriod}},
		{"1-6", []Period{FirstPeriod, SecondPeriod, ThirdPeriod}},
		{"3-8", []Period{SecondPeriod, ThirdPeriod, FourthPeriod}},
		{"5-10", []Period{ThirdPeriod, FourthPeriod, FifthPeriod}},
		{"7-12", []Period{FourthPeriod, FifthPeriod, SixthPeriod}},
		{"1-8", []Period{FirstPeriod, SecondPeriod, ThirdPeriod, FourthPeriod}},
		{"3-10", []Period{SecondPeriod, ThirdPeriod, FourthPeriod, FifthPeriod}},
		{"2-4", []Period{FirstPeriod, SecondPeriod}},
		{"5-7", []Period{ThirdPeriod, FourthPeriod}},
		{"", []Period{FirstPeriod}},
		{"13-14", []Period{FirstPeriod}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPeriods(tt.token))
		})
	}
}

func TestExpandPeriods_CoversEveryRange(t *testing.T) {
	for token, want := range periodRanges {
		got := ExpandPeriods(token)
		require.NotEmpty(t, got, token)
		assert.Equal(t, want, got, token)
		for i := 1; i < len(got); i++ {
			assert.Equal(t, got[i-1]+1, got[i], "%s is not contiguous", token)
		}
	}
	assert.Len(t, periodRanges, 19)
}

func TestExpandPeriods_ReturnsCopy(t *testing.T) {
	periods := ExpandPeriods("1-4")
	periods[0] = SixthPeriod
	assert.Equal(t, []Period{FirstPeriod, SecondPeriod}, ExpandPeriods("1-4"))
}

func TestParseTimetable(t *testing.T) {
	slots, err := ParseTimetable("月1-2(W521)\u00a0\u00a0木3-4(W521)")
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{
		{Day: Monday, Period: FirstPeriod, Room: "W521"},
		{Day: Thursday, Period: SecondPeriod, Room: "W521"},
	}, slots)
}

func TestParseTimetable_MergedRange(t *testing.T) {
	slots, err := ParseTimetable(" 火5-8(S421) ")
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{
		{Day: Tuesday, Period: ThirdPeriod, Room: "S421"},
		{Day: Tuesday, Period: FourthPeriod, Room: "S421"},
	}, slots)
}

func TestParseTimetable_RoomList(t *testing.T) {
	slots, err := ParseTimetable("金9-10(W531, W532)")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, TimeSlot{Day: Friday, Period: FifthPeriod, Room: "W531, W532"}, slots[0])
}

func TestParseTimetable_UnknownDay(t *testing.T) {
	slots, err := ParseTimetable("X1-2(オンライン)")
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{{Day: Monday, Period: FirstPeriod, Room: "オンライン"}}, slots)
}

func TestParseTimetable_Empty(t *testing.T) {
	slots, err := ParseTimetable(" \u00a0 ")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestParseTimetable_MissingRoom(t *testing.T) {
	_, err := ParseTimetable("月1-2(W521)\u00a0\u00a0集中講義")
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestParseSemesters(t *testing.T) {
	assert.Equal(t, []Semester{FirstQuarter}, ParseSemesters("1Q"))
	assert.Equal(t, []Semester{SecondQuarter, ThirdQuarter, FourthQuarter}, ParseSemesters("2-4Q"))
	assert.Equal(t, []Semester{ThirdQuarter, FourthQuarter}, ParseSemesters(" 3-4Q\n"))
	assert.Empty(t, ParseSemesters("通年"))
	assert.Empty(t, ParseSemesters(""))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "月", Monday.String())
	assert.Equal(t, "日", Sunday.String())
	assert.Equal(t, "11-12", SixthPeriod.String())
	assert.Equal(t, "3Q", ThirdQuarter.String())
	assert.Empty(t, Period(0).String())
}
