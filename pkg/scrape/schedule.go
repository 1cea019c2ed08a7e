package scrape

import (
	"fmt"
	"regexp"
	"strings"
)

// Timetable groups are joined by two non-breaking spaces.
const slotSeparator = "\u00a0\u00a0"

var roomR = regexp.MustCompile(`\(([^()]*)[()]`)

var dayKanji = map[rune]Day{
	'月': Monday,
	'火': Tuesday,
	'水': Wednesday,
	'木': Thursday,
	'金': Friday,
	'土': Saturday,
	'日': Sunday,
}

// periodRanges lists every range the catalog template produces. Merged
// ranges expand to each block they cover; the last entry is the block the
// range ends in.
var periodRanges = map[string][]Period{
	"1-2":   {FirstPeriod},
	"3-4":   {SecondPeriod},
	"5-6":   {ThirdPeriod},
	"7-8":   {FourthPeriod},
	"9-10":  {FifthPeriod},
	"11-12": {SixthPeriod},
	"1-4":   {FirstPeriod, SecondPeriod},
	"3-6":   {SecondPeriod, ThirdPeriod},
	"5-8":   {ThirdPeriod, FourthPeriod},
	"7-10":  {FourthPeriod, FifthPeriod},
	"9-12":  {FifthPeriod, SixthPeriod},
	"1-6":   {FirstPeriod, SecondPeriod, ThirdPeriod},
	"3-8":   {SecondPeriod, ThirdPeriod, FourthPeriod},
	"5-10":  {ThirdPeriod, FourthPeriod, FifthPeriod},
	"7-12":  {FourthPeriod, FifthPeriod, SixthPeriod},
	"1-8":   {FirstPeriod, SecondPeriod, ThirdPeriod, FourthPeriod},
	"3-10":  {SecondPeriod, ThirdPeriod, FourthPeriod, FifthPeriod},
	"2-4":   {FirstPeriod, SecondPeriod},
	"5-7":   {ThirdPeriod, FourthPeriod},
}

// ExpandPeriods maps a class-hour range such as "3-6" to the ordered blocks
// it covers. The result is never empty: an unknown range yields FirstPeriod.
func ExpandPeriods(token string) []Period {
	if periods, ok := periodRanges[token]; ok {
		return append([]Period(nil), periods...)
	}
	return []Period{FirstPeriod}
}

// ParseTimetable decodes a timetable cell of groups such as "月1-4(W521)".
// Unknown days fall back to Monday. A group without a room fails the page.
func ParseTimetable(cell string) ([]TimeSlot, error) {
	var slots []TimeSlot
	for _, group := range strings.Split(strings.TrimSpace(cell), slotSeparator) {
		group = strings.TrimSpace(group)
		if group == "" {
			break
		}

		runes := []rune(group)
		day, ok := dayKanji[runes[0]]
		if !ok {
			day = Monday
		}

		room := roomR.FindStringSubmatch(group)
		if room == nil {
			return nil, fmt.Errorf("%w: no room in timetable %q", ErrExtraction, group)
		}

		for _, period := range ExpandPeriods(periodToken(runes[1:])) {
			slots = append(slots, TimeSlot{Day: day, Period: period, Room: room[1]})
		}
	}
	return slots, nil
}

// periodToken takes the leading run of digits and hyphens.
func periodToken(runes []rune) string {
	end := 0
	for end < len(runes) && (runes[end] == '-' || (runes[end] >= '0' && runes[end] <= '9')) {
		end++
	}
	return string(runes[:end])
}

var semesterRanges = map[string][]Semester{
	"1Q":   {FirstQuarter},
	"2Q":   {SecondQuarter},
	"3Q":   {ThirdQuarter},
	"4Q":   {FourthQuarter},
	"1-2Q": {FirstQuarter, SecondQuarter},
	"1-3Q": {FirstQuarter, SecondQuarter, ThirdQuarter},
	"1-4Q": {FirstQuarter, SecondQuarter, ThirdQuarter, FourthQuarter},
	"2-3Q": {SecondQuarter, ThirdQuarter},
	"2-4Q": {SecondQuarter, ThirdQuarter, FourthQuarter},
	"3-4Q": {ThirdQuarter, FourthQuarter},
}

// ParseSemesters expands a quarter token such as "2-4Q". Unknown tokens
// assign no quarter.
func ParseSemesters(token string) []Semester {
	quarters, ok := semesterRanges[strings.TrimSpace(token)]
	if !ok {
		return nil
	}
	return append([]Semester(nil), quarters...)
}
