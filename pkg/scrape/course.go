package scrape

// University is the institution every catalog page belongs to.
const University = "東京工業大学"

// Day is a weekday as stored in the timetable table (Sunday is 0).
type Day int

const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayLabels = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// String returns the single kanji the catalog uses for the day.
func (d Day) String() string {
	if d < Sunday || d > Saturday {
		return ""
	}
	return dayLabels[d]
}

// Period is a two-class-hour block within a day, 1 through 6.
type Period int

const (
	FirstPeriod Period = iota + 1
	SecondPeriod
	ThirdPeriod
	FourthPeriod
	FifthPeriod
	SixthPeriod
)

var periodLabels = [...]string{"", "1-2", "3-4", "5-6", "7-8", "9-10", "11-12"}

// String returns the class-hour range the block covers, e.g. "3-4".
func (p Period) String() string {
	if p < FirstPeriod || p > SixthPeriod {
		return ""
	}
	return periodLabels[p]
}

// Semester is one of the four quarters of the academic year.
type Semester int

const (
	FirstQuarter Semester = iota + 1
	SecondQuarter
	ThirdQuarter
	FourthQuarter
)

var semesterLabels = [...]string{"", "1Q", "2Q", "3Q", "4Q"}

func (s Semester) String() string {
	if s < FirstQuarter || s > FourthQuarter {
		return ""
	}
	return semesterLabels[s]
}

type Lecturer struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type CourseTitle struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CourseSummary is one row of a department listing. An empty Code marks an
// unlisted placeholder row.
type CourseSummary struct {
	Code        string      `json:"code"`
	Title       CourseTitle `json:"title"`
	Lecturers   []Lecturer  `json:"lecturers"`
	Department  string      `json:"department"`
	Term        string      `json:"term"`
	Fingerprint string      `json:"fingerprint"`
}

type TimeSlot struct {
	Day    Day    `json:"day"`
	Period Period `json:"period"`
	Room   string `json:"room"`
}

type LecturePlan struct {
	Count      int    `json:"count"`
	Plan       string `json:"plan"`
	Assignment string `json:"assignment"`
}

type CourseDetail struct {
	Abstract      string        `json:"abstract"`
	Goal          string        `json:"goal"`
	Experience    bool          `json:"experience"`
	Keywords      []string      `json:"keywords"`
	Competencies  []string      `json:"competencies"`
	Flow          string        `json:"flow"`
	Schedule      []LecturePlan `json:"schedule"`
	OutOfClass    string        `json:"outOfClass"`
	Textbook      string        `json:"textbook"`
	ReferenceBook string        `json:"referenceBook"`
	Assessment    string        `json:"assessment"`
	// Related courses hold the first CodeLength characters of each entry.
	RelatedCourses []string `json:"relatedCourses"`
	Prerequisite   string   `json:"prerequisite"`
	Contact        string   `json:"contact"`
	OfficeHours    string   `json:"officeHours"`
	Note           string   `json:"note"`
}

// Course is the full record decoded from one detail page. URL and
// Fingerprint come from the listing row that led to the page.
type Course struct {
	University   string       `json:"university"`
	Title        string       `json:"title"`
	EnglishTitle string       `json:"englishTitle"`
	Department   string       `json:"department"`
	Lecturers    []Lecturer   `json:"lecturers"`
	LectureType  string       `json:"lectureType"`
	Timetable    []TimeSlot   `json:"timetable"`
	Code         string       `json:"code"`
	Credit       int          `json:"credit"`
	Year         int          `json:"year"`
	Semesters    []Semester   `json:"semesters"`
	Language     string       `json:"language"`
	URL          string       `json:"url"`
	Fingerprint  string       `json:"fingerprint"`
	Detail       CourseDetail `json:"detail"`
}
