package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	rows []interface{}
	fail error
}

func (r *recorder) Insert(list ...interface{}) error {
	if r.fail != nil {
		return r.fail
	}
	for _, row := range list {
		if c, ok := row.(*CourseEntity); ok {
			c.ID = 7
		}
		r.rows = append(r.rows, row)
	}
	return nil
}

func TestCourseRows_Persist(t *testing.T) {
	r := &recorder{}
	rows := &courseRows{course: sampleCourse()}

	require.NoError(t, rows.Persist(r))
	assert.Equal(t, int64(7), rows.ID)

	// course, 2 lecturers, 2 timetables, 2 semesters, 2 keywords, 1 competency, 2 plans
	require.Len(t, r.rows, 12)
	for _, row := range r.rows[1:] {
		switch e := row.(type) {
		case *LecturerEntity:
			assert.Equal(t, int64(7), e.CourseID)
		case *TimetableEntity:
			assert.Equal(t, int64(7), e.CourseID)
		case *SemesterEntity:
			assert.Equal(t, int64(7), e.CourseID)
		case *KeywordEntity:
			assert.Equal(t, int64(7), e.CourseID)
		case *CompetencyEntity:
			assert.Equal(t, int64(7), e.CourseID)
		case *ScheduleEntity:
			assert.Equal(t, int64(7), e.CourseID)
		default:
			t.Fatalf("unexpected row %T", row)
		}
	}
}

func TestRelatedRows_PersistKeepsRepeats(t *testing.T) {
	r := &recorder{}
	codes := []string{"MEC.A202", "MEC.A202", "なし"}

	require.NoError(t, relatedRows{CourseKey{3}, codes}.Persist(r))
	require.Len(t, r.rows, 3)
	for i, row := range r.rows {
		e := row.(*RelatedCourseEntity)
		assert.Equal(t, int64(3), e.CourseID)
		assert.Equal(t, codes[i], e.Code)
	}
}

func TestRelatedRows_PersistError(t *testing.T) {
	boom := errors.New("disk I/O error")
	err := relatedRows{CourseKey{3}, []string{"MEC.A202"}}.Persist(&recorder{fail: boom})
	assert.ErrorIs(t, err, boom)
}
