package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openswoop/syllabank/pkg/database"
)

var items = []database.CourseListItem{
	{ID: 2, University: "東京工業大学", Code: "MEC.B311", Title: "材料力学", Lecturer: "佐藤 花子, 鈴木 一郎",
		Timetable: "火3-4", Semester: "2Q, 3Q", Department: "機械系", Credit: 1, Year: 2024},
	{ID: 1, University: "東京工業大学", Code: "MEC.A201", Title: "機械力学", Lecturer: "山田 太郎",
		Timetable: "月1-2", Semester: "1Q", Department: "機械系", Credit: 2, Year: 2024},
}

func TestWriteCourseList(t *testing.T) {
	name := filepath.Join(t.TempDir(), "courses")
	require.NoError(t, WriteCourseList(name, items))

	out, err := os.ReadFile(name + ".csv")
	require.NoError(t, err)
	assert.Equal(t, "id,university,code,title,lecturer,timetable,semester,department,credit,year\n"+
		"1,東京工業大学,MEC.A201,機械力学,山田 太郎,月1-2,1Q,機械系,2,2024\n"+
		"2,東京工業大学,MEC.B311,材料力学,\"佐藤 花子, 鈴木 一郎\",火3-4,\"2Q, 3Q\",機械系,1,2024\n", string(out))

	// The input order is left alone
	assert.Equal(t, "MEC.B311", items[0].Code)
}

func TestWriteCourseList_KeepsExtension(t *testing.T) {
	name := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, WriteCourseList(name, nil))

	_, err := os.Stat(name)
	assert.NoError(t, err)
}

func TestMarshalCsv(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarshalCsv(items[:1], &buf))
	assert.Contains(t, buf.String(), "MEC.B311")
}
