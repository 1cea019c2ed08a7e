package database

import (
	"errors"
	"fmt"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, isDuplicateError(&googleapi.Error{Code: 409}))
	assert.True(t, isDuplicateError(fmt.Errorf("create: %w", &googleapi.Error{Code: 409})))
	assert.False(t, isDuplicateError(&googleapi.Error{Code: 404}))
	assert.False(t, isDuplicateError(errors.New("already exists")))
}

func TestCourseListItemSchema(t *testing.T) {
	schema, err := bigquery.InferSchema(CourseListItem{})
	require.NoError(t, err)

	var names []string
	for _, field := range schema {
		names = append(names, field.Name)
	}
	assert.Equal(t, []string{"id", "university", "code", "title", "lecturer", "timetable", "semester", "department", "credit", "year"}, names)
	assert.Equal(t, bigquery.IntegerFieldType, schema[0].Type)
}
