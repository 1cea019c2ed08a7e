package scrape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListing(t *testing.T) {
	courses, err := ParseListing(parseHTML(t, listingHTML))
	require.NoError(t, err)
	require.Len(t, courses, 2)

	first := courses[0]
	assert.Equal(t, "MEC.A201", first.Code)
	assert.Equal(t, "機械力学", first.Title.Title)
	assert.Equal(t, "https://www.ocw.titech.ac.jp/index.php?module=General&action=T0300&JWC=202402190&lang=JA", first.Title.URL)
	assert.Equal(t, []Lecturer{
		{Name: "山田 太郎", URL: "https://www.ocw.titech.ac.jp/index.php?module=General&action=T0100&id=1"},
		{Name: "佐藤 花子", URL: "https://www.ocw.titech.ac.jp/index.php?module=General&action=T0100&id=2"},
	}, first.Lecturers)
	assert.Equal(t, "機械系", first.Department)
	assert.Equal(t, "1Q", first.Term)
	assert.Equal(t, "2024-03-21", first.Fingerprint)
}

func TestParseListing_UnlinkedRow(t *testing.T) {
	courses, err := ParseListing(parseHTML(t, listingHTML))
	require.NoError(t, err)

	placeholder := courses[1]
	assert.Empty(t, placeholder.Code)
	assert.Equal(t, CourseTitle{}, placeholder.Title)
	assert.Empty(t, placeholder.Lecturers)
	assert.Empty(t, placeholder.Department)
	assert.Equal(t, "通年", placeholder.Term)
}

func TestParseListing_NoTable(t *testing.T) {
	_, err := ParseListing(parseHTML(t, `<html><body><p>メンテナンス中</p></body></html>`))
	assert.True(t, errors.Is(err, ErrListingNotFound))
}

func TestListing_UnmarshalDoc(t *testing.T) {
	listing := &Listing{URL: "https://www.ocw.titech.ac.jp/index.php?module=General&action=T0100&GakubuCD=4"}
	assert.Equal(t, []string{listing.URL}, listing.Urls())

	require.NoError(t, listing.UnmarshalDoc(parseHTML(t, listingHTML)))
	assert.Len(t, listing.Courses, 2)

	err := listing.UnmarshalDoc(parseHTML(t, `<html></html>`))
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.Contains(t, err.Error(), listing.URL)
}
