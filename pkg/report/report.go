package report

import (
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteCsv writes in as CSV to fileName, creating or truncating it.
func WriteCsv(in interface{}, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := MarshalCsv(in, file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// MarshalCsv writes in as CSV, with a header row taken from the csv tags.
func MarshalCsv(in interface{}, w io.Writer) error {
	return gocsv.Marshal(in, w)
}
