package cmd

import (
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openswoop/syllabank/pkg/report"
	"github.com/openswoop/syllabank/pkg/server"
)

var searchFlags struct {
	university, department, quarter, grade, lecturer, title, timetable []string
	year                                                                []int
	out                                                                 string
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog",
	Long: `Lists the stored courses matching every given filter as CSV. Each
filter may be repeated to match any of several values.`,
	Example: `  syllabank search --department 機械系 --quarter 1 --grade 200
  syllabank search --timetable 1-1 --timetable 3-2 --out monday-wednesday`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Same filters as the HTTP API
		values := url.Values{
			"university": searchFlags.university,
			"department": searchFlags.department,
			"quarter":    searchFlags.quarter,
			"grade":      searchFlags.grade,
			"lecturer":   searchFlags.lecturer,
			"title":      searchFlags.title,
			"timetable":  searchFlags.timetable,
		}
		for _, y := range searchFlags.year {
			values.Add("year", strconv.Itoa(y))
		}
		q, err := server.ParseSearchQuery(values)
		if err != nil {
			return err
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		items, err := db.SearchCourses(cmd.Context(), q)
		if err != nil {
			return err
		}
		if searchFlags.out != "" {
			return report.WriteCourseList(searchFlags.out, items)
		}
		return report.MarshalCsv(items, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	f := searchCmd.Flags()
	f.StringSliceVar(&searchFlags.university, "university", nil, "University name")
	f.StringSliceVar(&searchFlags.department, "department", nil, "Department name")
	f.IntSliceVar(&searchFlags.year, "year", nil, "Academic year")
	f.StringSliceVar(&searchFlags.quarter, "quarter", nil, "Quarter, 1 to 4")
	f.StringSliceVar(&searchFlags.grade, "grade", nil, "Grade band, e.g. 200")
	f.StringSliceVar(&searchFlags.lecturer, "lecturer", nil, "Part of a lecturer's name")
	f.StringSliceVar(&searchFlags.title, "title", nil, "Part of the course title")
	f.StringSliceVar(&searchFlags.timetable, "timetable", nil, "Day and period as <day>-<period>, Sunday is day 0")
	f.StringVarP(&searchFlags.out, "out", "o", "", "Write the results to this CSV file instead of stdout")
}
