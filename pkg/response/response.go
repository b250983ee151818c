// Package response formats report output for the terminal.
package response

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Messages printed in place of a value
const (
	NoDataMessage = "No data available"
	MissingValue  = "(missing)"
)

const (
	labelWidth      = 30
	separatorWidth  = 40
	countValueWidth = 10
	yearValueWidth  = 11
)

// Separator is the rule printed between report blocks
var Separator = strings.Repeat("-", separatorWidth)

// Header prints the banner that opens a report
func Header(w io.Writer, title string) {
	fmt.Fprintf(w, "\nCalculating %s...\n\n", title)
}

// Line prints a label and its value, the label padded to a fixed column
func Line(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "%-*s %v\n", labelWidth, label, value)
}

// NoData prints label followed by the no-data message
func NoData(w io.Writer, label string) {
	Line(w, label, NoDataMessage)
}

// Year prints a birth year right-aligned after its label
func Year(w io.Writer, label string, year int) {
	fmt.Fprintf(w, "%-*s %*d\n", labelWidth, label, yearValueWidth, year)
}

// Count prints one frequency table bucket, both sides right-aligned.
// Invalid buckets are labelled as missing values.
func Count(w io.Writer, value string, valid bool, n int64) {
	if !valid {
		value = MissingValue
	}
	fmt.Fprintf(w, "%*s: %*s\n", labelWidth, value, countValueWidth, humanize.Comma(n))
}

// Rule prints the block separator on its own line
func Rule(w io.Writer) {
	fmt.Fprintln(w, Separator)
}

// Title capitalizes each word of s, e.g. "wednesday" -> "Wednesday"
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Error prints a one-line error message
func Error(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
