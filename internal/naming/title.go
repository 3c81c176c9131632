package naming

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title upper-cases the first letter of each word and lower-cases the rest.
// A Caser keeps state, so one is created per call.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}
