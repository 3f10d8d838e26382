// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dates

// monthTables maps a locale code to its recognized month words, each in
// lowercase, mapped to the month number. Accent-free variants are listed
// alongside the accented forms so text typed without diacritics still
// matches. The tables are immutable configuration data; runs select
// which locales to consult, they never mutate the tables.
var monthTables = map[string]map[string]int{
	"en": {
		"jan": 1, "january": 1,
		"feb": 2, "february": 2,
		"mar": 3, "march": 3,
		"apr": 4, "april": 4,
		"may": 5,
		"jun": 6, "june": 6,
		"jul": 7, "july": 7,
		"aug": 8, "august": 8,
		"sep": 9, "sept": 9, "september": 9,
		"oct": 10, "october": 10,
		"nov": 11, "november": 11,
		"dec": 12, "december": 12,
	},
	"es": {
		"enero": 1, "febrero": 2, "marzo": 3, "abril": 4,
		"mayo": 5, "junio": 6, "julio": 7, "agosto": 8,
		"septiembre": 9, "setiembre": 9, "octubre": 10,
		"noviembre": 11, "diciembre": 12,
	},
	"fr": {
		"janvier": 1, "février": 2, "fevrier": 2, "mars": 3,
		"avril": 4, "mai": 5, "juin": 6, "juillet": 7,
		"août": 8, "aout": 8, "septembre": 9, "octobre": 10,
		"novembre": 11, "décembre": 12, "decembre": 12,
	},
}

// monthNumber looks word up across the enabled locales and returns its
// month number, or 0 when the word is not a month in any of them.
func monthNumber(word string, locales []string) int {
	for _, loc := range locales {
		if table, ok := monthTables[loc]; ok {
			if m, ok := table[word]; ok {
				return m
			}
		}
	}
	return 0
}
