// Package catalog holds the fixed set of territories a region can be
// assembled from. The data is static for the life of the process; callers
// receive copies and cannot mutate the catalog.
package catalog

import "sort"

// Group is a named sub-catalog, e.g. "US States".
type Group struct {
	Name        string
	Territories []string
}

// Territory display names keyed to postal abbreviations, matching the
// Natural Earth admin-1 names the rendering backend draws from.
var abbreviations = map[string]string{
	// US states
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT", "Delaware": "DE",
	"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
	"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS",
	"Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN",
	"Mississippi": "MS", "Missouri": "MO", "Montana": "MT", "Nebraska": "NE",
	"Nevada": "NV", "New Hampshire": "NH", "New Jersey": "NJ",
	"New Mexico": "NM", "New York": "NY", "North Carolina": "NC",
	"North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK", "Oregon": "OR",
	"Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
	"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT",
	"Vermont": "VT", "Virginia": "VA", "Washington": "WA",
	"West Virginia": "WV", "Wisconsin": "WI", "Wyoming": "WY",
	// Canadian provinces and territories
	"British Columbia": "BC", "Alberta": "AB", "Saskatchewan": "SK",
	"Manitoba": "MB", "Ontario": "ON", "Québec": "QC",
	"New Brunswick": "NB", "Nova Scotia": "NS", "Prince Edward Island": "PE",
	"Newfoundland and Labrador": "NL", "Yukon": "YT",
	"Northwest Territories": "NT", "Nunavut": "NU",
}

var usStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming",
}

var canadianProvinces = []string{
	"Alberta", "British Columbia", "Manitoba", "New Brunswick",
	"Newfoundland and Labrador", "Northwest Territories", "Nova Scotia",
	"Nunavut", "Ontario", "Prince Edward Island", "Québec", "Saskatchewan",
	"Yukon",
}

// Groups returns the sub-catalogs in display order.
func Groups() []Group {
	return []Group{
		{Name: "US States", Territories: append([]string(nil), usStates...)},
		{Name: "Canadian Provinces", Territories: append([]string(nil), canadianProvinces...)},
	}
}

// All returns every territory name across all groups, sorted.
func All() []string {
	out := make([]string, 0, len(usStates)+len(canadianProvinces))
	out = append(out, usStates...)
	out = append(out, canadianProvinces...)
	sort.Strings(out)
	return out
}

// Contains reports whether name is an exact catalog territory name.
func Contains(name string) bool {
	_, ok := abbreviations[name]
	return ok
}

// Abbreviation returns the postal abbreviation for a territory, or "" when
// the name is not in the catalog.
func Abbreviation(name string) string {
	return abbreviations[name]
}
