// Package alias maps free-text airport and seat-class input (Korean or
// English names, IATA codes) to the canonical values stored in the database.
//
// Matching is case-insensitive and succeeds when either string contains the
// other. Tables are ordered so lookups are deterministic.
package alias

import "strings"

type entry struct {
	canonical string
	names     []string
}

var airports = []entry{
	{canonical: "ICN", names: []string{"인천", "인천공항", "ICN"}},
	{canonical: "JFK", names: []string{"뉴욕", "JFK", "JFK공항"}},
	{canonical: "GMP", names: []string{"김포", "김포공항", "GMP"}},
	{canonical: "CJU", names: []string{"제주", "제주공항", "CJU"}},
}

var seatClasses = []entry{
	{canonical: "Business", names: []string{"비즈니스", "비즈니스석", "Business"}},
	{canonical: "Economy", names: []string{"이코노미", "이코노미석", "Economy"}},
}

// AirportCodes returns every airport code whose aliases match q. When nothing
// matches, q itself is returned as the only code. Blank input yields nil.
func AirportCodes(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	var codes []string
	for _, e := range airports {
		if matches(e.names, q) {
			codes = append(codes, e.canonical)
		}
	}
	if len(codes) == 0 {
		return []string{q}
	}
	return codes
}

// SeatClass resolves q to the first matching canonical seat class, or
// returns q unchanged.
func SeatClass(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return q
	}
	for _, e := range seatClasses {
		if matches(e.names, q) {
			return e.canonical
		}
	}
	return q
}

func matches(names []string, q string) bool {
	lq := strings.ToLower(q)
	for _, n := range names {
		ln := strings.ToLower(n)
		if strings.Contains(lq, ln) || strings.Contains(ln, lq) {
			return true
		}
	}
	return false
}
