package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAirportCodes(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"인천", []string{"ICN"}},
		{"ICN", []string{"ICN"}},
		{"icn", []string{"ICN"}},
		{"인천공항", []string{"ICN"}},
		{" 뉴욕 ", []string{"JFK"}},
		{"JFK공항", []string{"JFK"}},
		{"LAX", []string{"LAX"}},
		{"", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AirportCodes(tc.in), "input %q", tc.in)
	}
}

func TestAirportCodesSameCanonicalForAllIncheonSpellings(t *testing.T) {
	a := AirportCodes("인천")
	assert.Equal(t, a, AirportCodes("ICN"))
	assert.Equal(t, a, AirportCodes("인천공항"))
}

func TestSeatClass(t *testing.T) {
	cases := map[string]string{
		"비즈니스":     "Business",
		"비즈니스석":    "Business",
		"business": "Business",
		"BUSINESS": "Business",
		"이코노미":     "Economy",
		"economy":  "Economy",
		"First":    "First",
		"":         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SeatClass(in), "input %q", in)
	}
}
