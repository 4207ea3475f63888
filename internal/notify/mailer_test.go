package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/flight-reservation/internal/model"
)

func TestRenderReservation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	info := model.FlightInfo{
		FlightNumber:     "KE081",
		Airline:          "Korean Air",
		DepartureAt:      time.Date(2026, 11, 20, 1, 30, 0, 0, time.UTC),
		DepartureAirport: "ICN",
		ArrivalAirport:   "JFK",
		SeatClass:        "Economy",
		Price:            450000,
	}
	subject, html, text := RenderReservation("홍길동", info, seoul)

	assert.Contains(t, subject, "KE081")
	assert.Contains(t, text, "출발: ICN 2026-11-20 10:30")
	assert.Contains(t, text, "도착: JFK 알 수 없음")
	assert.Contains(t, text, "결제 금액: 450,000원")
	assert.Contains(t, html, "<td>Korean Air</td>")
}

func TestRenderReservationEscapesHTML(t *testing.T) {
	_, html, _ := RenderReservation("<b>x</b>", model.FlightInfo{}, nil)
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, html, "<td>알 수 없음</td>")
}

func TestNotifyReservationWithoutRecipient(t *testing.T) {
	m := NewMailerService("key", "C-AIR", "no-reply@c-air.example", time.UTC)
	ok, msg := m.NotifyReservation(context.Background(), " ", "홍길동", model.FlightInfo{})
	assert.False(t, ok)
	assert.Equal(t, "recipient email is empty", msg)
}
