// Package notify delivers reservation confirmation mails through
// MailerSend.
package notify

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/iliyamo/flight-reservation/internal/model"
	"github.com/iliyamo/flight-reservation/internal/utils"
)

const unknown = "알 수 없음"

// MailerService sends reservation mails.  Delivery is attempted once with
// a 5 second timeout; failures are reported to the caller, never retried.
type MailerService struct {
	Client    *mailersend.Mailersend
	FromEmail string
	FromName  string
	Loc       *time.Location
}

func NewMailerService(apiKey, fromName, fromEmail string, loc *time.Location) *MailerService {
	return &MailerService{
		Client:    mailersend.NewMailersend(apiKey),
		FromEmail: fromEmail,
		FromName:  fromName,
		Loc:       loc,
	}
}

// NotifyReservation mails the confirmation for info to email.
func (m *MailerService) NotifyReservation(ctx context.Context, email, name string, info model.FlightInfo) (bool, string) {
	if strings.TrimSpace(email) == "" {
		return false, "recipient email is empty"
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	subject, htmlBody, textBody := RenderReservation(name, info, m.Loc)

	message := m.Client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: m.FromName, Email: m.FromEmail})
	message.SetRecipients([]mailersend.Recipient{{Name: name, Email: email}})
	message.SetSubject(subject)
	message.SetHTML(htmlBody)
	message.SetText(textBody)

	res, err := m.Client.Email.Send(ctx, message)
	if err != nil {
		log.Printf("notify: send to %s failed: %v", email, err)
		return false, fmt.Sprintf("failed to send email: %v", err)
	}
	id := ""
	if res != nil {
		id = res.Header.Get("X-Message-Id")
	}
	log.Println("Email sent. Message ID:", id)
	return true, "email sent"
}

// RenderReservation builds the subject, HTML and plain-text bodies of the
// confirmation mail.  Blank flight fields render as "알 수 없음".
func RenderReservation(name string, info model.FlightInfo, loc *time.Location) (subject, htmlBody, textBody string) {
	orUnknown := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return unknown
		}
		return s
	}
	when := func(t time.Time) string {
		if t.IsZero() {
			return unknown
		}
		return utils.FormatDateTime(t, loc)
	}
	rows := [][2]string{
		{"항공편", orUnknown(info.FlightNumber)},
		{"항공사", orUnknown(info.Airline)},
		{"출발", orUnknown(info.DepartureAirport) + " " + when(info.DepartureAt)},
		{"도착", orUnknown(info.ArrivalAirport) + " " + when(info.ArrivalAt)},
		{"좌석 등급", orUnknown(info.SeatClass)},
		{"결제 금액", utils.FormatWon(info.Price)},
	}

	subject = fmt.Sprintf("[C-AIR] %s 항공편 예약이 완료되었습니다", orUnknown(info.FlightNumber))

	var h, t strings.Builder
	fmt.Fprintf(&h, "<p>%s님, 예약이 완료되었습니다.</p><table>", html.EscapeString(orUnknown(name)))
	fmt.Fprintf(&t, "%s님, 예약이 완료되었습니다.\n\n", orUnknown(name))
	for _, r := range rows {
		fmt.Fprintf(&h, "<tr><th>%s</th><td>%s</td></tr>", r[0], html.EscapeString(r[1]))
		fmt.Fprintf(&t, "%s: %s\n", r[0], r[1])
	}
	h.WriteString("</table>")
	return subject, h.String(), t.String()
}
