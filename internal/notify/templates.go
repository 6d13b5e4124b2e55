package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/BruksfildServices01/garage-booking/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type mailData struct {
	Title       string
	Garage      string
	Rescheduled bool

	ID      uint
	Name    string
	Email   string
	Phone   string
	Date    string
	Time    string
	Service string
	Message string
}

func newMailData(garage string, b models.Booking, rescheduled bool) mailData {
	return mailData{
		Garage:      garage,
		Rescheduled: rescheduled,
		ID:          b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Date:        b.Date,
		Time:        b.Time,
		Service:     b.Service,
		Message:     b.Message,
	}
}

func render(name string, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// CustomerMessage is the confirmation sent to the person who booked.
func CustomerMessage(garage string, b models.Booking, rescheduled bool) (Message, error) {
	data := newMailData(garage, b, rescheduled)
	data.Title = "Afspraak Bevestiging - " + garage
	if rescheduled {
		data.Title = "Afspraak Verplaatst - " + garage
	}

	html, err := render("customer.html", data)
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      b.Email,
		Subject: data.Title,
		HTML:    html,
		Text: fmt.Sprintf(
			"Afspraak #%d op %s om %s (%s).",
			b.ID, b.Date, b.Time, b.Service,
		),
	}, nil
}

// AdminMessage notifies the garage about a new or moved booking.
func AdminMessage(garage, to string, b models.Booking, rescheduled bool) (Message, error) {
	data := newMailData(garage, b, rescheduled)
	data.Title = fmt.Sprintf("Nieuwe Afspraak #%d - %s", b.ID, b.Name)
	if rescheduled {
		data.Title = fmt.Sprintf("Afspraak Verplaatst #%d - %s", b.ID, b.Name)
	}

	html, err := render("admin.html", data)
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      to,
		Subject: data.Title,
		HTML:    html,
		Text: fmt.Sprintf(
			"%s (%s, %s) heeft geboekt op %s om %s: %s.",
			b.Name, b.Email, b.Phone, b.Date, b.Time, b.Service,
		),
	}, nil
}

// TestMessage checks the SMTP setup from the admin dashboard.
func TestMessage(garage, to string) (Message, error) {
	data := mailData{
		Title:  "Test e-mail van " + garage,
		Garage: garage,
	}

	html, err := render("test.html", data)
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      to,
		Subject: data.Title,
		HTML:    html,
		Text:    "Als u deze e-mail ontvangt, zijn de SMTP-instellingen correct.",
	}, nil
}
