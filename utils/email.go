package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"strconv"

	"theater_manager/config"

	"gopkg.in/gomail.v2"
)

// TicketConfirmationData feeds the confirmation email template.
type TicketConfirmationData struct {
	TicketCode string
	MovieName  string
	Theater    string
	ShowTime   string
	SeatLabel  string
	Age        string
	Price      float64
}

// SendTicketConfirmationEmail sends the purchase confirmation with the
// ticket QR code attached. Runs async so the purchase response is not
// delayed; failures are logged only.
func SendTicketConfirmationEmail(to string, data TicketConfirmationData, qrPNG []byte) {
	go func() {
		tmpl, err := template.ParseFiles("templates/ticket_confirmation.html")
		if err != nil {
			log.Printf("failed to load email template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render email template: %v", err)
			return
		}

		host := config.Config("SMTP_HOST")
		port, _ := strconv.Atoi(config.ConfigDefault("SMTP_PORT", "587"))
		username := config.Config("SMTP_USERNAME")
		password := config.Config("SMTP_PASSWORD")
		from := config.Config("SMTP_FROM")

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Your ticket "+data.TicketCode)
		m.SetBody("text/html", body.String())

		if len(qrPNG) > 0 {
			filename := fmt.Sprintf("ticket_%s.png", data.TicketCode)
			m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(qrPNG))
				return err
			}))
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send confirmation email to %s: %v", to, err)
		}
	}()
}
