package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// smtpConfig reads SMTP settings from the environment. Returns ok=false
// when not configured, in which case senders fall back to mock logging.
func smtpConfig() (host, port, user, pass, fromName string, ok bool) {
	host = os.Getenv("SMTP_HOST")
	port = os.Getenv("SMTP_PORT")
	user = os.Getenv("SMTP_USERNAME")
	pass = os.Getenv("SMTP_PASSWORD")
	fromName = EnvOrDefault("SMTP_FROM_NAME", "Rental Booking")
	ok = host != "" && port != "" && user != "" && pass != ""
	return
}

func sendPlainMail(recipient, subject, body string) error {
	host, port, user, pass, fromName, ok := smtpConfig()
	if !ok {
		log.Printf("[MOCK EMAIL] to:%s subject:%q", recipient, subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", fromName, user)
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", user, pass, host)
	return smtp.SendMail(host+":"+port, auth, user, []string{recipient}, []byte(msg))
}

// SendBookingCreatedEmail tells the guest their booking is reserved and
// when the payment deadline runs out.
func SendBookingCreatedEmail(recipient, guestName, roomName string, checkIn, checkOut, deadline time.Time, total float64) error {
	subject := "Pemesanan diterima — menunggu pembayaran"
	body := fmt.Sprintf(
		"Halo %s,\n\n"+
			"Pemesanan kamar %s untuk %s s/d %s telah kami terima.\n"+
			"Total: Rp %.0f\n\n"+
			"Silakan selesaikan pembayaran sebelum %s. Lewat dari batas itu pemesanan dibatalkan otomatis.\n\n"+
			"Terima kasih.",
		guestName, roomName,
		checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"),
		total,
		deadline.Format("2006-01-02 15:04 MST"),
	)
	return sendPlainMail(recipient, subject, body)
}

// SendBookingConfirmedEmail tells the guest their payment settled.
func SendBookingConfirmedEmail(recipient, guestName, roomName string, checkIn, checkOut time.Time) error {
	subject := "Pembayaran berhasil — pemesanan dikonfirmasi"
	body := fmt.Sprintf(
		"Halo %s,\n\n"+
			"Pembayaran Anda sudah kami terima. Pemesanan kamar %s untuk %s s/d %s telah dikonfirmasi.\n\n"+
			"Sampai jumpa!",
		guestName, roomName,
		checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"),
	)
	return sendPlainMail(recipient, subject, body)
}
