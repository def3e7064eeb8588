package utils

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// SendEnrollmentEmail notifies the referring employee that their candidate
// enrolled. Delivery failures are logged only.
func SendEnrollmentEmail(email, candidateName, course string) {
	if os.Getenv("SMTP_HOST") == "" {
		return
	}

	// Create a new email message
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your referral enrolled!")
	m.SetBody("text/plain", fmt.Sprintf("Good news: %s enrolled in %s. Thanks for the referral!", candidateName, course))

	// Dialer configuration for the SMTP server
	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	// Sending the email
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send enrollment email to %s: %v", email, err)
		return
	}

	log.Printf("Enrollment email successfully sent to %s", email)
}
