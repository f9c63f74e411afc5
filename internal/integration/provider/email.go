package provider

import (
	"fmt"
	"strings"
)

// EmailMessage is a rendered notification. The simulated provider only logs
// these; a real sender would deliver them.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

func buildPatientConfirmation(req EmailRequest) EmailMessage {
	d := req.Details
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", d.PatientName)
	fmt.Fprintf(&b, "Your appointment with %s is confirmed.\n\n", d.DoctorName)
	writeDetails(&b, d)
	if req.MeetingURL != "" {
		fmt.Fprintf(&b, "\nJoin your video consultation: %s\n", req.MeetingURL)
	}
	b.WriteString("\nPlease arrive 15 minutes early and bring a valid ID and insurance card.\n")

	return EmailMessage{
		To:      req.PatientEmail,
		ToName:  d.PatientName,
		Subject: "Appointment Confirmation: " + d.Service,
		Body:    b.String(),
	}
}

func buildDoctorNotification(req EmailRequest) EmailMessage {
	d := req.Details
	var b strings.Builder
	fmt.Fprintf(&b, "%s,\n\n", d.DoctorName)
	fmt.Fprintf(&b, "A new appointment has been booked by %s (%s).\n\n", d.PatientName, d.PatientEmail)
	writeDetails(&b, d)
	if req.MeetingURL != "" {
		fmt.Fprintf(&b, "\nVideo consultation: %s\n", req.MeetingURL)
	}

	return EmailMessage{
		To:      req.DoctorEmail,
		ToName:  d.DoctorName,
		Subject: "New Appointment: " + d.Service,
		Body:    b.String(),
	}
}

func writeDetails(b *strings.Builder, d EventRequest) {
	fmt.Fprintf(b, "Date: %s\n", d.Date)
	fmt.Fprintf(b, "Time: %s\n", d.Time)
	fmt.Fprintf(b, "Service: %s\n", d.Service)
	if d.Notes != "" {
		fmt.Fprintf(b, "Notes: %s\n", d.Notes)
	}
}
