package confirmation

import (
	"io"
	"text/template"
)

var textTemplate = template.Must(template.New("confirmation").Parse(`{{.Title}}
{{.Subtitle}}

Appointment Details
  Date:     {{.Appointment.DisplayDate}}
  Time:     {{.Appointment.Time}}
  Service:  {{.Appointment.Service}}
  Booking:  #{{.Appointment.ID}}
{{- if .Appointment.Notes}}
  Notes:    {{.Appointment.Notes}}
{{- end}}

Your Doctor
  {{.Doctor.Name}} ({{.Doctor.Specialty}})
  {{.Doctor.Experience}} of experience

Patient Information
  Name:     {{.Patient.Name}}
  Email:    {{.Patient.Email}}
  Phone:    {{.Patient.Phone}}
{{- with .Meeting}}

Video Consultation
  Join:     {{.URL}}
{{- if .Code}}
  Code:     {{.Code}}
{{- end}}
{{- end}}

Notifications
{{- range .Notifications}}
  ✓ {{.}}
{{- end}}

Important Notes
{{- range .ImportantNotes}}
  • {{.}}
{{- end}}
`))

// RenderText writes v in a plain-text layout for terminals.
func RenderText(w io.Writer, v View) error {
	return textTemplate.Execute(w, v)
}
