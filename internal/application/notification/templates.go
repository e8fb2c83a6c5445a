package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

// Plantillas HTML de los correos. html/template escapa lo que escribe el
// cliente (nombre, mensaje) antes de meterlo en el cuerpo.
var templates = template.Must(template.New("").Parse(`
{{define "otp"}}<h2>Your Admin OTP Code</h2>
<p>Use this OTP to login:</p>
<h1 style="color:green;">{{.OTP}}</h1>
<p>This OTP is valid for {{.Minutes}} minutes.</p>{{end}}

{{define "booking-confirmation"}}<h2>Thank you for your booking, {{.Name}}!</h2>
<p>Your booking request has been received.</p>
<p><b>Reference:</b> {{.Reference}}</p>
<p><b>Requirement:</b> {{.Requirement}}</p>
<p><b>Preferred date:</b> {{.PreferredDate}}</p>
<p>{{.Company}}</p>{{end}}

{{define "booking-admin"}}<h2>New Booking Received</h2>
<p><b>Reference:</b> {{.Reference}}</p>
<p><b>Name:</b> {{.Name}}</p>
<p><b>Phone:</b> {{.Phone}}</p>
<p><b>Email:</b> {{.Email}}</p>
<p><b>Address:</b> {{.Address}}</p>
<p><b>Requirement:</b> {{.Requirement}}</p>{{end}}

{{define "status-update"}}<h2>Status Update</h2>
<p>Hello {{.Name}},</p>
<p>Your booking status is now: <b>{{.Status}}</b></p>
<p>{{.Company}}</p>{{end}}

{{define "contact-admin"}}<h2>New Contact Form Submission</h2>
<p><b>Name:</b> {{.Name}}</p>
<p><b>Email:</b> {{.Email}}</p>
<p><b>Phone:</b> {{if .Phone}}{{.Phone}}{{else}}Not Provided{{end}}</p>
<hr/>
<p><b>Message:</b></p>
<p>{{.Message}}</p>{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("notification: plantilla %s: %w", name, err)
	}
	return buf.String(), nil
}
