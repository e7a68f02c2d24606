package email

import (
	"bytes"
	"html/template"
	"strings"

	"reminder-engine/internal/domain/delivery"
)

var reminderHTML = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="font-family:Arial,Helvetica,sans-serif;color:#1f2937;line-height:1.5;">
<p>{{.Greeting}}</p>
{{range .Lines}}<p>{{.}}</p>
{{end}}{{if .UnsubscribeURL}}<p style="font-size:12px;color:#6b7280;">Don't want these reminders? <a href="{{.UnsubscribeURL}}">Unsubscribe</a></p>
{{end}}</body>
</html>
`))

type reminderView struct {
	Subject        string
	Greeting       string
	Lines          []string
	UnsubscribeURL string
}

// renderBodies returns the HTML and plain-text versions of one reminder email.
func renderBodies(subject string, payload delivery.Payload) (string, string, error) {
	var lines []string
	for _, l := range strings.Split(payload.Message, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	var buf bytes.Buffer
	err := reminderHTML.Execute(&buf, reminderView{
		Subject:        subject,
		Greeting:       payload.Greeting(),
		Lines:          lines,
		UnsubscribeURL: payload.UnsubscribeURL,
	})
	if err != nil {
		return "", "", err
	}

	text := payload.WithUnsubscribeLine(payload.Greeting() + "\n\n" + payload.Message)
	return buf.String(), text, nil
}
