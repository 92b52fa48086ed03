package mailer

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/crimealert/beacon/internal/models"
)

// Subject is the subject line of every incident alert.
const Subject = "CrimeAlert: A new incident has been reported near you"

const defaultTemplate = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6;">
	<p>Hello {{.Greeting}},</p>
	<p>A new crime has been reported in your vicinity. Please stay alert and be aware of your surroundings.</p>
	<h3 style="color: #c0392b;">Incident Details:</h3>
	<ul style="list-style-type: none; padding-left: 0;">
		<li><strong>Title:</strong> {{.Title}}</li>
		<li><strong>Type:</strong> {{.CrimeType}}</li>
		<li><strong>Description:</strong><br>{{nl2br .Description}}</li>
		{{if .LocationHint}}<li><strong>Approximate location:</strong> {{.LocationHint}}</li>
		{{end}}
	</ul>
	<p>Thank you for being a part of the CrimeAlert community.</p>
	<p><strong>- The CrimeAlert Team</strong></p>
</body>
</html>
`

// alertData is the template context for one alert email.
type alertData struct {
	Greeting     string
	Title        string
	CrimeType    string
	Description  string
	LocationHint string
}

// Composer renders alert messages from a report and a recipient.
type Composer struct {
	tmpl *template.Template
}

// NewComposer creates a composer using the built-in alert template.
func NewComposer() *Composer {
	return &Composer{tmpl: template.Must(newTemplate().Parse(defaultTemplate))}
}

// NewComposerFromFile creates a composer from a template file, allowing
// operators to override the alert body without rebuilding the service.
func NewComposerFromFile(path string) (*Composer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mail template %q: %w", path, err)
	}

	tmpl, err := newTemplate().Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail template %q: %w", path, err)
	}

	return &Composer{tmpl: tmpl}, nil
}

// Compose renders the alert for one recipient. The location hint is optional;
// when empty the rendered body simply omits the location line.
func (c *Composer) Compose(
	report models.ReportSubmitted,
	recipient models.RecipientCandidate,
	locationHint string,
) (Message, error) {
	greeting := recipient.Username
	if greeting == "" {
		greeting = "there"
	}

	var html strings.Builder
	err := c.tmpl.Execute(&html, alertData{
		Greeting:     greeting,
		Title:        report.Title,
		CrimeType:    report.CrimeType,
		Description:  report.Description,
		LocationHint: locationHint,
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render alert template: %w", err)
	}

	text := fmt.Sprintf(
		"Hello %s,\nA new crime has been reported near you. Title: %s. Description: %s",
		greeting, report.Title, report.Description,
	)
	if locationHint != "" {
		text += fmt.Sprintf("\nApproximate location: %s", locationHint)
	}

	return Message{
		ToEmail:  recipient.Email,
		ToName:   recipient.Username,
		Subject:  Subject,
		HTMLBody: html.String(),
		TextBody: text,
	}, nil
}

func newTemplate() *template.Template {
	return template.New("alert").Funcs(template.FuncMap{"nl2br": nl2br})
}

// nl2br escapes the text and turns newlines into <br> tags, preserving the
// line structure of multi-line descriptions in the HTML body.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	//nolint:gosec // input is escaped above; only <br> tags are added.
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
