package summary

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/iudanet/carenest/internal/models"
)

const summaryTemplate = `
=== Health Summary: {{.Profile.DisplayName}} ===

Period:    {{date .From}} .. {{date .To}} ({{.Days}} days)
Generated: {{.GeneratedAt.Format "2006-01-02 15:04"}}
{{- if .Profile.Age}}
Age:       {{deref .Profile.Age}}
{{- end}}

--- Daily logs ({{.LogCount}}) ---
{{- if .LogCount}}
Avg intensity: {{printf "%.1f" .Averages.Intensity}} / 10
Avg sleep:     {{printf "%.1f" .Averages.Sleep}} ({{sleep .Averages.Sleep}})
Avg appetite:  {{printf "%.1f" .Averages.Appetite}} ({{appetite .Averages.Appetite}})
Avg mood:      {{printf "%.1f" .Averages.Mood}} ({{mood .Averages.Mood}})
Avg water:     {{printf "%.1f" .Averages.Hydration}} glasses
{{- else}}
No logs in this period.
{{- end}}
{{- if .Symptoms}}

Symptoms:
{{- range .Symptoms}}
  {{.Date}} {{.Time}} [{{.Intensity}}/10] {{.Symptoms}}
{{- end}}
{{- end}}

--- Medications ---
{{- range .Medications}}
  [{{if .Taken}}x{{else}} {{end}}] {{.Name}}{{if .Time}} at {{.Time}}{{end}}
{{- else}}
  None
{{- end}}

--- Appointments ---
{{- range .Appointments}}
  {{.Date}} {{.Provider}}{{if .Reason}}: {{.Reason}}{{end}}
{{- else}}
  None in this period
{{- end}}
{{- if .FollowUps}}

Upcoming follow-ups:
{{- range .FollowUps}}
  {{.FollowUp}} {{.Provider}}
{{- end}}
{{- end}}

--- Emergency ---
Allergies: {{if .Emergency.Allergies}}{{join .Emergency.Allergies}}{{else}}none recorded{{end}}
{{- range .Emergency.Contacts}}
Contact:   {{.Name}}{{if .Relationship}} ({{.Relationship}}){{end}} {{.Phone}}
{{- end}}
{{- if .Emergency.Hospital}}
Hospital:  {{.Emergency.Hospital}}
{{- end}}
{{- if .Emergency.Insurance}}
Insurance: {{.Emergency.Insurance}}
{{- end}}

{{disclaimer}}
`

var tmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"date":       func(t time.Time) string { return t.Format(models.DateLayout) },
	"deref":      func(v *int) int { return *v },
	"sleep":      func(v float64) string { return models.SleepLabel(round(v)) },
	"appetite":   func(v float64) string { return models.AppetiteLabel(round(v)) },
	"mood":       func(v float64) string { return models.MoodLabel(round(v)) },
	"join":       func(items []string) string { return strings.Join(items, ", ") },
	"disclaimer": func() string { return Disclaimer },
}).Parse(summaryTemplate))

// Render writes s as plain text
func Render(w io.Writer, s *Summary) error {
	if err := tmpl.Execute(w, s); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	return nil
}

func round(v float64) int {
	return int(v + 0.5)
}

