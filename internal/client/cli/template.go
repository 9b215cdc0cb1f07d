package cli

import (
	"fmt"
	"text/template"
)

const profileTemplate = `
=== {{.DisplayName}} ===

ID:      {{.ID}}
{{- if .Age }}
Age:     {{deref .Age}}
{{- end}}
Created: {{.CreatedAt.Format "2006-01-02"}}
{{- if .Notes }}
Notes:   {{.Notes}}
{{- end}}
`

const emergencyTemplate = `
=== Emergency Info ===

Allergies:
{{- range $i, $a := .Allergies}}
  {{inc $i}}. {{$a}}
{{- else}}
  none recorded
{{- end}}

Contacts:
{{- range .Contacts}}
  {{.Name}}{{if .Relationship}} ({{.Relationship}}){{end}}: {{.Phone}}
    ID: {{.ID}}
{{- else}}
  none recorded
{{- end}}

Hospital:  {{if .Hospital}}{{.Hospital}}{{else}}-{{end}}
Insurance: {{if .Insurance}}{{.Insurance}}{{else}}-{{end}}
`

var templates = template.Must(template.New("cli").Funcs(template.FuncMap{
	"deref": func(v *int) int { return *v },
	"inc":   func(i int) int { return i + 1 },
}).Parse(""))

func init() {
	template.Must(templates.New("profile").Parse(profileTemplate))
	template.Must(templates.New("emergency").Parse(emergencyTemplate))
}

// render executes a named template into the terminal
func (c *Cli) render(name string, data any) error {
	if err := templates.ExecuteTemplate(c.io, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

const usageText = `
CareNest - family health organizer

Usage:
  carenest [OPTIONS] COMMAND [ARGS]

Options (must come before COMMAND):
  --version                 Show version information
  --db PATH                 Path to local database (default: carenest.db)
  --backend NAME            Storage backend: bbolt, sqlite, memory (default: bbolt)
  --log-level LEVEL         Diagnostics level: debug, info, warn, error (default: warn)
  --hash-code               Store the access code as an argon2id hash
  --access-code CODE        Access code (not recommended, use env var or file)
  --access-code-file PATH   Path to file containing the access code

Access Code Priority (highest to lowest):
  1. CARENEST_ACCESS_CODE environment variable
  2. --access-code-file (file path)
  3. --access-code (command line)
  4. Interactive prompt (fallback)

Commands:
  setup                                   Create the access code
  login                                   Unlock with the access code
  logout                                  Lock the session
  status                                  Show gate state
  change-code                             Change the access code
  reset                                   Erase all data (forgotten code)
  privacy                                 Show the privacy policy

  profile list|add                        Family member profiles
  profile show|edit|delete <profileId>
  log add|list <profileId>                Daily health logs
  log delete <logKey>
  med list|add <profileId>                Medications
  med toggle|delete <profileId> <medId>
  appt list|add <profileId>               Appointments
  appt delete <profileId> <apptId>
  emergency show <profileId>              Emergency info
  emergency add-allergy <profileId> <text>
  emergency remove-allergy <profileId> <number>
  emergency add-contact <profileId>
  emergency remove-contact <profileId> <contactId>
  emergency hospital|insurance <profileId> [text]
  summary <profileId> [days]              Summary for a doctor visit (default 30 days)
  orphans [--purge]                       Records left by deleted profiles

Examples:
  carenest setup
  CARENEST_ACCESS_CODE='1234' carenest profile list
  carenest --backend sqlite --db family.sqlite login
  carenest summary b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 14
`

const privacyText = `
=== CareNest Privacy Policy ===

What is stored
  Family member profiles, daily health logs, medications, appointment notes,
  emergency information and your access code. The access code is kept as
  plain text unless --hash-code is used, then as an argon2id hash.

Where it is stored
  Only in the local database file on this device. There is no server,
  no account, no cloud storage and no tracking. Nothing is sent over the network.

What we don't do
  We don't collect, view, share or sell your health information.

How it is protected
  Commands that show or change data require the access code.
  Anyone who can read the database file can read the data: keep it private.

Your control
  Delete profiles and records at any time, generate summaries for your doctor,
  change the access code, or erase everything with 'carenest reset'.

Limitations
  Data does not move between devices and there is no backup service.
  Deleting the database file deletes all data.

Medical disclaimer
  CareNest is an organization tool only. It does not provide medical advice.`

func (c *Cli) PrintUsage() {
	c.io.Println(usageText)
}
