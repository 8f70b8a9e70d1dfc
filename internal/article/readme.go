package article

import (
	"regexp"
	"strings"
	"text/template"
)

var (
	thanksRe  = regexp.MustCompile(`(?m)^Thank you to.*?$`)
	nomiconRe = regexp.MustCompile(`(?m)^Monstrous Lair|^20 Things`)
)

const readmeTemplate = `# Read Me First

This folder was generated from the {{.Nomicon}} text archive. Each note mirrors
one article of the sourcebook; its random tables carry roller directives, so
clicking a ` + "`dice:`" + ` code rolls on the table that follows it.

{{.ThankYou}}

The text itself is the publisher's. Regenerating this folder from the archive
recreates every note; do not edit the notes in place.{{.OriginalReadme}}
`

// ReadmeInfo gathers, across an entire conversion run, the facts needed to
// synthesize the vault's "READ ME FIRST" note: which sourcebook family the
// archive belongs to and the publisher's acknowledgements line. The archive's
// own read-me article, when present, is appended verbatim.
type ReadmeInfo struct {
	nomicon        string
	thankYou       string
	originalReadme string
	hasOriginal    bool
}

// SaveOriginal records the archive's own read-me article.
func (r *ReadmeInfo) SaveOriginal(contents string) {
	r.originalReadme = contents
	r.hasOriginal = true
}

// UpdateFrom inspects one article for the facts the read-me needs. The first
// article that carries each fact wins.
func (r *ReadmeInfo) UpdateFrom(contents string) {
	if r.thankYou == "" {
		r.thankYou = thanksRe.FindString(contents)
	}

	if r.nomicon == "" {
		switch nomiconRe.FindString(contents) {
		case "Monstrous Lair":
			r.nomicon = "Laironomicon"
		case "20 Things":
			r.nomicon = "Thingonomicon"
		}
	}
}

// Readme renders the read-me note, or ok=false when the run never surfaced
// both the sourcebook family and the acknowledgements line.
func (r *ReadmeInfo) Readme() (string, bool) {
	if r.nomicon == "" || r.thankYou == "" {
		return "", false
	}

	original := ""
	if r.hasOriginal {
		original = "\n\n-----\n\nHere is the original Read Me\n\n" + r.originalReadme
	}

	tmpl := template.Must(template.New("readme").Parse(readmeTemplate))

	var out strings.Builder

	err := tmpl.Execute(&out, struct {
		Nomicon        string
		ThankYou       string
		OriginalReadme string
	}{r.nomicon, r.thankYou, original})
	if err != nil {
		// The template and its data are fixed at compile time.
		panic(err)
	}

	return out.String(), true
}
