package screening

import (
	"fmt"
	"strings"
)

// Severity is a named severity band
type Severity string

const (
	SeverityMinimal          Severity = "minimal"
	SeverityMild             Severity = "mild"
	SeverityModerate         Severity = "moderate"
	SeverityModeratelySevere Severity = "moderately severe"
	SeveritySevere           Severity = "severe"
)

var severityRanks = map[Severity]int{
	SeverityMinimal:          0,
	SeverityMild:             1,
	SeverityModerate:         2,
	SeverityModeratelySevere: 3,
	SeveritySevere:           4,
}

// Rank orders severities from minimal (0) to severe (4). Unknown labels rank -1.
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return -1
}

// Band maps a minimum score to a severity label
type Band struct {
	Min      int
	Severity Severity
}

// Instrument is a fixed scoring protocol: item count plus severity bands
// ordered from the highest minimum to the lowest. The zero value has no
// items and no bands and rejects every answer set.
type Instrument struct {
	name  string
	items int
	bands []Band
}

// PHQ9 is the 9-item depression questionnaire
var PHQ9 = Instrument{
	name:  "phq9",
	items: 9,
	bands: []Band{
		{Min: 20, Severity: SeveritySevere},
		{Min: 15, Severity: SeverityModeratelySevere},
		{Min: 10, Severity: SeverityModerate},
		{Min: 5, Severity: SeverityMild},
		{Min: 0, Severity: SeverityMinimal},
	},
}

// GAD7 is the 7-item anxiety questionnaire
var GAD7 = Instrument{
	name:  "gad7",
	items: 7,
	bands: []Band{
		{Min: 15, Severity: SeveritySevere},
		{Min: 10, Severity: SeverityModerate},
		{Min: 5, Severity: SeverityMild},
		{Min: 0, Severity: SeverityMinimal},
	},
}

var instruments = map[string]Instrument{
	PHQ9.name: PHQ9,
	GAD7.name: GAD7,
}

// Lookup finds an instrument by name, case-insensitively ("PHQ9", "phq9").
func Lookup(name string) (Instrument, bool) {
	in, ok := instruments[strings.ToLower(name)]
	return in, ok
}

// Names lists the supported instrument names
func Names() []string {
	return []string{PHQ9.name, GAD7.name}
}

func (in Instrument) Name() string { return in.name }

// Items is the exact number of answers the instrument takes
func (in Instrument) Items() int { return in.items }

// Bands returns a copy of the severity table, highest minimum first
func (in Instrument) Bands() []Band {
	return append([]Band(nil), in.bands...)
}

// RequiredMessage is the client-facing validation message for this instrument
func (in Instrument) RequiredMessage() string {
	return fmt.Sprintf("%d answers are required", in.items)
}

// Classify maps an aggregate score to its severity band. Scores below the
// lowest minimum fall into the lowest band; an instrument without bands
// yields the empty severity.
func (in Instrument) Classify(score int) Severity {
	if len(in.bands) == 0 {
		return ""
	}
	for _, b := range in.bands {
		if score >= b.Min {
			return b.Severity
		}
	}
	return in.bands[len(in.bands)-1].Severity
}
