package analysis

import "strings"

// Persona enum: gaya feedback yang dikonfigurasi user
type Persona string

const (
	PersonaSavage       Persona = "SAVAGE"
	PersonaProfessional Persona = "PROFESSIONAL"
	PersonaGentle       Persona = "GENTLE"
)

// ParsePersona normalizes a configured persona string. Unknown values fall
// back to PROFESSIONAL so a typo in the config never breaks analysis.
func ParsePersona(s string) Persona {
	switch Persona(strings.ToUpper(strings.TrimSpace(s))) {
	case PersonaSavage:
		return PersonaSavage
	case PersonaGentle:
		return PersonaGentle
	default:
		return PersonaProfessional
	}
}
