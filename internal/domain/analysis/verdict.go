package analysis

// ScoreBracket enum untuk bucket skor
type ScoreBracket int

const (
	BracketGood     ScoreBracket = iota // score >= 80
	BracketMediocre                     // 50..79
	BracketBad                          // < 50
)

// BracketFor maps a score to its feedback bucket.
func BracketFor(score int) ScoreBracket {
	switch {
	case score >= 80:
		return BracketGood
	case score >= 50:
		return BracketMediocre
	default:
		return BracketBad
	}
}

// verdicts: matriks 3 persona x 3 bracket. Semua entri harus non-empty dan
// berbeda dalam satu persona.
var verdicts = map[Persona][3]string{
	PersonaSavage: {
		BracketGood:     "Shockingly adequate. I'm disappointed I can't roast this.",
		BracketMediocre: "It runs, but it smells like mediocrity.",
		BracketBad:      "My CPU hurts just looking at this nested garbage.",
	},
	PersonaProfessional: {
		BracketGood:     "Excellent work. Adheres to high standards.",
		BracketMediocre: "Acceptable, but room for optimization.",
		BracketBad:      "Code complexity exceeds recommended limits. Refactor immediately.",
	},
	PersonaGentle: {
		BracketGood:     "Wonderful! Your code is a shining example.",
		BracketMediocre: "Good job! A few tweaks and it will be perfect.",
		BracketBad:      "Don't worry, we all write nested loops sometimes. Let's try to flatten it.",
	},
}

var syntaxErrorVerdicts = map[Persona]string{
	PersonaSavage:       "Your code is so broken I can't even analyze it.",
	PersonaProfessional: "The file does not parse. Fix the syntax errors before review.",
	PersonaGentle:       "Something isn't quite valid yet. Check the syntax and try again.",
}

// VerdictFor picks the persona-flavored feedback line for a score.
func VerdictFor(persona Persona, score int) string {
	table, ok := verdicts[persona]
	if !ok {
		table = verdicts[PersonaProfessional]
	}
	return table[BracketFor(score)]
}

// SyntaxErrorVerdict is used when the local path hit a ParseError, so the
// report reads "broken file" instead of "deeply nested."
func SyntaxErrorVerdict(persona Persona) string {
	if v, ok := syntaxErrorVerdicts[persona]; ok {
		return v
	}
	return syntaxErrorVerdicts[PersonaProfessional]
}
