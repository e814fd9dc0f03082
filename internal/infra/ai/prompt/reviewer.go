package prompt

import "fmt"

// GetSystemPrompt provides strict directions and schema for JSON output.
// The persona only flavors the summary wording; the schema never changes.
func GetSystemPrompt(persona string) string {
    return fmt.Sprintf(`You are a code reviewer with the persona: %s. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- "score" is an integer from 0 to 100 rating overall code quality; 100 is clean, flat, readable code and deep nesting or tangled control flow lowers it.
- "summary" is one short verdict sentence written in the persona's voice.
- "issues" is an array of short strings, one per concrete problem found. Use an empty array when the code is fine.

Schema (example with empty values):
{
  "score": 0,
  "summary": "<string>",
  "issues": ["<string>"]
}`, persona)
}

// GetUserPrompt builds the user message around the raw source text.
func GetUserPrompt(language, source string) string {
    return fmt.Sprintf("Analyze the following %s source file and respond with the JSON per schema.\n\n%s", language, source)
}
