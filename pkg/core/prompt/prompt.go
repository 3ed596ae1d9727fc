// Package prompt provides a centralized prompt library for LLM interactions.
// Built-in prompts can be overridden by JSON or Hjson files loaded at
// runtime, so prompts change without code changes.
package prompt

// Known prompt IDs.
const (
	ComparableSelection = "comparables.selection"
)

// PromptTemplate represents a reusable prompt with metadata
type PromptTemplate struct {
	ID             string `json:"id"`                   // e.g. "comparables.selection"
	Name           string `json:"name"`                 // Human-readable name
	Category       string `json:"category"`             // Folder the prompt was loaded from
	Description    string `json:"description"`          // Description of prompt purpose
	SystemPrompt   string `json:"system_prompt"`        // The system prompt content
	UserPromptTmpl string `json:"user_prompt_template"` // Go template for user prompt
	Version        string `json:"version"`
}

var builtins = []PromptTemplate{
	{
		ID:          ComparableSelection,
		Name:        "Comparable selection",
		Category:    "comparables",
		Description: "Ranks sale comparables for the market approach",
		SystemPrompt: `You are a property valuer choosing sale comparables for a subject property.
Pick the candidates most similar to the subject in location, size, use and sale date.
Reply with JSON only: {"selected_ids": ["<candidate id>", ...], "rationale": "<one paragraph>"}`,
		UserPromptTmpl: `{{with .Subject}}SUBJECT: {{.Name}}, {{.Address}}
Classification: {{.Classification}}
Extent: {{.Extent}} m²
{{if .ConstructionItems}}Construction: {{join .ConstructionItems "; "}}
{{end}}{{end}}{{if gt .Limit 0}}
Select at most {{.Limit}} candidates.
{{end}}
CANDIDATES:
{{.Candidates}}
`,
		Version: "1",
	},
}
