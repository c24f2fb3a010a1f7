package interview

// GenerationRequest is the candidate metadata sent by a client. Every field
// is optional free text.
type GenerationRequest struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

// Question types suggested to the model. Other values are passed through.
const (
	TypeTechnical  = "Technical"
	TypeBehavioral = "Behavioral"
	TypeScenario   = "Scenario"
)

type Question struct {
	No       int    `json:"no"`
	Type     string `json:"type"`
	Question string `json:"question"`
}

type QuestionSet struct {
	Name      string     `json:"name"`
	Position  string     `json:"position"`
	Questions []Question `json:"questions"`
}

// Fallback is returned when the reply could not be turned into a QuestionSet.
type Fallback struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Raw      string `json:"raw"`
	Note     string `json:"note"`
}

const FallbackNote = "Could not parse a JSON question set from the model reply; returning raw text."
