package entity

// Role tags one side of an LLM conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn in an outbound LLM request.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Profile selects model, token and temperature parameters for a call.
type Profile string

const (
	ProfileChat           Profile = "CHAT"
	ProfileConversational Profile = "CONVERSATIONAL"
	ProfileValidation     Profile = "VALIDATION"
	ProfileGuidance       Profile = "GUIDANCE"
	ProfileWelcome        Profile = "WELCOME"
	ProfileOutput         Profile = "OUTPUT"
)

// Usage reports provider token accounting for a completed call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the result of one LLM call.
type Completion struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// ValidationResult is the transient outcome of answer validation. A nil
// result means the answer was accepted. Suggestion may be empty when the
// feedback did not follow the enumerated-suggestion convention.
type ValidationResult struct {
	Feedback   string `json:"feedback"`
	Suggestion string `json:"suggestion,omitempty"`
}

// QA is one prior question/answer pair used for conversational context.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FormContext is the form-level context forwarded with side questions.
type FormContext struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	CurrentPrompt     string `json:"currentPrompt"`
	PreviousQuestions []QA   `json:"previousQuestions"`
}
