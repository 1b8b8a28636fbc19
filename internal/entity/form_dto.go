package entity

// PromptInput is one question definition as submitted by the form builder.
// Order is assigned from slice position, not taken from the client.
type PromptInput struct {
	QuestionText       string `json:"question_text"`
	VariableName       string `json:"variable_name"`
	ValidationCriteria string `json:"validation_criteria,omitempty"`
}

// CreateFormRequest creates a form together with its prompt set.
type CreateFormRequest struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	StarterPrompt string        `json:"starter_prompt"`
	OutputPrompt  string        `json:"output_prompt"`
	Prompts       []PromptInput `json:"prompts"`
}

// UpdateFormRequest replaces form details and the whole prompt set.
type UpdateFormRequest struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	StarterPrompt string        `json:"starter_prompt"`
	OutputPrompt  string        `json:"output_prompt"`
	Prompts       []PromptInput `json:"prompts"`
}

// ValidateAnswerRequest asks for LLM validation of one answer.
type ValidateAnswerRequest struct {
	PromptIndex        int    `json:"promptIndex"`
	Answer             string `json:"answer"`
	ValidationCriteria string `json:"validationCriteria,omitempty"`
}

// ValidateAnswerResponse carries the validation feedback. Validation is nil
// when the answer was accepted.
type ValidateAnswerResponse struct {
	Validation *string `json:"validation"`
	Suggestion string  `json:"suggestion,omitempty"`
}

// GenerateOutputRequest asks for final-output synthesis over a committed
// answer set.
type GenerateOutputRequest struct {
	Responses []Answer `json:"responses"`
}

// GenerateOutputResponse returns the synthesized document.
type GenerateOutputResponse struct {
	Output string `json:"output"`
}

// GuidanceRequest asks for free-form improvement guidance on an answer.
type GuidanceRequest struct {
	Question           string `json:"question"`
	Answer             string `json:"answer"`
	ValidationCriteria string `json:"validationCriteria,omitempty"`
	PreviousQA         []QA   `json:"previousQA,omitempty"`
	StarterPrompt      string `json:"starterPrompt,omitempty"`
}

// GuidanceResponse returns the guidance text.
type GuidanceResponse struct {
	Guidance string `json:"guidance"`
}

// SubmitResponseRequest creates or updates a stored response. A nil
// ResponseID creates a new row; non-nil updates that row in place.
type SubmitResponseRequest struct {
	ResponseID *int64   `json:"responseid"`
	Answers    []Answer `json:"answers"`
}
