package entity

import "time"

// Form is a conversational form definition. Prompts are always held in
// ascending Order.
type Form struct {
	ID            int64     `json:"formid"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StarterPrompt string    `json:"starter_prompt"`
	OutputPrompt  string    `json:"output_prompt"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Prompts       []Prompt  `json:"prompts,omitempty"`
}

// Prompt is a single form question. Order values are contiguous 0..n-1
// within a form; VariableName keys the committed answer.
type Prompt struct {
	ID                 int64     `json:"promptid"`
	FormID             int64     `json:"formid"`
	QuestionText       string    `json:"question_text"`
	VariableName       string    `json:"variable_name"`
	ValidationCriteria string    `json:"validation_criteria,omitempty"`
	Order              int       `json:"order"`
	CreatedAt          time.Time `json:"created_at"`
}

// Answer is one committed (variable_name, response_text) pair. A response
// holds at most one answer per variable name.
type Answer struct {
	VariableName string `json:"variable_name"`
	ResponseText string `json:"response_text"`
}

// OutputVariableName is the synthetic answer key holding the generated
// final document.
const OutputVariableName = "output"

// Response is a stored set of answers for one form fill.
type Response struct {
	ID        int64     `json:"responseid"`
	FormID    int64     `json:"formid"`
	Answers   []Answer  `json:"answers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FormSummary is a list row for the admin form overview.
type FormSummary struct {
	ID            int64     `json:"formid"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	ResponseCount int       `json:"responseCount"`
	QuestionCount int       `json:"questionCount"`
}

// SessionState is the conversation state machine state.
type SessionState string

const (
	// StateAwaitingAnswer - the current prompt is presented, waiting for text.
	StateAwaitingAnswer SessionState = "awaiting_answer"
	// StateAwaitingDecision - an answer was rejected, waiting for the user to
	// accept the suggestion, keep the original, revise, or ask a question.
	StateAwaitingDecision SessionState = "awaiting_decision"
	// StateAskingQuestion - side-question mode; the rejected answer and
	// suggestion are retained for when the user returns.
	StateAskingQuestion SessionState = "asking_question"
	// StateGeneratingOutput - all prompts answered, final synthesis pending.
	StateGeneratingOutput SessionState = "generating_output"
	// StateCompleted - terminal, no further input accepted.
	StateCompleted SessionState = "completed"
)

// ResultFormat selects an export rendering for a stored response.
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
	FormatCSV      ResultFormat = "csv"
)

func (f ResultFormat) Validate() error {
	switch f {
	case FormatMarkdown, FormatPDF, FormatDOCX, FormatCSV:
		return nil
	default:
		return ErrInvalidParameter
	}
}
