package entity

// StartSessionRequest opens a conversation session for a form.
type StartSessionRequest struct {
	FormID int64 `json:"form_id"`
}

// SubmitSessionAnswerRequest submits free text for the current prompt.
type SubmitSessionAnswerRequest struct {
	Answer string `json:"answer"`
}

// SessionAction is a decision taken after an answer was rejected, or the
// return action from side-question mode.
type SessionAction string

const (
	ActionAcceptSuggestion SessionAction = "accept_suggestion"
	ActionUseOriginal      SessionAction = "use_original"
	ActionRevise           SessionAction = "revise"
	ActionReturn           SessionAction = "return"
)

func (a SessionAction) Validate() error {
	switch a {
	case ActionAcceptSuggestion, ActionUseOriginal, ActionRevise, ActionReturn:
		return nil
	default:
		return ErrInvalidParameter
	}
}

// SessionActionRequest applies a decision to a session.
type SessionActionRequest struct {
	Action SessionAction `json:"action"`
}

// SessionQuestionRequest asks a side question while filling the form.
type SessionQuestionRequest struct {
	Question string `json:"question"`
}

// SessionDTO is the client view of a conversation session.
type SessionDTO struct {
	ID            string       `json:"session_id"`
	FormID        int64        `json:"form_id"`
	State         SessionState `json:"state"`
	PromptIndex   int          `json:"prompt_index"`
	PromptCount   int          `json:"prompt_count"`
	Question      string       `json:"question,omitempty"`
	Feedback      string       `json:"feedback,omitempty"`
	Suggestion    string       `json:"suggestion,omitempty"`
	Draft         string       `json:"draft,omitempty"`
	SideAnswer    string       `json:"side_answer,omitempty"`
	Output        string       `json:"output,omitempty"`
	ResponseID    *int64       `json:"responseid,omitempty"`
	AnsweredCount int          `json:"answered_count"`
}
