package conversation

import (
	"sync"

	"github.com/jazmy/formchat/internal/entity"
)

// Session is one in-flight form fill. It lives in memory only; the
// durable artifact is the Response row written on each commit. An
// abandoned session simply expires from the store.
type Session struct {
	ID     string
	FormID int64

	// Form is a snapshot taken at Start; prompt order is fixed for the
	// lifetime of the session.
	Form *entity.Form

	State       entity.SessionState
	PromptIndex int

	// Answers is the committed set, at most one entry per variable name.
	Answers []entity.Answer

	// ResponseID is assigned by the store on the first successful commit
	// and reused for every later write.
	ResponseID *int64

	// Decision context, populated while State is StateAwaitingDecision or
	// StateAskingQuestion.
	RejectedAnswer string
	Feedback       string
	Suggestion     string

	// Draft pre-fills the input after "Revise Answer".
	Draft string

	// SideAnswer is the last side-question reply, for display.
	SideAnswer string

	// Output is the generated final document once completed.
	Output string

	// mu serializes operations per session: one interaction runs to
	// completion, including its LLM round-trip, before the next starts.
	mu sync.Mutex
}

// CurrentPrompt returns the prompt the session is waiting on. Callers
// must not use it when the session is past the last prompt.
func (s *Session) CurrentPrompt() entity.Prompt {
	return s.Form.Prompts[s.PromptIndex]
}

// upsertAnswer replaces any existing answer with the same variable name,
// otherwise appends. Never produces duplicates.
func (s *Session) upsertAnswer(variableName, text string) {
	for i, a := range s.Answers {
		if a.VariableName == variableName {
			s.Answers[i].ResponseText = text
			return
		}
	}
	s.Answers = append(s.Answers, entity.Answer{
		VariableName: variableName,
		ResponseText: text,
	})
}

// clearDecision drops the rejected-answer context after a commit or a
// return to the answer state.
func (s *Session) clearDecision() {
	s.RejectedAnswer = ""
	s.Feedback = ""
	s.Suggestion = ""
}

// answeredContext builds the prior question/answer pairs for the side
// channel, in prompt order.
func (s *Session) answeredContext() []entity.QA {
	byVariable := make(map[string]string, len(s.Answers))
	for _, a := range s.Answers {
		byVariable[a.VariableName] = a.ResponseText
	}

	var qas []entity.QA
	for _, p := range s.Form.Prompts {
		answer, ok := byVariable[p.VariableName]
		if !ok {
			continue
		}
		qas = append(qas, entity.QA{Question: p.QuestionText, Answer: answer})
	}
	return qas
}

// Snapshot is a point-in-time copy of a session, taken under its lock.
// The live session is never handed out; callers read snapshots freely
// while operations keep mutating the original.
type Snapshot struct {
	ID     string
	FormID int64

	FormTitle       string
	FormDescription string
	HasOutputPrompt bool

	State       entity.SessionState
	PromptIndex int
	PromptCount int

	// Question is the current prompt's text, empty past the last prompt.
	Question string

	Answers []entity.Answer

	RejectedAnswer string
	Feedback       string
	Suggestion     string
	Draft          string
	SideAnswer     string
	Output         string

	ResponseID *int64
}

// snapshot copies the session state. Callers must hold s.mu.
func (s *Session) snapshot() *Snapshot {
	snap := &Snapshot{
		ID:              s.ID,
		FormID:          s.FormID,
		FormTitle:       s.Form.Title,
		FormDescription: s.Form.Description,
		HasOutputPrompt: s.Form.OutputPrompt != "",
		State:           s.State,
		PromptIndex:     s.PromptIndex,
		PromptCount:     len(s.Form.Prompts),
		Answers:         append([]entity.Answer(nil), s.Answers...),
		RejectedAnswer:  s.RejectedAnswer,
		Feedback:        s.Feedback,
		Suggestion:      s.Suggestion,
		Draft:           s.Draft,
		SideAnswer:      s.SideAnswer,
		Output:          s.Output,
	}

	if s.PromptIndex < len(s.Form.Prompts) {
		snap.Question = s.Form.Prompts[s.PromptIndex].QuestionText
	}
	if s.ResponseID != nil {
		id := *s.ResponseID
		snap.ResponseID = &id
	}

	return snap
}

// ToDTO projects the snapshot for clients.
func (snap *Snapshot) ToDTO() *entity.SessionDTO {
	return &entity.SessionDTO{
		ID:            snap.ID,
		FormID:        snap.FormID,
		State:         snap.State,
		PromptIndex:   snap.PromptIndex,
		PromptCount:   snap.PromptCount,
		Question:      snap.Question,
		Feedback:      snap.Feedback,
		Suggestion:    snap.Suggestion,
		Draft:         snap.Draft,
		SideAnswer:    snap.SideAnswer,
		Output:        snap.Output,
		ResponseID:    snap.ResponseID,
		AnsweredCount: len(snap.Answers),
	}
}
