// Package conversation implements the chat-style form-filling workflow:
// it walks the ordered prompts, validates each answer, branches into the
// accept/revise/ask-question decision paths, persists progress after
// every accepted answer, and triggers final-output generation once every
// prompt is answered.
package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/entity"
	"go.uber.org/zap"
)

type Usecase struct {
	forms     FormProvider
	responses ResponseStore
	validator AnswerValidator
	generator OutputGenerator
	side      SideChannel
	store     *Store
	logger    *zap.Logger
}

func NewUsecase(
	forms FormProvider,
	responses ResponseStore,
	validator AnswerValidator,
	generator OutputGenerator,
	side SideChannel,
	store *Store,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		forms:     forms,
		responses: responses,
		validator: validator,
		generator: generator,
		side:      side,
		store:     store,
		logger:    logger,
	}
}

// Start opens a session for a form. A form with no prompts is a terminal
// load error; no session is created for it.
func (uc *Usecase) Start(ctx context.Context, formID int64) (*Snapshot, error) {
	form, err := uc.forms.GetActiveForm(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("load form: %w", err)
	}

	if len(form.Prompts) == 0 {
		return nil, entity.ErrFormEmpty
	}

	session := &Session{
		ID:     uuid.New().String(),
		FormID: form.ID,
		Form:   form,
		State:  entity.StateAwaitingAnswer,
	}
	snap := session.snapshot()
	uc.store.Put(session)

	ctxzap.Info(ctx, "conversation session started",
		zap.String("session_id", session.ID),
		zap.Int64("form_id", form.ID),
		zap.Int("prompt_count", len(form.Prompts)),
	)

	return snap, nil
}

// Get returns a snapshot of a session by ID.
func (uc *Usecase) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	s, err := uc.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// SubmitAnswer validates free text for the current prompt. Accepted
// answers are committed and the session advances; rejected answers move
// to the decision state; a validator failure leaves the session exactly
// where it was with nothing committed.
func (uc *Usecase) SubmitAnswer(ctx context.Context, sessionID, answer string) (*Snapshot, error) {
	return uc.withSession(ctx, sessionID, func(ctx context.Context, s *Session) error {
		if s.State != entity.StateAwaitingAnswer {
			return fmt.Errorf("%w: submit answer in state %s", entity.ErrInvalidSessionState, s.State)
		}

		prompt := s.CurrentPrompt()
		result, err := uc.validator.Validate(ctx, prompt.QuestionText, answer, prompt.VariableName, prompt.ValidationCriteria)
		if err != nil {
			// Answer not committed; user may resubmit.
			return err
		}

		if result == nil {
			return uc.commitAndAdvance(ctx, s, answer)
		}

		s.State = entity.StateAwaitingDecision
		s.RejectedAnswer = answer
		s.Feedback = result.Feedback
		s.Suggestion = result.Suggestion
		s.Draft = ""

		ctxzap.Info(ctx, "answer rejected, awaiting decision",
			zap.String("variable_name", prompt.VariableName),
			zap.Bool("has_suggestion", s.Suggestion != ""),
		)
		return nil
	})
}

// AcceptSuggestion commits the suggested rewrite without re-validation.
func (uc *Usecase) AcceptSuggestion(ctx context.Context, sessionID string) (*Snapshot, error) {
	return uc.withSession(ctx, sessionID, func(ctx context.Context, s *Session) error {
		if s.State != entity.StateAwaitingDecision {
			return fmt.Errorf("%w: accept suggestion in state %s", entity.ErrInvalidSessionState, s.State)
		}
		if s.Suggestion == "" {
			return fmt.Errorf("%w: no suggestion available", entity.ErrInvalidSessionState)
		}
		return uc.commitAndAdvance(ctx, s, s.Suggestion)
	})
}

// UseOriginal commits the rejected answer unchanged, bypassing a second
// validation round.
func (uc *Usecase) UseOriginal(ctx context.Context, sessionID string) (*Snapshot, error) {
	return uc.withSession(ctx, sessionID, func(ctx context.Context, s *Session) error {
		if s.State != entity.StateAwaitingDecision {
			return fmt.Errorf("%w: use original in state %s", entity.ErrInvalidSessionState, s.State)
		}
		return uc.commitAndAdvance(ctx, s, s.RejectedAnswer)
	})
}

// Revise returns to the answer state with the rejected text as an
// editable draft.
func (uc *Usecase) Revise(ctx context.Context, sessionID string) (*Snapshot, error) {
	return uc.withSession(ctx, sessionID, func(ctx context.Context, s *Session) error {
		if s.State != entity.StateAwaitingDecision {
			return fmt.Errorf("%w: revise in state %s", entity.ErrInvalidSessionState, s.State)
		}

		s.State = entity.StateAwaitingAnswer
		s.Draft = s.RejectedAnswer
		s.clearDecision()
		return nil
	})
}

// AskQuestion enters (or stays in) side-question mode and answers the
// question with the form's context. The pending decision context is
// retained for the user's return.
func (uc *Usecase) AskQuestion(ctx context.Context, sessionID, question string) (*Snapshot, error) {
	return uc.withSession(ctx, sessionID, func(ctx context.Context, s *Session) error {
		if s.State != entity.StateAwaitingDecision && s.State != entity.StateAskingQuestion {
			return fmt.Errorf("%w: ask question in state %s", entity.ErrInvalidSessionState, s.State)
		}

		answer, err := uc.side.Ask(ctx, question, entity.FormContext{
			Title:             s.Form.Title,
			Description:       s.Form.Description,
			CurrentPrompt:     s.CurrentPrompt().QuestionText,
			PreviousQuestions: s.answeredContext(),
		})
		if err != nil {
			// Stay where we were; the user can ask again or return.
			return err
		}

		s.State = entity.StateAskingQuestion
		s.SideAnswer = answer
		return nil
	})
}

// ReturnToAnswer leaves side-question mode back to the current prompt
// with a cleared draft.
func (uc *Usecase) ReturnToAnswer(ctx context.Context, sessionID string) (*Snapshot, error) {
	return uc.withSession(ctx, sessionID, func(ctx context.Context, s *Session) error {
		if s.State != entity.StateAskingQuestion {
			return fmt.Errorf("%w: return in state %s", entity.ErrInvalidSessionState, s.State)
		}

		s.State = entity.StateAwaitingAnswer
		s.SideAnswer = ""
		s.Draft = ""
		s.clearDecision()
		return nil
	})
}

// RetryOutput reruns final synthesis after a failed attempt. Only valid
// while the session is stuck in StateGeneratingOutput.
func (uc *Usecase) RetryOutput(ctx context.Context, sessionID string) (*Snapshot, error) {
	return uc.withSession(ctx, sessionID, func(ctx context.Context, s *Session) error {
		if s.State != entity.StateGeneratingOutput {
			return fmt.Errorf("%w: retry output in state %s", entity.ErrInvalidSessionState, s.State)
		}
		return uc.generateOutput(ctx, s)
	})
}

// commitAndAdvance applies the commit rule for the current prompt and
// moves the session forward: next prompt, output generation, or
// completion. Persistence failure keeps the in-memory answer but
// withholds progression; resubmitting retries the same write.
func (uc *Usecase) commitAndAdvance(ctx context.Context, s *Session, answer string) error {
	prompt := s.CurrentPrompt()
	s.upsertAnswer(prompt.VariableName, answer)

	if err := uc.persist(ctx, s); err != nil {
		return err
	}

	s.clearDecision()
	s.Draft = ""
	s.PromptIndex++

	if s.PromptIndex < len(s.Form.Prompts) {
		s.State = entity.StateAwaitingAnswer
		return nil
	}

	if s.Form.OutputPrompt != "" {
		s.State = entity.StateGeneratingOutput
		return uc.generateOutput(ctx, s)
	}

	s.State = entity.StateCompleted
	ctxzap.Info(ctx, "conversation session completed",
		zap.String("session_id", s.ID),
		zap.Int("answer_count", len(s.Answers)),
	)
	return nil
}

// generateOutput synthesizes the final document and commits it under the
// synthetic output variable. On failure the session stays in
// StateGeneratingOutput with no partial output stored.
func (uc *Usecase) generateOutput(ctx context.Context, s *Session) error {
	out, err := uc.generator.Generate(ctx, s.Form.OutputPrompt, s.Form.Prompts, s.Answers)
	if err != nil {
		return err
	}

	s.upsertAnswer(entity.OutputVariableName, out)
	if err := uc.persist(ctx, s); err != nil {
		return err
	}

	s.Output = out
	s.State = entity.StateCompleted

	ctxzap.Info(ctx, "conversation session completed with output",
		zap.String("session_id", s.ID),
		zap.Int("answer_count", len(s.Answers)),
		zap.Int("output_length", len(out)),
	)
	return nil
}

// persist writes the whole answer set, creating the response on the
// first commit and updating in place afterwards. The response identifier
// never changes once assigned.
func (uc *Usecase) persist(ctx context.Context, s *Session) error {
	resp, err := uc.responses.SaveResponse(ctx, s.FormID, s.ResponseID, s.Answers)
	if err != nil {
		ctxzap.Error(ctx, "failed to persist answers",
			zap.String("session_id", s.ID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", entity.ErrAnswerNotSaved, err)
	}

	if s.ResponseID == nil {
		id := resp.ID
		s.ResponseID = &id
	}
	return nil
}

// withSession runs fn with the session locked, enforcing one interaction
// at a time per session, and refreshes the store TTL afterwards. The
// caller gets a snapshot taken before the lock is released.
func (uc *Usecase) withSession(ctx context.Context, sessionID string, fn func(context.Context, *Session) error) (*Snapshot, error) {
	s, err := uc.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State == entity.StateCompleted {
		return nil, entity.ErrSessionCompleted
	}

	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.String("session_id", sessionID)))

	if err := fn(ctx, s); err != nil {
		return nil, err
	}

	uc.store.Put(s)
	return s.snapshot(), nil
}
