package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/telegram/keyboard"
	"github.com/jazmy/formchat/internal/telegram/render"
	"github.com/jazmy/formchat/internal/telegram/state"
	"github.com/jazmy/formchat/internal/usecase/conversation"
)

func (b *Bot) onText(ctx context.Context, msg *tgbotapi.Message) {
	st, ok := b.states.Get(msg.From.ID)
	if !ok {
		b.send(ctx, msg.Chat.ID, render.MsgNoSession)
		return
	}

	s, err := b.deps.Conversations.Get(ctx, st.SessionID)
	if err != nil {
		b.states.Delete(msg.From.ID)
		b.send(ctx, msg.Chat.ID, render.MsgNoSession)
		return
	}

	switch {
	case st.AwaitingSideQuestion || s.State == entity.StateAskingQuestion:
		b.submitSideQuestion(ctx, msg, st)
	case s.State == entity.StateAwaitingDecision:
		// Typing instead of pressing a button means a revised answer.
		if _, err := b.deps.Conversations.Revise(ctx, st.SessionID); err != nil {
			b.sendFlowError(ctx, msg.Chat.ID, err)
			return
		}
		b.submitAnswer(ctx, msg, st, s)
	case s.State == entity.StateGeneratingOutput:
		b.sendWithKeyboard(ctx, msg.Chat.ID, render.ErrOutputFailed, keyboard.RetryOutput())
	default:
		b.submitAnswer(ctx, msg, st, s)
	}
}

func (b *Bot) submitAnswer(ctx context.Context, msg *tgbotapi.Message, st *state.ChatState, before *conversation.Snapshot) {
	// Final answers trigger synchronous output synthesis, which can take
	// a while. Warn the user up front.
	lastPrompt := before.PromptIndex == before.PromptCount-1
	if lastPrompt && before.HasOutputPrompt {
		b.send(ctx, msg.Chat.ID, render.MsgGenerating)
	}

	s, err := b.deps.Conversations.SubmitAnswer(ctx, st.SessionID, msg.Text)
	if err != nil {
		b.sendFlowError(ctx, msg.Chat.ID, err)
		return
	}
	b.afterProgress(ctx, msg.Chat.ID, msg.From.ID, st, s)
}

func (b *Bot) submitSideQuestion(ctx context.Context, msg *tgbotapi.Message, st *state.ChatState) {
	s, err := b.deps.Conversations.AskQuestion(ctx, st.SessionID, msg.Text)
	if err != nil {
		b.sendFlowError(ctx, msg.Chat.ID, err)
		return
	}

	st.AwaitingSideQuestion = false
	b.states.Set(msg.From.ID, st)

	b.sendWithKeyboard(ctx, msg.Chat.ID,
		fmt.Sprintf(render.MsgSideAnswer, s.SideAnswer),
		keyboard.Return(),
	)
}

func (b *Bot) onCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	b.answerCallback(ctx, cq.ID)
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	userID := cq.From.ID

	action, value := keyboard.ParseCallback(cq.Data)

	if action == keyboard.ActionSelectForm {
		b.startForm(ctx, chatID, userID, value)
		return
	}

	st, ok := b.states.Get(userID)
	if !ok {
		b.send(ctx, chatID, render.MsgNoSession)
		return
	}

	var (
		s   *conversation.Snapshot
		err error
	)
	switch action {
	case keyboard.ActionAccept:
		s, err = b.deps.Conversations.AcceptSuggestion(ctx, st.SessionID)
	case keyboard.ActionOriginal:
		s, err = b.deps.Conversations.UseOriginal(ctx, st.SessionID)
	case keyboard.ActionRevise:
		s, err = b.deps.Conversations.Revise(ctx, st.SessionID)
		if err == nil {
			b.send(ctx, chatID, fmt.Sprintf(render.MsgReviseFmt, s.Draft))
			return
		}
	case keyboard.ActionAsk:
		st.AwaitingSideQuestion = true
		b.states.Set(userID, st)
		b.send(ctx, chatID, render.MsgAskPrompt)
		return
	case keyboard.ActionReturn:
		s, err = b.deps.Conversations.ReturnToAnswer(ctx, st.SessionID)
	case keyboard.ActionRetry:
		b.send(ctx, chatID, render.MsgGenerating)
		s, err = b.deps.Conversations.RetryOutput(ctx, st.SessionID)
	default:
		ctxzap.Warn(ctx, "unknown callback action", zap.String("action", action))
		return
	}

	if err != nil {
		b.sendFlowError(ctx, chatID, err)
		return
	}
	b.afterProgress(ctx, chatID, userID, st, s)
}

func (b *Bot) startForm(ctx context.Context, chatID, userID int64, value string) {
	formID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		b.send(ctx, chatID, render.ErrFormUnavailable)
		return
	}

	s, err := b.deps.Conversations.Start(ctx, formID)
	if err != nil {
		b.sendFlowError(ctx, chatID, err)
		return
	}

	b.states.Set(userID, &state.ChatState{SessionID: s.ID, FormID: formID})

	welcome, err := b.deps.Side.Welcome(ctx, s.FormTitle, s.FormDescription)
	if err != nil {
		ctxzap.Warn(ctx, "failed to generate welcome message", zap.Error(err))
		welcome = s.FormTitle
	}
	b.send(ctx, chatID, welcome)
	b.sendQuestion(ctx, chatID, s)
}

// afterProgress reflects the session's new state back to the chat.
func (b *Bot) afterProgress(ctx context.Context, chatID, userID int64, st *state.ChatState, s *conversation.Snapshot) {
	switch s.State {
	case entity.StateAwaitingAnswer:
		b.sendQuestion(ctx, chatID, s)

	case entity.StateAwaitingDecision:
		b.send(ctx, chatID, fmt.Sprintf(render.MsgFeedbackFmt, s.Feedback))
		if s.Suggestion != "" {
			b.send(ctx, chatID, fmt.Sprintf(render.MsgSuggestedFmt, s.Suggestion))
		}
		b.sendWithKeyboard(ctx, chatID, render.MsgDecisionPrompt, keyboard.Decision(s.Suggestion != ""))

	case entity.StateCompleted:
		if s.Output != "" {
			b.send(ctx, chatID, fmt.Sprintf(render.MsgCompleted, s.Output))
		} else {
			b.send(ctx, chatID, render.MsgCompletedNoOutput)
		}
		b.sendTranscript(ctx, chatID, st, s)
		b.states.Delete(userID)

	case entity.StateGeneratingOutput:
		b.sendWithKeyboard(ctx, chatID, render.ErrOutputFailed, keyboard.RetryOutput())
	}
}

// sendQuestion presents the current prompt, rephrased conversationally
// when the side channel cooperates.
func (b *Bot) sendQuestion(ctx context.Context, chatID int64, s *conversation.Snapshot) {
	question := s.Question
	if rephrased, err := b.deps.Side.Rephrase(ctx, question); err == nil && rephrased != "" {
		question = rephrased
	} else if err != nil {
		ctxzap.Warn(ctx, "failed to rephrase question", zap.Error(err))
	}

	b.send(ctx, chatID, fmt.Sprintf(render.MsgQuestionFmt,
		s.PromptIndex+1, s.PromptCount, question))
}

func (b *Bot) sendTranscript(ctx context.Context, chatID int64, st *state.ChatState, s *conversation.Snapshot) {
	if s.ResponseID == nil {
		return
	}

	exp, err := b.deps.Exporter.ExportTranscript(ctx, st.FormID, *s.ResponseID, entity.FormatMarkdown)
	if err != nil {
		ctxzap.Error(ctx, "failed to export transcript", zap.Error(err))
		return
	}
	b.sendDocument(ctx, chatID, exp.Filename, exp.Data, render.MsgTranscript)
}

// sendFlowError translates workflow errors into user-facing copy. Output
// failures additionally offer a retry button.
func (b *Bot) sendFlowError(ctx context.Context, chatID int64, err error) {
	switch {
	case errors.Is(err, entity.ErrOutputGeneration):
		b.sendWithKeyboard(ctx, chatID, render.ErrOutputFailed, keyboard.RetryOutput())
	case errors.Is(err, entity.ErrValidationUnavailable):
		b.send(ctx, chatID, render.ErrValidationDown)
	case errors.Is(err, entity.ErrAnswerNotSaved):
		b.send(ctx, chatID, render.ErrAnswerNotSaved)
	case errors.Is(err, entity.ErrSessionNotFound), errors.Is(err, entity.ErrSessionCompleted):
		b.send(ctx, chatID, render.MsgNoSession)
	case errors.Is(err, entity.ErrFormNotFound),
		errors.Is(err, entity.ErrFormInactive),
		errors.Is(err, entity.ErrFormEmpty):
		b.send(ctx, chatID, render.ErrFormUnavailable)
	case errors.Is(err, entity.ErrInvalidSessionState):
		b.send(ctx, chatID, render.ErrExpectedButton)
	default:
		ctxzap.Error(ctx, "unexpected workflow error", zap.Error(err))
		b.send(ctx, chatID, render.ErrGeneric)
	}
}
