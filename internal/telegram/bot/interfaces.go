package bot

import (
	"context"

	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/usecase/conversation"
	"github.com/jazmy/formchat/internal/usecase/response"
)

// Conversations drives the form-filling workflow.
type Conversations interface {
	Start(ctx context.Context, formID int64) (*conversation.Snapshot, error)
	Get(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
	SubmitAnswer(ctx context.Context, sessionID, answer string) (*conversation.Snapshot, error)
	AcceptSuggestion(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
	UseOriginal(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
	Revise(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
	AskQuestion(ctx context.Context, sessionID, question string) (*conversation.Snapshot, error)
	ReturnToAnswer(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
	RetryOutput(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
}

// Forms lists what the bot can offer to fill out.
type Forms interface {
	ListForms(ctx context.Context) ([]entity.FormSummary, error)
}

// SideChannel provides the conversational dressing around the form.
type SideChannel interface {
	Welcome(ctx context.Context, title, description string) (string, error)
	Rephrase(ctx context.Context, prompt string) (string, error)
}

// Exporter renders a completed response as a downloadable file.
type Exporter interface {
	ExportTranscript(ctx context.Context, formID, responseID int64, format entity.ResultFormat) (*response.Export, error)
}
