package session

import (
	"context"

	"github.com/jazmy/formchat/internal/usecase/conversation"
)

type ConversationUsecase interface {
	Start(ctx context.Context, formID int64) (*conversation.Snapshot, error)
	Get(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
	SubmitAnswer(ctx context.Context, sessionID, answer string) (*conversation.Snapshot, error)
	AcceptSuggestion(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
	UseOriginal(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
	Revise(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
	AskQuestion(ctx context.Context, sessionID, question string) (*conversation.Snapshot, error)
	ReturnToAnswer(ctx context.Context, sessionID string) (*conversation.Snapshot, error)
}
