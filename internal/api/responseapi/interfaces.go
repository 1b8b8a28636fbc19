package responseapi

import (
	"context"

	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/usecase/response"
)

type ResponseUsecase interface {
	Submit(ctx context.Context, formID int64, req *entity.SubmitResponseRequest) (*entity.Response, error)
	Get(ctx context.Context, formID, responseID int64) (*entity.Response, error)
	List(ctx context.Context, formID int64) ([]*entity.Response, error)
	Delete(ctx context.Context, formID, responseID int64) error
	ExportAll(ctx context.Context, formID int64, ids []int64) (*response.Export, error)
	ExportResult(ctx context.Context, formID, responseID int64, format entity.ResultFormat) (*response.Export, error)
	ExportTranscript(ctx context.Context, formID, responseID int64, format entity.ResultFormat) (*response.Export, error)
}
