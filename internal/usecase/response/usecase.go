// Package response implements stored-response management: direct
// submission, listing, and export into downloadable documents.
package response

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/formatter"
	"github.com/jazmy/formchat/internal/pkg/validator"
	"github.com/jazmy/formchat/internal/repository"
	"go.uber.org/zap"
)

// Export is a rendered response document ready to serve.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ResponseUsecase implements stored-response business logic
type ResponseUsecase struct {
	responseRepo repository.ResponseRepository
	formRepo     repository.FormRepository
	formats      *formatter.Factory
	validator    *validator.Validator
	logger       *zap.Logger
}

// NewUsecase creates a new response use case
func NewUsecase(
	responseRepo repository.ResponseRepository,
	formRepo repository.FormRepository,
	formats *formatter.Factory,
	validator *validator.Validator,
	logger *zap.Logger,
) *ResponseUsecase {
	return &ResponseUsecase{
		responseRepo: responseRepo,
		formRepo:     formRepo,
		formats:      formats,
		validator:    validator,
		logger:       logger,
	}
}

// Submit writes an answer set directly, creating a new response when
// req.ResponseID is nil and updating that row otherwise.
func (uc *ResponseUsecase) Submit(ctx context.Context, formID int64, req *entity.SubmitResponseRequest) (*entity.Response, error) {
	if err := uc.validator.ValidateSubmitResponse(req); err != nil {
		return nil, err
	}

	if _, err := uc.formRepo.Get(ctx, formID); err != nil {
		return nil, err
	}

	resp, err := uc.responseRepo.Save(ctx, formID, req.ResponseID, req.Answers)
	if err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}

	ctxzap.Info(ctx, "response saved",
		zap.Int64("form_id", formID),
		zap.Int64("response_id", resp.ID),
		zap.Int("answer_count", len(resp.Answers)),
		zap.Bool("created", req.ResponseID == nil),
	)

	return resp, nil
}

// SaveResponse is the persistence entry point used by the conversation
// workflow; it skips request validation since the workflow builds the
// answer set itself.
func (uc *ResponseUsecase) SaveResponse(ctx context.Context, formID int64, responseID *int64, answers []entity.Answer) (*entity.Response, error) {
	return uc.responseRepo.Save(ctx, formID, responseID, answers)
}

// Get returns one stored response.
func (uc *ResponseUsecase) Get(ctx context.Context, formID, responseID int64) (*entity.Response, error) {
	return uc.responseRepo.Get(ctx, formID, responseID)
}

// List returns all responses of a form, newest first.
func (uc *ResponseUsecase) List(ctx context.Context, formID int64) ([]*entity.Response, error) {
	if _, err := uc.formRepo.Get(ctx, formID); err != nil {
		return nil, err
	}
	return uc.responseRepo.ListByForm(ctx, formID)
}

// Delete removes one stored response.
func (uc *ResponseUsecase) Delete(ctx context.Context, formID, responseID int64) error {
	return uc.responseRepo.Delete(ctx, formID, responseID)
}

// ExportResult renders only the generated output document of a response.
func (uc *ResponseUsecase) ExportResult(ctx context.Context, formID, responseID int64, format entity.ResultFormat) (*Export, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: format %q", entity.ErrInvalidParameter, format)
	}

	form, resp, err := uc.load(ctx, formID, responseID)
	if err != nil {
		return nil, err
	}

	output := findOutput(resp.Answers)
	if output == "" {
		return nil, entity.ErrNoOutput
	}

	return uc.render(ctx, format, formatter.Document{
		Title:       form.Title,
		ResponseID:  resp.ID,
		SubmittedAt: resp.CreatedAt,
		Output:      output,
	}, fmt.Sprintf("result_%d", responseID))
}

// ExportTranscript renders the full question/answer transcript of a
// response, including the generated output when present.
func (uc *ResponseUsecase) ExportTranscript(ctx context.Context, formID, responseID int64, format entity.ResultFormat) (*Export, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: format %q", entity.ErrInvalidParameter, format)
	}

	form, resp, err := uc.load(ctx, formID, responseID)
	if err != nil {
		return nil, err
	}

	return uc.render(ctx, format, buildDocument(form, resp), fmt.Sprintf("response_%d", responseID))
}

// ExportAll renders every stored response of a form as one CSV sheet,
// one row per response in list order. ids, when non-empty, restricts
// the rows to the named responses.
func (uc *ResponseUsecase) ExportAll(ctx context.Context, formID int64, ids []int64) (*Export, error) {
	form, err := uc.formRepo.Get(ctx, formID)
	if err != nil {
		return nil, err
	}

	responses, err := uc.responseRepo.ListByForm(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	sheet := formatter.Sheet{Columns: make([]string, 0, len(form.Prompts))}
	for _, p := range form.Prompts {
		sheet.Columns = append(sheet.Columns, p.VariableName)
	}
	for _, resp := range responses {
		if len(wanted) > 0 && !wanted[resp.ID] {
			continue
		}
		sheet.Rows = append(sheet.Rows, buildDocument(form, resp))
	}

	csvf := formatter.NewCSVFormatter()
	data, err := csvf.FormatSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("render csv export: %w", err)
	}

	ctxzap.Info(ctx, "responses exported",
		zap.Int64("form_id", formID),
		zap.Int("row_count", len(sheet.Rows)),
		zap.Int("size_bytes", len(data)),
	)

	return &Export{
		Data:        data,
		ContentType: csvf.ContentType(),
		Filename:    fmt.Sprintf("form_%d_responses%s", formID, csvf.FileExtension()),
	}, nil
}

func (uc *ResponseUsecase) load(ctx context.Context, formID, responseID int64) (*entity.Form, *entity.Response, error) {
	form, err := uc.formRepo.Get(ctx, formID)
	if err != nil {
		return nil, nil, err
	}

	resp, err := uc.responseRepo.Get(ctx, formID, responseID)
	if err != nil {
		return nil, nil, err
	}

	return form, resp, nil
}

func (uc *ResponseUsecase) render(ctx context.Context, format entity.ResultFormat, doc formatter.Document, basename string) (*Export, error) {
	f, err := uc.formats.Create(format)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(doc)
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", format, err)
	}

	ctxzap.Info(ctx, "response exported",
		zap.String("format", string(format)),
		zap.Int("size_bytes", len(data)),
	)

	return &Export{
		Data:        data,
		ContentType: f.ContentType(),
		Filename:    basename + f.FileExtension(),
	}, nil
}

// buildDocument pairs answers with prompts by variable name, in prompt
// order. Answers without a matching prompt are dropped; the synthetic
// output answer feeds the output section instead.
func buildDocument(form *entity.Form, resp *entity.Response) formatter.Document {
	byVariable := make(map[string]string, len(resp.Answers))
	for _, a := range resp.Answers {
		byVariable[a.VariableName] = a.ResponseText
	}

	doc := formatter.Document{
		Title:       form.Title,
		ResponseID:  resp.ID,
		SubmittedAt: resp.CreatedAt,
		Output:      findOutput(resp.Answers),
	}

	for _, p := range form.Prompts {
		answer, ok := byVariable[p.VariableName]
		if !ok {
			continue
		}
		doc.Items = append(doc.Items, formatter.Item{
			Variable: p.VariableName,
			Question: p.QuestionText,
			Answer:   answer,
		})
	}

	return doc
}

func findOutput(answers []entity.Answer) string {
	for _, a := range answers {
		if a.VariableName == entity.OutputVariableName {
			return a.ResponseText
		}
	}
	return ""
}
