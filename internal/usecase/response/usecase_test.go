package response

import (
	"context"
	"strings"
	"testing"

	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/formatter"
	"github.com/jazmy/formchat/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResponseRepo struct {
	nextID    int64
	responses map[int64]*entity.Response
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{nextID: 1, responses: make(map[int64]*entity.Response)}
}

func (f *fakeResponseRepo) Save(_ context.Context, formID int64, responseID *int64, answers []entity.Answer) (*entity.Response, error) {
	if responseID != nil {
		resp, ok := f.responses[*responseID]
		if !ok {
			return nil, entity.ErrResponseNotFound
		}
		resp.Answers = answers
		return resp, nil
	}

	resp := &entity.Response{ID: f.nextID, FormID: formID, Answers: answers}
	f.responses[resp.ID] = resp
	f.nextID++
	return resp, nil
}

func (f *fakeResponseRepo) Get(_ context.Context, formID, responseID int64) (*entity.Response, error) {
	resp, ok := f.responses[responseID]
	if !ok || resp.FormID != formID {
		return nil, entity.ErrResponseNotFound
	}
	return resp, nil
}

func (f *fakeResponseRepo) ListByForm(_ context.Context, formID int64) ([]*entity.Response, error) {
	var out []*entity.Response
	for _, r := range f.responses {
		if r.FormID == formID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) Delete(_ context.Context, formID, responseID int64) error {
	resp, ok := f.responses[responseID]
	if !ok || resp.FormID != formID {
		return entity.ErrResponseNotFound
	}
	delete(f.responses, responseID)
	return nil
}

type fakeFormRepo struct {
	form *entity.Form
}

func (f *fakeFormRepo) Create(_ context.Context, _ entity.Form, _ []entity.Prompt) (*entity.Form, error) {
	panic("not used")
}

func (f *fakeFormRepo) Get(_ context.Context, id int64) (*entity.Form, error) {
	if f.form == nil || f.form.ID != id {
		return nil, entity.ErrFormNotFound
	}
	return f.form, nil
}

func (f *fakeFormRepo) List(_ context.Context) ([]entity.FormSummary, error) { return nil, nil }

func (f *fakeFormRepo) Update(_ context.Context, _ entity.Form, _ []entity.Prompt) (*entity.Form, error) {
	panic("not used")
}

func (f *fakeFormRepo) SetActive(_ context.Context, _ int64, _ bool) error { return nil }
func (f *fakeFormRepo) Delete(_ context.Context, _ int64) error            { return nil }

func feedbackForm() *entity.Form {
	return &entity.Form{
		ID:    3,
		Title: "Event Feedback",
		Prompts: []entity.Prompt{
			{QuestionText: "What went well?", VariableName: "highlights", Order: 0},
			{QuestionText: "What could improve?", VariableName: "improvements", Order: 1},
		},
	}
}

func newFixture() (*ResponseUsecase, *fakeResponseRepo) {
	repo := newFakeResponseRepo()
	uc := NewUsecase(repo, &fakeFormRepo{form: feedbackForm()}, formatter.NewFactory(),
		validator.NewValidator(), zap.NewNop())
	return uc, repo
}

func TestSubmitCreateThenUpdate(t *testing.T) {
	uc, repo := newFixture()
	ctx := context.Background()

	created, err := uc.Submit(ctx, 3, &entity.SubmitResponseRequest{
		Answers: []entity.Answer{{VariableName: "highlights", ResponseText: "Great speakers."}},
	})
	require.NoError(t, err)

	id := created.ID
	updated, err := uc.Submit(ctx, 3, &entity.SubmitResponseRequest{
		ResponseID: &id,
		Answers: []entity.Answer{
			{VariableName: "highlights", ResponseText: "Great speakers."},
			{VariableName: "improvements", ResponseText: "Shorter talks."},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Len(t, repo.responses, 1)
	assert.Len(t, repo.responses[id].Answers, 2)
}

func TestSubmitValidation(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Submit(context.Background(), 3, &entity.SubmitResponseRequest{})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestSubmitUnknownForm(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Submit(context.Background(), 99, &entity.SubmitResponseRequest{
		Answers: []entity.Answer{{VariableName: "highlights", ResponseText: "x"}},
	})
	assert.ErrorIs(t, err, entity.ErrFormNotFound)
}

func TestExportTranscriptOrdersByPrompt(t *testing.T) {
	uc, repo := newFixture()
	ctx := context.Background()

	// Answers stored out of prompt order plus an unmatched leftover.
	repo.responses[10] = &entity.Response{
		ID:     10,
		FormID: 3,
		Answers: []entity.Answer{
			{VariableName: "improvements", ResponseText: "Shorter talks."},
			{VariableName: "obsolete_var", ResponseText: "ignored"},
			{VariableName: "highlights", ResponseText: "Great speakers."},
			{VariableName: entity.OutputVariableName, ResponseText: "Positive overall."},
		},
	}

	export, err := uc.ExportTranscript(ctx, 3, 10, entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "response_10.md", export.Filename)

	text := string(export.Data)
	first := "## What went well?"
	second := "## What could improve?"
	assert.Contains(t, text, first)
	assert.Contains(t, text, second)
	assert.Less(t, strings.Index(text, first), strings.Index(text, second))
	assert.NotContains(t, text, "ignored")
	assert.Contains(t, text, "Positive overall.")
}

func TestExportResultRequiresOutput(t *testing.T) {
	uc, repo := newFixture()
	ctx := context.Background()

	repo.responses[11] = &entity.Response{
		ID:     11,
		FormID: 3,
		Answers: []entity.Answer{
			{VariableName: "highlights", ResponseText: "Great speakers."},
		},
	}

	_, err := uc.ExportResult(ctx, 3, 11, entity.FormatMarkdown)
	assert.ErrorIs(t, err, entity.ErrNoOutput)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.ExportTranscript(context.Background(), 3, 1, entity.ResultFormat("xlsx"))
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestExportAllRendersOneRowPerResponse(t *testing.T) {
	uc, repo := newFixture()
	ctx := context.Background()

	repo.responses[10] = &entity.Response{
		ID:     10,
		FormID: 3,
		Answers: []entity.Answer{
			{VariableName: "highlights", ResponseText: "Great speakers."},
			{VariableName: "improvements", ResponseText: "Shorter talks."},
			{VariableName: entity.OutputVariableName, ResponseText: "Positive overall."},
		},
	}
	repo.responses[11] = &entity.Response{
		ID:     11,
		FormID: 3,
		Answers: []entity.Answer{
			{VariableName: "highlights", ResponseText: "Good venue."},
		},
	}

	export, err := uc.ExportAll(ctx, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "form_3_responses.csv", export.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", export.ContentType)

	lines := strings.Split(strings.TrimSpace(string(export.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Response_ID,Submission_Date,highlights,improvements,output", lines[0])

	text := string(export.Data)
	assert.Contains(t, text, "Great speakers.,Shorter talks.,Positive overall.")
	// Missing answers and missing output stay as blank cells.
	assert.Contains(t, text, "Good venue.,,")
}

func TestExportAllFiltersByID(t *testing.T) {
	uc, repo := newFixture()
	ctx := context.Background()

	repo.responses[10] = &entity.Response{
		ID:      10,
		FormID:  3,
		Answers: []entity.Answer{{VariableName: "highlights", ResponseText: "Great speakers."}},
	}
	repo.responses[11] = &entity.Response{
		ID:      11,
		FormID:  3,
		Answers: []entity.Answer{{VariableName: "highlights", ResponseText: "Good venue."}},
	}

	export, err := uc.ExportAll(ctx, 3, []int64{11})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(export.Data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Good venue.")
	assert.NotContains(t, string(export.Data), "Great speakers.")
}

func TestExportAllUnknownForm(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.ExportAll(context.Background(), 99, nil)
	assert.ErrorIs(t, err, entity.ErrFormNotFound)
}
