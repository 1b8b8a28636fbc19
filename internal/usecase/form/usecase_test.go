package form

import (
	"context"
	"testing"

	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFormRepo struct {
	forms map[int64]*entity.Form

	lastPrompts []entity.Prompt
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: make(map[int64]*entity.Form)}
}

func (f *fakeFormRepo) Create(_ context.Context, form entity.Form, prompts []entity.Prompt) (*entity.Form, error) {
	form.ID = int64(len(f.forms) + 1)
	form.Active = true
	form.Prompts = prompts
	f.forms[form.ID] = &form
	f.lastPrompts = prompts
	return &form, nil
}

func (f *fakeFormRepo) Get(_ context.Context, id int64) (*entity.Form, error) {
	form, ok := f.forms[id]
	if !ok {
		return nil, entity.ErrFormNotFound
	}
	return form, nil
}

func (f *fakeFormRepo) List(_ context.Context) ([]entity.FormSummary, error) {
	var out []entity.FormSummary
	for _, form := range f.forms {
		out = append(out, entity.FormSummary{ID: form.ID, Title: form.Title, Active: form.Active})
	}
	return out, nil
}

func (f *fakeFormRepo) Update(_ context.Context, form entity.Form, prompts []entity.Prompt) (*entity.Form, error) {
	if _, ok := f.forms[form.ID]; !ok {
		return nil, entity.ErrFormNotFound
	}
	form.Prompts = prompts
	f.forms[form.ID] = &form
	f.lastPrompts = prompts
	return &form, nil
}

func (f *fakeFormRepo) SetActive(_ context.Context, id int64, active bool) error {
	form, ok := f.forms[id]
	if !ok {
		return entity.ErrFormNotFound
	}
	form.Active = active
	return nil
}

func (f *fakeFormRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.forms[id]; !ok {
		return entity.ErrFormNotFound
	}
	delete(f.forms, id)
	return nil
}

func newUsecase(repo *fakeFormRepo) *FormUsecase {
	return NewUsecase(repo, validator.NewValidator(), zap.NewNop())
}

func TestCreateFormAssignsOrder(t *testing.T) {
	repo := newFakeFormRepo()
	uc := newUsecase(repo)

	created, err := uc.CreateForm(context.Background(), &entity.CreateFormRequest{
		Title: "Survey",
		Prompts: []entity.PromptInput{
			{QuestionText: "Name?", VariableName: "name"},
			{QuestionText: "Role?", VariableName: "role"},
			{QuestionText: "Team?", VariableName: "team"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Prompts, 3)
	for i, p := range repo.lastPrompts {
		assert.Equal(t, i, p.Order)
	}
}

func TestCreateFormValidation(t *testing.T) {
	uc := newUsecase(newFakeFormRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		req  entity.CreateFormRequest
		want error
	}{
		{
			name: "missing title",
			req:  entity.CreateFormRequest{},
			want: entity.ErrMissingField,
		},
		{
			name: "missing question text",
			req: entity.CreateFormRequest{
				Title:   "Survey",
				Prompts: []entity.PromptInput{{VariableName: "name"}},
			},
			want: entity.ErrMissingField,
		},
		{
			name: "duplicate variable name",
			req: entity.CreateFormRequest{
				Title: "Survey",
				Prompts: []entity.PromptInput{
					{QuestionText: "A?", VariableName: "name"},
					{QuestionText: "B?", VariableName: "name"},
				},
			},
			want: entity.ErrInvalidParameter,
		},
		{
			name: "reserved variable name",
			req: entity.CreateFormRequest{
				Title:   "Survey",
				Prompts: []entity.PromptInput{{QuestionText: "A?", VariableName: "output"}},
			},
			want: entity.ErrInvalidParameter,
		},
		{
			name: "malformed variable name",
			req: entity.CreateFormRequest{
				Title:   "Survey",
				Prompts: []entity.PromptInput{{QuestionText: "A?", VariableName: "first name"}},
			},
			want: entity.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateForm(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetActiveFormRejectsInactive(t *testing.T) {
	repo := newFakeFormRepo()
	uc := newUsecase(repo)
	ctx := context.Background()

	created, err := uc.CreateForm(ctx, &entity.CreateFormRequest{
		Title:   "Survey",
		Prompts: []entity.PromptInput{{QuestionText: "Name?", VariableName: "name"}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.SetActive(ctx, created.ID, false))

	_, err = uc.GetActiveForm(ctx, created.ID)
	assert.ErrorIs(t, err, entity.ErrFormInactive)

	// Admin access still works.
	form, err := uc.GetForm(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, form.Active)
}

func TestUpdateFormReplacesPrompts(t *testing.T) {
	repo := newFakeFormRepo()
	uc := newUsecase(repo)
	ctx := context.Background()

	created, err := uc.CreateForm(ctx, &entity.CreateFormRequest{
		Title:   "Survey",
		Prompts: []entity.PromptInput{{QuestionText: "Name?", VariableName: "name"}},
	})
	require.NoError(t, err)

	updated, err := uc.UpdateForm(ctx, created.ID, &entity.UpdateFormRequest{
		Title: "Survey v2",
		Prompts: []entity.PromptInput{
			{QuestionText: "Role?", VariableName: "role"},
			{QuestionText: "Team?", VariableName: "team"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Survey v2", updated.Title)
	require.Len(t, updated.Prompts, 2)
	assert.Equal(t, 0, updated.Prompts[0].Order)
	assert.Equal(t, 1, updated.Prompts[1].Order)
}

func TestDeleteUnknownForm(t *testing.T) {
	uc := newUsecase(newFakeFormRepo())
	err := uc.DeleteForm(context.Background(), 99)
	assert.ErrorIs(t, err, entity.ErrFormNotFound)
}
