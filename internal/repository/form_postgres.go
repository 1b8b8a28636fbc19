package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jazmy/formchat/internal/entity"
)

// FormRepository defines the interface for form persistence. Prompt sets
// are written and read as a whole: Create and Update replace the full
// ordered set, Get returns prompts in ascending order.
type FormRepository interface {
	Create(ctx context.Context, form entity.Form, prompts []entity.Prompt) (*entity.Form, error)
	Get(ctx context.Context, id int64) (*entity.Form, error)
	List(ctx context.Context) ([]entity.FormSummary, error)
	Update(ctx context.Context, form entity.Form, prompts []entity.Prompt) (*entity.Form, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

var _ FormRepository = &FormPostgres{}

// FormPostgres implements FormRepository using PostgreSQL
type FormPostgres struct {
	db *pgxpool.Pool
}

func NewFormPostgres(db *pgxpool.Pool) *FormPostgres {
	return &FormPostgres{db: db}
}

func (r *FormPostgres) Create(ctx context.Context, form entity.Form, prompts []entity.Prompt) (*entity.Form, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create form: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO forms (title, description, starter_prompt, output_prompt, active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING formid, title, description, starter_prompt, output_prompt, active, created_at, updated_at`,
		form.Title, form.Description, form.StarterPrompt, form.OutputPrompt,
	)

	created, err := scanForm(row)
	if err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}

	created.Prompts, err = insertPrompts(ctx, tx, created.ID, prompts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create form: %w", err)
	}

	return created, nil
}

func (r *FormPostgres) Get(ctx context.Context, id int64) (*entity.Form, error) {
	row := r.db.QueryRow(ctx, `
		SELECT formid, title, description, starter_prompt, output_prompt, active, created_at, updated_at
		FROM forms WHERE formid = $1`, id,
	)

	form, err := scanForm(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrFormNotFound
		}
		return nil, fmt.Errorf("get form: %w", err)
	}

	form.Prompts, err = r.getPrompts(ctx, id)
	if err != nil {
		return nil, err
	}

	return form, nil
}

func (r *FormPostgres) List(ctx context.Context) ([]entity.FormSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.formid, f.title, f.description, f.active, f.created_at,
		       (SELECT COUNT(*) FROM responses r WHERE r.formid = f.formid) AS response_count,
		       (SELECT COUNT(*) FROM prompts p WHERE p.formid = f.formid) AS question_count
		FROM forms f
		ORDER BY f.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	var summaries []entity.FormSummary
	for rows.Next() {
		var s entity.FormSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Active, &s.CreatedAt,
			&s.ResponseCount, &s.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan form summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Update replaces the form row and its whole prompt set in one
// transaction. Prompt identifiers are not preserved across updates.
func (r *FormPostgres) Update(ctx context.Context, form entity.Form, prompts []entity.Prompt) (*entity.Form, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update form: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE forms
		SET title = $2, description = $3, starter_prompt = $4, output_prompt = $5, updated_at = now()
		WHERE formid = $1
		RETURNING formid, title, description, starter_prompt, output_prompt, active, created_at, updated_at`,
		form.ID, form.Title, form.Description, form.StarterPrompt, form.OutputPrompt,
	)

	updated, err := scanForm(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrFormNotFound
		}
		return nil, fmt.Errorf("update form: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM prompts WHERE formid = $1`, form.ID); err != nil {
		return nil, fmt.Errorf("clear prompts: %w", err)
	}

	updated.Prompts, err = insertPrompts(ctx, tx, form.ID, prompts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update form: %w", err)
	}

	return updated, nil
}

func (r *FormPostgres) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE forms SET active = $2, updated_at = now() WHERE formid = $1`, id, active,
	)
	if err != nil {
		return fmt.Errorf("set form active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrFormNotFound
	}
	return nil
}

// Delete removes the form; prompts and responses follow via ON DELETE
// CASCADE.
func (r *FormPostgres) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM forms WHERE formid = $1`, id)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrFormNotFound
	}
	return nil
}

func (r *FormPostgres) getPrompts(ctx context.Context, formID int64) ([]entity.Prompt, error) {
	rows, err := r.db.Query(ctx, `
		SELECT promptid, formid, question_text, variable_name, validation_criteria, prompt_order, created_at
		FROM prompts WHERE formid = $1
		ORDER BY prompt_order ASC`, formID,
	)
	if err != nil {
		return nil, fmt.Errorf("get prompts: %w", err)
	}
	defer rows.Close()

	var prompts []entity.Prompt
	for rows.Next() {
		var p entity.Prompt
		if err := rows.Scan(&p.ID, &p.FormID, &p.QuestionText, &p.VariableName,
			&p.ValidationCriteria, &p.Order, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, p)
	}

	return prompts, rows.Err()
}

func insertPrompts(ctx context.Context, tx pgx.Tx, formID int64, prompts []entity.Prompt) ([]entity.Prompt, error) {
	inserted := make([]entity.Prompt, 0, len(prompts))
	for _, p := range prompts {
		row := tx.QueryRow(ctx, `
			INSERT INTO prompts (formid, question_text, variable_name, validation_criteria, prompt_order)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING promptid, formid, question_text, variable_name, validation_criteria, prompt_order, created_at`,
			formID, p.QuestionText, p.VariableName, p.ValidationCriteria, p.Order,
		)

		var out entity.Prompt
		if err := row.Scan(&out.ID, &out.FormID, &out.QuestionText, &out.VariableName,
			&out.ValidationCriteria, &out.Order, &out.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert prompt %q: %w", p.VariableName, err)
		}
		inserted = append(inserted, out)
	}
	return inserted, nil
}

func scanForm(row pgx.Row) (*entity.Form, error) {
	var f entity.Form
	if err := row.Scan(&f.ID, &f.Title, &f.Description, &f.StarterPrompt,
		&f.OutputPrompt, &f.Active, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}
