package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jazmy/formchat/internal/entity"
)

// ResponseRepository persists answer sets. Save with a nil responseID
// creates a new row; a non-nil one replaces the answers of that row.
type ResponseRepository interface {
	Save(ctx context.Context, formID int64, responseID *int64, answers []entity.Answer) (*entity.Response, error)
	Get(ctx context.Context, formID, responseID int64) (*entity.Response, error)
	ListByForm(ctx context.Context, formID int64) ([]*entity.Response, error)
	Delete(ctx context.Context, formID, responseID int64) error
}

var _ ResponseRepository = &ResponsePostgres{}

// ResponsePostgres implements ResponseRepository using PostgreSQL. The
// answer set is stored as a single JSONB document per row.
type ResponsePostgres struct {
	db *pgxpool.Pool
}

func NewResponsePostgres(db *pgxpool.Pool) *ResponsePostgres {
	return &ResponsePostgres{db: db}
}

// answersDoc is the stored JSONB shape.
type answersDoc struct {
	Answers []entity.Answer `json:"answers"`
}

func (r *ResponsePostgres) Save(ctx context.Context, formID int64, responseID *int64, answers []entity.Answer) (*entity.Response, error) {
	doc, err := json.Marshal(answersDoc{Answers: answers})
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	var row pgx.Row
	if responseID == nil {
		row = r.db.QueryRow(ctx, `
			INSERT INTO responses (formid, answers)
			VALUES ($1, $2)
			RETURNING responseid, formid, answers, created_at, updated_at`,
			formID, doc,
		)
	} else {
		row = r.db.QueryRow(ctx, `
			UPDATE responses SET answers = $3, updated_at = now()
			WHERE responseid = $1 AND formid = $2
			RETURNING responseid, formid, answers, created_at, updated_at`,
			*responseID, formID, doc,
		)
	}

	resp, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrResponseNotFound
		}
		return nil, fmt.Errorf("save response: %w", err)
	}
	return resp, nil
}

func (r *ResponsePostgres) Get(ctx context.Context, formID, responseID int64) (*entity.Response, error) {
	row := r.db.QueryRow(ctx, `
		SELECT responseid, formid, answers, created_at, updated_at
		FROM responses WHERE responseid = $1 AND formid = $2`,
		responseID, formID,
	)

	resp, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrResponseNotFound
		}
		return nil, fmt.Errorf("get response: %w", err)
	}
	return resp, nil
}

func (r *ResponsePostgres) ListByForm(ctx context.Context, formID int64) ([]*entity.Response, error) {
	rows, err := r.db.Query(ctx, `
		SELECT responseid, formid, answers, created_at, updated_at
		FROM responses WHERE formid = $1
		ORDER BY created_at DESC`, formID,
	)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var responses []*entity.Response
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		responses = append(responses, resp)
	}

	return responses, rows.Err()
}

func (r *ResponsePostgres) Delete(ctx context.Context, formID, responseID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM responses WHERE responseid = $1 AND formid = $2`,
		responseID, formID,
	)
	if err != nil {
		return fmt.Errorf("delete response: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrResponseNotFound
	}
	return nil
}

func scanResponse(row pgx.Row) (*entity.Response, error) {
	var (
		resp entity.Response
		raw  []byte
	)
	if err := row.Scan(&resp.ID, &resp.FormID, &raw, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
		return nil, err
	}

	var doc answersDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	resp.Answers = doc.Answers

	return &resp, nil
}
