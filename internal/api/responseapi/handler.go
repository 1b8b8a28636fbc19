package responseapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jazmy/formchat/internal/api/apierr"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/logger"
	httpresp "github.com/jazmy/formchat/internal/pkg/response"
	"github.com/jazmy/formchat/internal/usecase/response"
)

type Handler struct {
	usecase ResponseUsecase
}

func NewHandler(usecase ResponseUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Submit handles POST /responses/{form_id}
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitResponse")

	formID, err := formIDParam(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	var req entity.SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Respond(ctx, w, fmt.Errorf("%w: body", entity.ErrInvalidParameter))
		return
	}

	resp, err := h.usecase.Submit(ctx, formID, &req)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	if req.ResponseID == nil {
		httpresp.Created(w, resp)
		return
	}
	httpresp.Success(w, resp)
}

// List handles GET /responses/{form_id}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListResponses")

	formID, err := formIDParam(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	responses, err := h.usecase.List(ctx, formID)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	if responses == nil {
		responses = []*entity.Response{}
	}
	httpresp.Success(w, responses)
}

// Get handles GET /responses/{form_id}/{response_id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetResponse")

	formID, responseID, err := pathIDs(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	resp, err := h.usecase.Get(ctx, formID, responseID)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	httpresp.Success(w, resp)
}

// Delete handles DELETE /responses/{form_id}/{response_id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteResponse")

	formID, responseID, err := pathIDs(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	if err := h.usecase.Delete(ctx, formID, responseID); err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	httpresp.NoContent(w)
}

// Export handles GET /responses/{form_id}/{response_id}/export.
// Query: format=md|pdf|docx|csv (default md), view=transcript|result
// (default transcript).
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportResponse")

	formID, responseID, err := pathIDs(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	var export *response.Export
	switch view := r.URL.Query().Get("view"); view {
	case "", "transcript":
		export, err = h.usecase.ExportTranscript(ctx, formID, responseID, format)
	case "result":
		export, err = h.usecase.ExportResult(ctx, formID, responseID, format)
	default:
		apierr.Respond(ctx, w, fmt.Errorf("%w: view %q", entity.ErrInvalidParameter, view))
		return
	}
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	httpresp.File(w, export.ContentType, export.Filename, export.Data)
}

// ExportAll handles GET /responses/{form_id}/export, a CSV sheet of all
// stored responses for the form. Query: ids=1,2,3 (optional) restricts
// the rows to those response ids.
func (h *Handler) ExportAll(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportResponses")

	formID, err := formIDParam(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	ids, err := idsQuery(r)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	export, err := h.usecase.ExportAll(ctx, formID, ids)
	if err != nil {
		apierr.Respond(ctx, w, err)
		return
	}

	httpresp.File(w, export.ContentType, export.Filename, export.Data)
}

func idsQuery(r *http.Request) ([]int64, error) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: ids", entity.ErrInvalidParameter)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "form_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: form_id", entity.ErrInvalidParameter)
	}
	return id, nil
}

func pathIDs(r *http.Request) (int64, int64, error) {
	formID, err := formIDParam(r)
	if err != nil {
		return 0, 0, err
	}

	responseID, err := strconv.ParseInt(chi.URLParam(r, "response_id"), 10, 64)
	if err != nil || responseID <= 0 {
		return 0, 0, fmt.Errorf("%w: response_id", entity.ErrInvalidParameter)
	}

	return formID, responseID, nil
}
