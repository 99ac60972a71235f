package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"hda-data/internal/domain"
	"hda-data/internal/service"

	"go.uber.org/zap"
)

const recordsPrefix = "/data/api/v1/"

type RecordsHandler struct {
	records service.RecordService
	logger  *zap.Logger
}

func NewRecordsHandler(records service.RecordService, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{records: records, logger: logger}
}

// ServeHTTP dispatches:
//
//	GET|POST            /data/api/v1/{collection}
//	GET                 /data/api/v1/{collection}/export
//	PUT|PATCH|DELETE    /data/api/v1/{collection}/{id}
func (h *RecordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, recordsPrefix), "/")
	parts := strings.Split(rest, "/")
	if rest == "" || len(parts) > 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	kind, err := domain.ParseKind(parts[0])
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
		return
	}
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Result[any]{Code: ResultTokenExpired, Type: "error", Message: "missing session"})
		return
	}
	owner := session.UserID

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r, kind, owner)
		case http.MethodPost:
			h.create(w, r, kind, owner)
		default:
			methodNotAllowed(w)
		}
		return
	}

	id := parts[1]
	if id == "export" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.export(w, r, kind, owner)
		return
	}
	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		h.update(w, r, kind, owner, id)
	case http.MethodDelete:
		h.delete(w, r, kind, owner, id)
	default:
		methodNotAllowed(w)
	}
}

func (h *RecordsHandler) list(w http.ResponseWriter, r *http.Request, kind domain.Kind, owner string) {
	records, err := h.records.List(r.Context(), kind, owner)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(ListResult[domain.Record]{Items: records, Total: len(records)}))
}

func (h *RecordsHandler) create(w http.ResponseWriter, r *http.Request, kind domain.Kind, owner string) {
	body, err := readBody(r, maxBodyBytes)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	rec, err := h.records.Create(r.Context(), kind, owner, body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(rec))
}

func (h *RecordsHandler) update(w http.ResponseWriter, r *http.Request, kind domain.Kind, owner, id string) {
	body, err := readBody(r, maxBodyBytes)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	patch, err := service.DecodePatch(body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	rec, err := h.records.Update(r.Context(), kind, owner, id, patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(rec))
}

func (h *RecordsHandler) delete(w http.ResponseWriter, r *http.Request, kind domain.Kind, owner, id string) {
	if err := h.records.Delete(r.Context(), kind, owner, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": true, "id": id}))
}

func (h *RecordsHandler) export(w http.ResponseWriter, r *http.Request, kind domain.Kind, owner string) {
	records, err := h.records.List(r.Context(), kind, owner)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	data, err := GenerateCollectionExport(kind, records)
	if err != nil {
		h.logger.Error("Failed to generate export", zap.String("collection", string(kind)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", kind, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
