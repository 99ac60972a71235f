package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hda-data/internal/domain"
	"hda-data/internal/service"

	"go.uber.org/zap"
)

// HoneyBookBridge is the CRM surface the handler needs.
type HoneyBookBridge interface {
	SyncLeadToHoneyBook(ctx context.Context, lead *domain.Lead) (*service.HoneyBookContact, error)
	SyncBookingToHoneyBook(ctx context.Context, booking *domain.Booking, clientID string) (*service.HoneyBookProject, error)
	ListContacts(ctx context.Context, limit int) ([]service.HoneyBookContact, error)
	ListProjects(ctx context.Context, limit int) ([]service.HoneyBookProject, error)
	TestConnection(ctx context.Context) bool
}

type HoneyBookHandler struct {
	bridge  HoneyBookBridge
	records service.RecordService
	logger  *zap.Logger
}

func NewHoneyBookHandler(bridge HoneyBookBridge, records service.RecordService, logger *zap.Logger) *HoneyBookHandler {
	return &HoneyBookHandler{bridge: bridge, records: records, logger: logger}
}

func (h *HoneyBookHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"connected": h.bridge.TestConnection(r.Context())}))
}

func (h *HoneyBookHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.bridge.ListContacts(r.Context(), listLimit(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(ListResult[service.HoneyBookContact]{Items: contacts, Total: len(contacts)}))
}

func (h *HoneyBookHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.bridge.ListProjects(r.Context(), listLimit(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(ListResult[service.HoneyBookProject]{Items: projects, Total: len(projects)}))
}

// SyncLead mirrors one of the caller's leads: {"lead_id": "..."}.
func (h *HoneyBookHandler) SyncLead(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LeadID string `json:"lead_id"`
	}
	if !h.decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.LeadID) == "" {
		writeError(w, h.logger, &domain.ValidationError{Field: "lead_id", Reason: "is required"})
		return
	}
	rec, err := h.records.Get(r.Context(), domain.KindLead, ownerFromContext(r.Context()), body.LeadID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	lead, ok := rec.(*domain.Lead)
	if !ok {
		writeError(w, h.logger, fmt.Errorf("leads store returned %T", rec))
		return
	}
	contact, err := h.bridge.SyncLeadToHoneyBook(r.Context(), lead)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(contact))
}

// SyncBooking mirrors a booking: {"booking_id": "...", "client_id": "..."}.
func (h *HoneyBookHandler) SyncBooking(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BookingID string `json:"booking_id"`
		ClientID  string `json:"client_id"`
	}
	if !h.decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.BookingID) == "" {
		writeError(w, h.logger, &domain.ValidationError{Field: "booking_id", Reason: "is required"})
		return
	}
	if strings.TrimSpace(body.ClientID) == "" {
		writeError(w, h.logger, &domain.ValidationError{Field: "client_id", Reason: "is required"})
		return
	}
	rec, err := h.records.Get(r.Context(), domain.KindBooking, ownerFromContext(r.Context()), body.BookingID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	booking, ok := rec.(*domain.Booking)
	if !ok {
		writeError(w, h.logger, fmt.Errorf("bookings store returned %T", rec))
		return
	}
	project, err := h.bridge.SyncBookingToHoneyBook(r.Context(), booking, body.ClientID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(project))
}

func (h *HoneyBookHandler) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	err := readBodyJSON(r, maxBodyBytes, out)
	switch {
	case err == nil:
		return true
	case errors.Is(err, errBodyTooLarge):
		writeError(w, h.logger, err)
	default:
		writeJSON(w, http.StatusBadRequest, Fail("body must be a JSON object"))
	}
	return false
}

func listLimit(r *http.Request) int {
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return limit
}
