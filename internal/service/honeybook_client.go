package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hda-data/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HoneyBookContact is the CRM's contact shape.
type HoneyBookContact struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Website string `json:"website"`
}

// HoneyBookProject is the CRM's project shape.
type HoneyBookProject struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	ClientID  string  `json:"client_id"`
	Status    string  `json:"status"`
	StartDate string  `json:"start_date"`
	Notes     string  `json:"notes"`
	Value     float64 `json:"value"`
}

type honeyBookError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// HoneyBookClient mirrors leads and bookings into HoneyBook. Calls are
// never retried: a repeated call creates a repeated remote record.
type HoneyBookClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewHoneyBookClient creates the client; token is sent as a bearer credential.
func NewHoneyBookClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *HoneyBookClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}

	return &HoneyBookClient{
		httpClient: client,
		logger:     logger,
	}
}

// SyncLeadToHoneyBook creates a remote contact from a lead.
func (c *HoneyBookClient) SyncLeadToHoneyBook(ctx context.Context, lead *domain.Lead) (*HoneyBookContact, error) {
	contact := HoneyBookContact{
		Name:    strings.TrimSpace(lead.FirstName + " " + lead.LastName),
		Email:   lead.Email,
		Phone:   lead.Phone,
		Company: lead.Company,
		Website: lead.Website,
	}

	var out HoneyBookContact
	if err := c.do(ctx, "create contact", http.MethodPost, "/contacts", nil, contact, &out); err != nil {
		return nil, err
	}

	c.logger.Info("Lead synced to HoneyBook",
		zap.String("lead_id", lead.ID),
		zap.String("contact_id", out.ID),
	)
	return &out, nil
}

// SyncBookingToHoneyBook creates an active remote project for clientID.
func (c *HoneyBookClient) SyncBookingToHoneyBook(ctx context.Context, booking *domain.Booking, clientID string) (*HoneyBookProject, error) {
	name := booking.Service
	if booking.ClientName != "" {
		name = booking.Service + " - " + booking.ClientName
	}
	project := HoneyBookProject{
		Name:      name,
		ClientID:  clientID,
		Status:    "active",
		StartDate: booking.Date,
		Notes:     booking.Notes,
		Value:     booking.Amount,
	}

	var out HoneyBookProject
	if err := c.do(ctx, "create project", http.MethodPost, "/projects", nil, project, &out); err != nil {
		return nil, err
	}

	c.logger.Info("Booking synced to HoneyBook",
		zap.String("booking_id", booking.ID),
		zap.String("project_id", out.ID),
		zap.String("client_id", clientID),
	)
	return &out, nil
}

func (c *HoneyBookClient) ListContacts(ctx context.Context, limit int) ([]HoneyBookContact, error) {
	out := []HoneyBookContact{}
	if err := c.do(ctx, "list contacts", http.MethodGet, "/contacts", limitQuery(limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HoneyBookClient) ListProjects(ctx context.Context, limit int) ([]HoneyBookProject, error) {
	out := []HoneyBookProject{}
	if err := c.do(ctx, "list projects", http.MethodGet, "/projects", limitQuery(limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TestConnection performs a one-contact list and reports only success.
func (c *HoneyBookClient) TestConnection(ctx context.Context) bool {
	if _, err := c.ListContacts(ctx, 1); err != nil {
		c.logger.Warn("HoneyBook connection test failed", zap.Error(err))
		return false
	}
	return true
}

func (c *HoneyBookClient) do(ctx context.Context, op, method, path string, query map[string]string, body, out any) error {
	req := c.httpClient.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error("HoneyBook API call failed", zap.String("op", op), zap.Error(err))
		return &domain.IntegrationError{Op: op, Err: err}
	}

	if !resp.IsSuccess() {
		iErr := &domain.IntegrationError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Message:    remoteMessage(resp),
		}
		c.logger.Error("HoneyBook API returned error",
			zap.String("op", op),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", iErr.Message),
		)
		return iErr
	}

	if err := decodeEnvelope(resp.Body(), out); err != nil {
		return &domain.IntegrationError{Op: op, StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// decodeEnvelope accepts both {"data": ...} and a bare payload.
func decodeEnvelope(raw []byte, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if raw[0] == '{' {
		if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
			raw = envelope.Data
		}
	}
	return json.Unmarshal(raw, out)
}

func remoteMessage(resp *resty.Response) string {
	var body honeyBookError
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(resp.StatusCode())
}

func limitQuery(limit int) map[string]string {
	if limit <= 0 {
		return nil
	}
	return map[string]string{"limit": strconv.Itoa(limit)}
}
