package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/octobees/lead-capture/internal/entity"
	"github.com/octobees/lead-capture/internal/middleware"
)

const (
	customersPath = "/admin/customers/customer"
	leadsPath     = "/admin/crm/leads"
)

// Client talks to the CRM admin API using a static Basic credential.
type Client struct {
	client  *http.Client
	baseURL string
	auth    string
}

// NewClient builds a CRM client. A nil http client gets a default with the given timeout.
func NewClient(client *http.Client, baseURL, auth string, timeout time.Duration) *Client {
	if baseURL == "" {
		panic("crm baseURL must not be empty")
	}
	if client == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
	}
}

// FindCustomersByEmail lists customers filtered by their primary email.
func (c *Client) FindCustomersByEmail(ctx context.Context, email string) ([]entity.Record, error) {
	return c.list(ctx, customersPath, "main_email", email)
}

// FindCustomersByPhone lists customers filtered by phone.
func (c *Client) FindCustomersByPhone(ctx context.Context, phone string) ([]entity.Record, error) {
	return c.list(ctx, customersPath, "phone", phone)
}

// FindLeadsByEmail lists leads filtered by email.
func (c *Client) FindLeadsByEmail(ctx context.Context, email string) ([]entity.Record, error) {
	return c.list(ctx, leadsPath, "email", email)
}

// FindLeadsByPhone lists leads filtered by phone.
func (c *Client) FindLeadsByPhone(ctx context.Context, phone string) ([]entity.Record, error) {
	return c.list(ctx, leadsPath, "phone", phone)
}

// CreateLead submits a new lead. The decoded body is returned whatever the
// response status; a body that is not JSON yields a nil result and no error.
func (c *Client) CreateLead(ctx context.Context, lead entity.NewLead) (any, error) {
	body, err := json.Marshal(lead)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lead: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+leadsPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read crm response: %w", err)
	}

	var result any
	if err := decode(data, &result); err != nil {
		return nil, nil
	}
	return result, nil
}

func (c *Client) list(ctx context.Context, path, field, value string) ([]entity.Record, error) {
	query := url.Values{}
	query.Set(field, value)

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("crm error (status %d): %s", resp.StatusCode, extractCRMError(resp.Body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read crm response: %w", err)
	}

	var records []entity.Record
	if err := decode(data, &records); err != nil {
		return nil, fmt.Errorf("could not decode crm response: %w", err)
	}
	return records, nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create crm request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if rid := middleware.RequestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crm request failed: %w", err)
	}
	return resp, nil
}

// decode keeps numeric identifiers as json.Number so they are echoed back verbatim.
func decode(data []byte, into any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(into)
}

func extractCRMError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return "crm returned an error"
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return string(data)
}
