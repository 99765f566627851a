package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/octobees/lead-capture/internal/config"
	"github.com/octobees/lead-capture/internal/entity"
	"github.com/octobees/lead-capture/internal/handler"
	"github.com/octobees/lead-capture/internal/service"
)

type fakeCRM struct {
	leads []entity.Record
}

func (f *fakeCRM) FindCustomersByEmail(ctx context.Context, email string) ([]entity.Record, error) {
	return nil, nil
}

func (f *fakeCRM) FindCustomersByPhone(ctx context.Context, phone string) ([]entity.Record, error) {
	return nil, nil
}

func (f *fakeCRM) FindLeadsByEmail(ctx context.Context, email string) ([]entity.Record, error) {
	return f.leads, nil
}

func (f *fakeCRM) FindLeadsByPhone(ctx context.Context, phone string) ([]entity.Record, error) {
	return f.leads, nil
}

func (f *fakeCRM) CreateLead(ctx context.Context, lead entity.NewLead) (any, error) {
	return map[string]any{"id": json.Number("5")}, nil
}

func newTestServer(cfg *config.Config) http.Handler {
	crm := &fakeCRM{leads: []entity.Record{{"email": "known@x.com", "id": json.Number("12")}}}
	log := zap.NewNop().Sugar()
	handlers := Handlers{
		Form: handler.NewFormHandler(),
		Leads: handler.NewLeadHandler(
			service.NewLookupService(crm),
			service.NewLeadsService(crm, "https://crm.example.com/admin/crm/leads/view", "Web", "Lead"),
			log,
		),
	}
	return New(cfg, handlers, log)
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(&config.Config{})

	tests := map[string]struct {
		method      string
		path        string
		body        string
		contentType string
		rawBody     bool
		wantStatus  int
		wantBody    string
		wantType    string
	}{
		"form page": {
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusOK,
			wantType:   "text/html",
		},
		"health": {
			method:     http.MethodGet,
			path:       "/healthz",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		"check": {
			method:     http.MethodPost,
			path:       "/api/check",
			body:       `{"email":"Known@x.com"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"found":true,"where":"lead","id":12}`,
		},
		"create": {
			method:     http.MethodPost,
			path:       "/api/create",
			body:       `{"email":"a@x.com","phone":"082","address":"1 Main Rd"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"id":5,"url":"https://crm.example.com/admin/crm/leads/view/5"}`,
		},
		"check without content type": {
			method:     http.MethodPost,
			path:       "/api/check",
			body:       `{"email":"known@x.com"}`,
			rawBody:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"found":true,"where":"lead","id":12}`,
		},
		"check as text/plain": {
			method:      http.MethodPost,
			path:        "/api/check",
			body:        `{"email":"known@x.com"}`,
			contentType: "text/plain",
			wantStatus:  http.StatusOK,
			wantBody:    `{"found":true,"where":"lead","id":12}`,
		},
		"create without content type": {
			method:     http.MethodPost,
			path:       "/api/create",
			body:       `{"email":"a@x.com","phone":"082","address":"1 Main Rd"}`,
			rawBody:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"id":5,"url":"https://crm.example.com/admin/crm/leads/view/5"}`,
		},
		"create as text/plain": {
			method:      http.MethodPost,
			path:        "/api/create",
			body:        `{"email":"a@x.com","phone":"082","address":"1 Main Rd"}`,
			contentType: "text/plain;charset=UTF-8",
			wantStatus:  http.StatusOK,
			wantBody:    `{"success":true,"id":5,"url":"https://crm.example.com/admin/crm/leads/view/5"}`,
		},
		"unknown path": {
			method:     http.MethodGet,
			path:       "/nope",
			wantStatus: http.StatusNotFound,
			wantBody:   "Not found",
			wantType:   "text/plain",
		},
		"wrong method on api route": {
			method:     http.MethodGet,
			path:       "/api/check",
			wantStatus: http.StatusNotFound,
			wantBody:   "Not found",
			wantType:   "text/plain",
		},
		"post to form page": {
			method:     http.MethodPost,
			path:       "/",
			wantStatus: http.StatusNotFound,
			wantBody:   "Not found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			switch {
			case tt.contentType != "":
				req.Header.Set("Content-Type", tt.contentType)
			case tt.body != "" && !tt.rawBody:
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantBody != "" && strings.TrimSpace(rec.Body.String()) != tt.wantBody {
				t.Fatalf("expected body %s, got %s", tt.wantBody, rec.Body.String())
			}
			if tt.wantType != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.wantType) {
				t.Fatalf("expected content type %s, got %s", tt.wantType, rec.Header().Get("Content-Type"))
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Fatalf("expected request id header")
			}
		})
	}
}

func TestRoutesRateLimitCreate(t *testing.T) {
	srv := newTestServer(&config.Config{
		RateLimitCreate: config.RateLimitConfig{Requests: 1, Interval: time.Minute},
	})
	body := `{"email":"a@x.com","phone":"082","address":"1 Main Rd"}`

	statuses := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/create", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429], got %v", statuses)
	}

	// check has its own bucket and is unlimited here
	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(`{"phone":"082"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected check unaffected, got %d", rec.Code)
	}
}
