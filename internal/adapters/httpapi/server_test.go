package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bnema/attendance-cli/internal/adapters/breaks/memory"
	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type panickingDispatcher struct{}

func (panickingDispatcher) Dispatch(context.Context, application.EventCommand) (application.Outcome, error) {
	panic("boom")
}

func (panickingDispatcher) ScheduleView() application.ScheduleView { return application.ScheduleView{} }

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	RequestID  string          `json:"request_id"`
	Data       json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T, now time.Time) http.Handler {
	t.Helper()

	directory, err := domain.NewDirectory(domain.DefaultShiftEntries())
	require.NoError(t, err)

	dispatcher := application.NewDispatcher(directory, application.NewBreakTracker(memory.NewStore()), nil, nil, application.DispatcherConfig{
		Policy:   domain.DefaultPolicy(),
		Location: time.UTC,
		Clock:    fixedClock{now: now},
	})
	return NewRouter(dispatcher, Options{})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestPostEventLogin(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, time.Date(2026, 2, 14, 22, 45, 0, 0, time.UTC))
	rec, env := do(t, h, http.MethodPost, "/v1/events", `{"user_id":"42","display_name":"Luis T2","type":"login"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, env.RequestID)

	var out outcomeResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "42", out.UserID)
	assert.Equal(t, "T2", out.Team)
	assert.Equal(t, "late", out.Kind)
	assert.Equal(t, "LATE", out.Annotation)
	assert.Equal(t, 15, out.OffsetMinutes)
	assert.False(t, out.Accepted)
	assert.False(t, out.Recorded)
	require.NotNil(t, out.Shift)
	assert.Equal(t, "luis t2", out.Shift.Key)
	assert.True(t, out.Shift.Night)
}

func TestPostEventLogoutWithSaleReport(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, time.Date(2026, 2, 14, 6, 35, 0, 0, time.UTC))
	body := `{"user_id":"42","display_name":"luis t2","type":"logout",
		"sale_report":{"items":[{"name":"ana","amount":"$1,000"},{"name":"bea","amount":"50"}]}}`
	rec, env := do(t, h, http.MethodPost, "/v1/events", body)

	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	var out outcomeResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.True(t, out.Accepted)
	require.NotNil(t, out.SaleReport)
	assert.Len(t, out.SaleReport.Items, 2)
	assert.InDelta(t, 1050.0, out.SaleReport.TotalGross, 1e-9)
	assert.InDelta(t, 840.0, out.SaleReport.TotalNet, 1e-9)
}

func TestPostEventHasPriorLoginFalse(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, time.Date(2026, 2, 14, 6, 35, 0, 0, time.UTC))
	rec, env := do(t, h, http.MethodPost, "/v1/events", `{"user_id":"42","display_name":"luis t2","type":"logout","has_prior_login":false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var out outcomeResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "no_prior_login", out.Kind)
	assert.Equal(t, "DID NOT LOG IN", out.Annotation)
	assert.True(t, out.Accepted)
}

func TestPostEventRejectsBadInput(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"empty body", ``, http.StatusBadRequest, "empty body"},
		{"malformed", `{"user_id":`, http.StatusBadRequest, "invalid JSON"},
		{"unknown field", `{"user_id":"1","display_name":"a","type":"login","extra":1}`, http.StatusBadRequest, "unknown field"},
		{"missing user", `{"display_name":"a","type":"login"}`, http.StatusUnprocessableEntity, "user_id is a required field"},
		{"bad type", `{"user_id":"1","display_name":"a","type":"lunch"}`, http.StatusUnprocessableEntity, "type must be one of"},
		{"too many items", `{"user_id":"1","display_name":"a","type":"logout","sale_report":{"items":[{"name":"a","amount":"1"},{"name":"b","amount":"1"},{"name":"c","amount":"1"},{"name":"d","amount":"1"}]}}`, http.StatusUnprocessableEntity, "items"},
		{"bad amount", `{"user_id":"1","display_name":"a","type":"logout","sale_report":{"items":[{"name":"a","amount":"lots"}]}}`, http.StatusUnprocessableEntity, "amount of item 1"},
		{"sale on login", `{"user_id":"1","display_name":"a","type":"login","sale_report":{"items":[{"name":"a","amount":"1"}]}}`, http.StatusUnprocessableEntity, "only logout carries a sale report"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/v1/events", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status, env.StatusCode)
			assert.Contains(t, env.Error, tt.msg)
		})
	}
}

func TestGetScheduleAndHealth(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC))

	rec, env := do(t, h, http.MethodGet, "/v1/schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var schedule scheduleResponse
	require.NoError(t, json.Unmarshal(env.Data, &schedule))
	assert.Equal(t, "UTC", schedule.Zone)
	assert.Equal(t, []string{"T1", "T2", "T3"}, schedule.Teams)
	assert.Len(t, schedule.Shifts, 9)

	rec, _ = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflightOnlyWhenOriginsConfigured(t *testing.T) {
	t.Parallel()

	preflight := func(h http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/v1/events", nil)
		req.Header.Set("Origin", "https://panel.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	open := NewRouter(panickingDispatcher{}, Options{CORSOrigins: []string{"https://panel.example"}})
	rec := preflight(open)
	assert.Equal(t, "https://panel.example", rec.Header().Get("Access-Control-Allow-Origin"))

	closed := NewRouter(panickingDispatcher{}, Options{})
	rec = preflight(closed)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovererTurnsPanicIntoServerError(t *testing.T) {
	t.Parallel()

	h := NewRouter(panickingDispatcher{}, Options{})
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`{"user_id":"1","display_name":"a","type":"login"}`))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServerServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(panickingDispatcher{}, Options{Addr: ln.Addr().String()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
