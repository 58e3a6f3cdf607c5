package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logoutRecord(t *testing.T) ports.Record {
	t.Helper()

	report, err := domain.NewSaleReport(2, []string{"ana", "bea"}, []string{"$100", "50.5"}, domain.DefaultNetRate)
	require.NoError(t, err)

	return ports.Record{
		EventID:    "evt-1",
		Timestamp:  time.Date(2026, 2, 14, 13, 45, 0, 0, time.FixedZone("ART", -3*3600)),
		UserName:   "gleidys t2",
		Action:     domain.EventLogout,
		Team:       "T2",
		Result:     domain.ValidationResult{Kind: domain.AnnotationOutOfTime, Annotation: "OUT OF TIME"},
		SaleReport: report,
	}
}

func newTestRecorder(t *testing.T, url string, attempts uint) *Recorder {
	t.Helper()

	rec, err := NewRecorder(Options{URL: url, Attempts: attempts, Backoff: time.Millisecond, Timeout: time.Second})
	require.NoError(t, err)
	return rec
}

func TestRecordPostsSpreadsheetPayload(t *testing.T) {
	t.Parallel()

	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"result":"success"}`))
	}))
	defer server.Close()

	require.NoError(t, newTestRecorder(t, server.URL, 2).Record(context.Background(), logoutRecord(t)))

	assert.Equal(t, "2026-02-14T13:45:00-03:00", got["timestamp"])
	assert.Equal(t, "gleidys t2", got["usuario"])
	assert.Equal(t, "logout", got["action"])
	assert.Equal(t, "T2", got["team"])
	assert.Equal(t, "OUT OF TIME", got["validacion"])
	assert.Equal(t, "evt-1", got["event_id"])
	assert.EqualValues(t, 2, got["cantidad_modelos"])

	items, ok := got["modelos_data"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.EqualValues(t, 1, first["numero"])
	assert.Equal(t, "ana", first["nombre"])
	assert.InDelta(t, 100.0, first["monto_bruto"], 1e-9)
	assert.InDelta(t, 80.0, first["monto_neto"], 1e-9)
}

func TestRecordOmitsSaleFieldsWithoutReport(t *testing.T) {
	t.Parallel()

	record := logoutRecord(t)
	record.Action = domain.EventLogin
	record.SaleReport = domain.SaleReport{}
	record.Result = domain.OnTimeResult()

	body, err := encodeRecord(record)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "modelos_data")
	assert.NotContains(t, string(body), "cantidad_modelos")
	assert.Contains(t, string(body), `"validacion":""`)
}

func TestRecordRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"result":"success"}`))
	}))
	defer server.Close()

	require.NoError(t, newTestRecorder(t, server.URL, 2).Record(context.Background(), logoutRecord(t)))
	assert.Equal(t, int32(2), calls.Load())
}

func TestRecordGivesUpAfterAttempts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := newTestRecorder(t, server.URL, 2).Record(context.Background(), logoutRecord(t))
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 503")
	assert.Equal(t, int32(2), calls.Load())
}

func TestRecordDoesNotRetryRejections(t *testing.T) {
	t.Parallel()

	tests := map[string]http.HandlerFunc{
		"application error": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"result":"error","error":"sheet locked"}`))
		},
		"client error": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		},
		"not json": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>moved</html>`))
		},
	}

	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				handler(w, r)
			}))
			defer server.Close()

			err := newTestRecorder(t, server.URL, 3).Record(context.Background(), logoutRecord(t))
			require.ErrorIs(t, err, ErrRejected)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestRecordAttemptTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	rec, err := NewRecorder(Options{URL: server.URL, Attempts: 1, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	err = rec.Record(context.Background(), logoutRecord(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRecorderRequiresURL(t *testing.T) {
	t.Parallel()

	_, err := NewRecorder(Options{})
	require.ErrorIs(t, err, ErrMissingURL)
}
