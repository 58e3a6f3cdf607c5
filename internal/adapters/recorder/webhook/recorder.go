package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/attendance-cli/internal/logger"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/codeGROOVE-dev/retry"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultAttempts = 2
	defaultBackoff  = time.Second
	maxResponseBody = 64 << 10
)

var (
	ErrMissingURL = errors.New("recorder webhook url is empty")
	ErrRejected   = errors.New("recorder webhook rejected the record")
)

type Options struct {
	URL string
	// Timeout bounds each attempt, not the whole call.
	Timeout  time.Duration
	Attempts uint
	Backoff  time.Duration
	Client   *http.Client
	Logger   *logger.Logger
}

// Recorder posts attendance rows to a spreadsheet script endpoint.
type Recorder struct {
	url      string
	timeout  time.Duration
	attempts uint
	backoff  time.Duration
	client   *http.Client
	log      *logger.Logger
}

var _ ports.Recorder = (*Recorder)(nil)

func NewRecorder(opts Options) (*Recorder, error) {
	if opts.URL == "" {
		return nil, ErrMissingURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Attempts == 0 {
		opts.Attempts = defaultAttempts
	}
	if opts.Backoff < 0 {
		opts.Backoff = defaultBackoff
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &Recorder{
		url:      opts.URL,
		timeout:  opts.Timeout,
		attempts: opts.Attempts,
		backoff:  opts.Backoff,
		client:   opts.Client,
		log:      opts.Logger,
	}, nil
}

type saleItemPayload struct {
	Number int     `json:"numero"`
	Name   string  `json:"nombre"`
	Gross  float64 `json:"monto_bruto"`
	Net    float64 `json:"monto_neto"`
}

type recordPayload struct {
	Timestamp  string            `json:"timestamp"`
	UserName   string            `json:"usuario"`
	Action     string            `json:"action"`
	Team       string            `json:"team"`
	Validation string            `json:"validacion"`
	EventID    string            `json:"event_id,omitempty"`
	SaleItems  []saleItemPayload `json:"modelos_data,omitempty"`
	SaleCount  int               `json:"cantidad_modelos,omitempty"`
}

type responsePayload struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

func encodeRecord(record ports.Record) ([]byte, error) {
	payload := recordPayload{
		Timestamp:  record.Timestamp.Format(time.RFC3339),
		UserName:   record.UserName,
		Action:     string(record.Action),
		Team:       record.Team,
		Validation: record.Result.Annotation,
		EventID:    record.EventID,
	}
	for _, item := range record.SaleReport.Items {
		payload.SaleItems = append(payload.SaleItems, saleItemPayload{
			Number: item.Number,
			Name:   item.Name,
			Gross:  item.Gross,
			Net:    item.Net,
		})
	}
	payload.SaleCount = len(payload.SaleItems)

	return json.Marshal(payload)
}

func (r *Recorder) Record(ctx context.Context, record ports.Record) error {
	body, err := encodeRecord(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	log := r.log.With().Str("event_id", record.EventID).Str("action", string(record.Action)).Logger()

	err = retry.Do(
		func() error {
			return r.post(ctx, body)
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.backoff),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Msg("retrying record")
		}),
	)
	if err != nil {
		return fmt.Errorf("record %s for %s: %w", record.Action, record.UserName, err)
	}

	log.Debug().Msg("record stored")
	return nil
}

func (r *Recorder) post(ctx context.Context, body []byte) error {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post record: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("webhook server error: status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return retry.Unrecoverable(fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode))
	}

	var result responsePayload
	if err := json.Unmarshal(data, &result); err != nil {
		return retry.Unrecoverable(fmt.Errorf("%w: decode response: %v", ErrRejected, err))
	}
	if result.Result != "success" {
		reason := result.Error
		if reason == "" {
			reason = "unknown error"
		}
		return retry.Unrecoverable(fmt.Errorf("%w: %s", ErrRejected, reason))
	}

	return nil
}
