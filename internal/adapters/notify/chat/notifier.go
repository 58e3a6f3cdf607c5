package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/logger"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/codeGROOVE-dev/retry"
)

const (
	colorGreen  = 0x2ecc71
	colorBlue   = 0x3498db
	colorPurple = 0x9b59b6
	colorRed    = 0xe74c3c
	colorOrange = 0xe67e22
	colorYellow = 0xf1c40f
	colorGrey   = 0x95a5a6

	defaultTimeout = 10 * time.Second
)

var ErrMissingURL = errors.New("chat webhook url is empty")

type Options struct {
	URL      string
	Timeout  time.Duration
	Attempts uint
	Backoff  time.Duration
	Client   *http.Client
	Location *time.Location
	Logger   *logger.Logger
}

// Notifier posts an embed per event to a chat log-channel webhook.
type Notifier struct {
	url      string
	timeout  time.Duration
	attempts uint
	backoff  time.Duration
	client   *http.Client
	location *time.Location
	log      *logger.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(opts Options) (*Notifier, error) {
	if opts.URL == "" {
		return nil, ErrMissingURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Attempts == 0 {
		opts.Attempts = 2
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &Notifier{
		url:      opts.URL,
		timeout:  opts.Timeout,
		attempts: opts.Attempts,
		backoff:  opts.Backoff,
		client:   opts.Client,
		location: opts.Location,
		log:      opts.Logger,
	}, nil
}

type message struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// EmbedColor picks the embed color: flagged results by kind, clean ones by event.
func EmbedColor(event domain.EventType, result domain.ValidationResult) int {
	if result.Annotation != "" {
		switch result.Kind {
		case domain.AnnotationLate:
			return colorOrange
		case domain.AnnotationBreakExceeded:
			return colorYellow
		case domain.AnnotationNoPriorLogin:
			return colorPurple
		default:
			return colorRed
		}
	}

	switch event {
	case domain.EventLogin:
		return colorGreen
	case domain.EventBreakStart:
		return colorBlue
	case domain.EventBreakEnd:
		return colorPurple
	case domain.EventLogout:
		return colorRed
	default:
		return colorGrey
	}
}

func (n *Notifier) buildMessage(note ports.Notification) message {
	local := note.At.In(n.location)
	title := note.Event.Label() + " recorded"
	if note.Result.Annotation != "" {
		title += " " + note.Result.Annotation
	}

	fields := []embedField{
		{Name: "User", Value: fmt.Sprintf("<@%s> (`%s`)", note.UserID, note.DisplayName)},
		{Name: "Time", Value: fmt.Sprintf("`%s`", local.Format("02/01/2006 15:04:05")), Inline: true},
		{Name: "Team", Value: note.Team, Inline: true},
	}
	if note.Result.Annotation != "" {
		fields = append(fields, embedField{Name: "Observation", Value: fmt.Sprintf("`%s`", note.Result.Annotation)})
	}
	if note.BreakElapsed != nil {
		fields = append(fields, embedField{Name: "Break", Value: fmt.Sprintf("%d min", domain.ElapsedMinutes(*note.BreakElapsed)), Inline: true})
	}
	if !note.SaleReport.Empty() {
		fields = append(fields, embedField{Name: "Sales", Value: saleLines(note.SaleReport)})
	}

	footer := "Recorded in spreadsheet"
	if !note.Recorded {
		footer = "Spreadsheet not updated"
	}

	return message{Embeds: []embed{{
		Title:       title,
		Description: fmt.Sprintf("**%s**", n.location.String()),
		Color:       EmbedColor(note.Event, note.Result),
		Timestamp:   note.At.UTC().Format(time.RFC3339),
		Fields:      fields,
		Footer:      &embedFooter{Text: footer},
	}}}
}

func saleLines(r domain.SaleReport) string {
	lines := make([]string, 0, len(r.Items)+1)
	for _, item := range r.Items {
		lines = append(lines, fmt.Sprintf("%d. %s: $%.2f (net $%.2f)", item.Number, item.Name, item.Gross, item.Net))
	}
	lines = append(lines, fmt.Sprintf("Total: $%.2f (net $%.2f)", r.TotalGross(), r.TotalNet()))
	return strings.Join(lines, "\n")
}

func (n *Notifier) Notify(ctx context.Context, note ports.Notification) error {
	body, err := json.Marshal(n.buildMessage(note))
	if err != nil {
		return fmt.Errorf("encode chat message: %w", err)
	}

	return retry.Do(
		func() error {
			return n.post(ctx, body)
		},
		retry.Context(ctx),
		retry.Attempts(n.attempts),
		retry.Delay(n.backoff),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			n.log.Warn().Err(err).Uint("attempt", attempt+1).Str("user_id", string(note.UserID)).Msg("retrying chat notification")
		}),
	)
}

func (n *Notifier) post(ctx context.Context, body []byte) error {
	attemptCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("build chat request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post chat message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("chat webhook status %d", resp.StatusCode)
	default:
		return retry.Unrecoverable(fmt.Errorf("chat webhook status %d", resp.StatusCode))
	}
}
