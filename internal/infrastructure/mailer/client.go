package mailer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/f1mates/league-api/internal/domain/invite"
	"github.com/f1mates/league-api/internal/platform/resilience"
)

type ClientConfig struct {
	BaseURL   string
	Token     string
	FromName  string
	FromEmail string
	Timeout   time.Duration
	Retry     resilience.RetryConfig
	Breaker   resilience.CircuitBreakerConfig
}

// Client delivers invite emails through an HTTP mail API. Failures trip a
// circuit breaker so a dead provider does not stall invite requests.
type Client struct {
	httpClient *http.Client
	sendURL    string
	token      string
	fromName   string
	fromEmail  string
	retry      resilience.RetryConfig
	breaker    *resilience.CircuitBreaker
	logger     *slog.Logger
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	var breaker *resilience.CircuitBreaker
	if cfg.Breaker.Enabled {
		normalized := resilience.NormalizeCircuitBreakerConfig(cfg.Breaker)
		breaker = resilience.NewCircuitBreaker(
			normalized.FailureThreshold,
			normalized.OpenTimeout,
			normalized.HalfOpenMaxReq,
		)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		sendURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/") + "/v1/send",
		token:      strings.TrimSpace(cfg.Token),
		fromName:   cfg.FromName,
		fromEmail:  cfg.FromEmail,
		retry:      resilience.NormalizeRetryConfig(cfg.Retry),
		breaker:    breaker,
		logger:     logger,
	}
}

type sendRequest struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
	Subject   string `json:"subject"`
	TextBody  string `json:"text_body"`
}

// SendInvite delivers the invitation email. Transient provider failures are
// retried with backoff; an open breaker fails fast.
func (c *Client) SendInvite(ctx context.Context, invitation invite.Invitation) error {
	payload := sendRequest{
		FromName:  c.fromName,
		FromEmail: c.fromEmail,
		ToEmail:   invitation.Email,
		Subject:   fmt.Sprintf("%s invited you to their F1 league", invitation.SenderName),
		TextBody: fmt.Sprintf(
			"%s wants you in their F1 mates league. Join with invite code %s.",
			invitation.SenderName, invitation.Code,
		),
	}

	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal invite email")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("mailer.send_url", c.sendURL),
			attribute.String("mailer.invite_id", invitation.ID),
		)
	}

	return resilience.Retry(ctx, c.retry, func(ctx context.Context) error {
		return c.send(ctx, encoded)
	})
}

func (c *Client) send(ctx context.Context, encoded []byte) error {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return errors.Wrap(err, "mailer circuit open")
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(encoded)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sendURL, strings.NewReader(buf.String()))
	if err != nil {
		return errors.Wrap(err, "create mail request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return fmt.Errorf("%w: %w", resilience.ErrTransient, errors.Wrap(err, "send mail request"))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.recordFailure()
		failure := errors.Newf("mail send status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: %w", resilience.ErrTransient, failure)
		}
		return failure
	}

	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
	c.logger.InfoContext(ctx, "invite email sent")
	return nil
}

func (c *Client) recordFailure() {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
}
