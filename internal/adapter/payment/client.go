package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPClient implements Gateway against the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	verifier   *SignatureVerifier
	httpClient *http.Client
	logger     *slog.Logger
}

// sessionResponse mirrors the JSON payload returned on session creation.
type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// eventEnvelope mirrors the JSON payload of a webhook event.
type eventEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type sessionPayload struct {
	ID                string `json:"id"`
	ClientReferenceID string `json:"client_reference_id"`
	CustomerEmail     string `json:"customer_email"`
	AmountTotal       int64  `json:"amount_total"`
}

// NewHTTPClient creates a gateway client with a bounded request timeout.
func NewHTTPClient(baseURL, apiKey, webhookSecret string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:  parsed,
		apiKey:   apiKey,
		verifier: NewSignatureVerifier(webhookSecret),
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreateCheckoutSession opens a hosted payment session with the provider.
func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, p SessionParams) (*Session, error) {
	quantity := p.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", p.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(p.AmountMinor, 10))
	form.Set("line_items[0][price_data][product_data][name]", p.ProductLabel)
	form.Set("line_items[0][quantity]", strconv.FormatInt(quantity, 10))
	form.Set("customer_email", p.CustomerEmail)
	form.Set("client_reference_id", p.ClientReferenceID)
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)

	endpoint := c.baseURL.JoinPath("/v1/checkout/sessions")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("checkout session request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("payment provider error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var data sessionResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return &Session{ID: data.ID, URL: data.URL}, nil
}

// VerifyAndParseEvent authenticates a webhook delivery and decodes it.
func (c *HTTPClient) VerifyAndParseEvent(payload []byte, signatureHeader string) (*Event, error) {
	if err := c.verifier.Verify(payload, signatureHeader); err != nil {
		return nil, err
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	event := &Event{ID: envelope.ID, Type: envelope.Type}
	if envelope.Type == EventCheckoutCompleted && len(envelope.Data.Object) > 0 {
		var session sessionPayload
		if err := json.Unmarshal(envelope.Data.Object, &session); err != nil {
			return nil, fmt.Errorf("decode session object: %w", err)
		}
		event.Session = CheckoutSession{
			ID:                session.ID,
			ClientReferenceID: session.ClientReferenceID,
			CustomerEmail:     session.CustomerEmail,
			AmountTotal:       session.AmountTotal,
		}
	}
	return event, nil
}
