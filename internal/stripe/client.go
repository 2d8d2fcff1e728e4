// Package stripe is a minimal client for the payment processor's checkout
// and webhook APIs. Only the operations the storefront needs are covered.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// DefaultBaseURL is the live API origin.
const DefaultBaseURL = "https://api.stripe.com"

// Client is an explicit handle to the payment processor API. Construct once
// and pass where needed.
type Client struct {
	secretKey  string
	baseURL    string
	successURL string
	cancelURL  string
	httpc      *http.Client
}

// NewClient creates a client. baseURL falls back to the live API; the
// http.Client falls back to a 15s-timeout default.
func NewClient(secretKey, baseURL, successURL, cancelURL string, httpc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		secretKey:  secretKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		successURL: successURL,
		cancelURL:  cancelURL,
		httpc:      httpc,
	}
}

// CheckoutSession is the subset of the session object the storefront reads.
type CheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PaymentStatus   string            `json:"payment_status"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

// Paid reports whether the session has been paid for.
func (s *CheckoutSession) Paid() bool { return s.PaymentStatus == "paid" }

// CreateCheckoutSession opens a payment session for one kit. priceID is the
// processor price identifier; state is carried in metadata for fulfillment.
func (c *Client) CreateCheckoutSession(ctx context.Context, priceID, state string) (*CheckoutSession, error) {
	if priceID == "" {
		return nil, errors.ValidationFailed("priceId", "must not be empty")
	}
	if state == "" {
		return nil, errors.ValidationFailed("state", "must not be empty")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Set("metadata[priceId]", priceID)
	form.Set("metadata[state]", state)

	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCheckoutSession fetches a session by ID, used to verify payment before
// delivering a download.
func (c *Client) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	if id == "" {
		return nil, errors.ValidationFailed("session_id", "must not be empty")
	}
	var session CheckoutSession
	if err := c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(id), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// apiError mirrors the processor's error envelope.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.InternalError("build payment request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.PaymentError("payment processor unreachable", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.PaymentError("read payment processor response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		msg := fmt.Sprintf("payment processor returned status %d", resp.StatusCode)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return errors.PaymentError(msg, nil).WithContext("status", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.PaymentError("decode payment processor response", err)
		}
	}
	return nil
}
