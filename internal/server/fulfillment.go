package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// FulfillmentForwarder posts fulfilled orders to the external fulfillment
// endpoint. The storefront owns no delivery logic beyond this contract.
type FulfillmentForwarder struct {
	endpoint string
	httpc    *http.Client
}

// NewFulfillmentForwarder creates a forwarder for the given endpoint URL.
func NewFulfillmentForwarder(endpoint string, httpc *http.Client) *FulfillmentForwarder {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &FulfillmentForwarder{endpoint: endpoint, httpc: httpc}
}

type fulfillmentRequest struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
	PriceID string `json:"price_id"`
	State   string `json:"state"`
}

// Forward sends one order to the fulfillment endpoint.
func (f *FulfillmentForwarder) Forward(ctx context.Context, eventID, email, priceID, state string) error {
	body, err := json.Marshal(fulfillmentRequest{EventID: eventID, Email: email, PriceID: priceID, State: state})
	if err != nil {
		return errors.InternalError("encode fulfillment request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.InternalError("build fulfillment request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpc.Do(req)
	if err != nil {
		return errors.WrapRetryable(err, errors.CategoryNetwork, errors.SeverityError, "fulfillment endpoint unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New(errors.CategoryNetwork, errors.SeverityError, "fulfillment endpoint returned non-success status").
			WithContext("status", resp.StatusCode)
	}
	return nil
}
