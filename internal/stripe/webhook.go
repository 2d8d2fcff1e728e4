package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/informer/internal/errors"
)

// DefaultTolerance is the accepted clock skew between the signature
// timestamp and receipt.
const DefaultTolerance = 5 * time.Minute

// Event is a webhook envelope.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// Session decodes the event payload as a checkout session.
func (e *Event) Session() (*CheckoutSession, error) {
	var s CheckoutSession
	if err := json.Unmarshal(e.Data.Object, &s); err != nil {
		return nil, errors.WebhookRejected("event object is not a checkout session").
			WithContext("event_id", e.ID)
	}
	return &s, nil
}

// signatureHeader is the parsed Stripe-Signature header: a unix timestamp
// and one or more v1 signatures.
type signatureHeader struct {
	timestamp time.Time
	sigs      [][]byte
}

func parseSignatureHeader(header string) (*signatureHeader, error) {
	if header == "" {
		return nil, errors.WebhookRejected("missing signature header")
	}
	parsed := &signatureHeader{}
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return nil, errors.WebhookRejected("malformed signature timestamp")
			}
			parsed.timestamp = time.Unix(ts, 0)
		case "v1":
			sig, err := hex.DecodeString(kv[1])
			if err != nil {
				continue // ignore undecodable entries, a valid one may follow
			}
			parsed.sigs = append(parsed.sigs, sig)
		}
	}
	if parsed.timestamp.IsZero() {
		return nil, errors.WebhookRejected("signature header has no timestamp")
	}
	if len(parsed.sigs) == 0 {
		return nil, errors.WebhookRejected("signature header has no v1 signature")
	}
	return parsed, nil
}

// VerifySignature checks the webhook signature per the processor's
// documented scheme: HMAC-SHA256 over "<timestamp>.<payload>" with the
// endpoint secret, constant-time comparison, and a timestamp tolerance.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration, now time.Time) error {
	parsed, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	if tolerance > 0 {
		age := now.Sub(parsed.timestamp)
		if age > tolerance || age < -tolerance {
			return errors.WebhookRejected("signature timestamp outside tolerance").
				WithContext("age", age.String())
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", parsed.timestamp.Unix(), payload)
	expected := mac.Sum(nil)

	for _, sig := range parsed.sigs {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return errors.WebhookRejected("no matching signature")
}

// ConstructEvent verifies the signature and decodes the event. Any failure
// rejects the event before side effects.
func ConstructEvent(payload []byte, header, secret string) (*Event, error) {
	if err := VerifySignature(payload, header, secret, DefaultTolerance, time.Now()); err != nil {
		return nil, err
	}
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.WebhookRejected("malformed event payload")
	}
	if event.ID == "" {
		return nil, errors.WebhookRejected("event has no id")
	}
	return &event, nil
}

// SignPayload produces a valid Stripe-Signature header value for payload at
// ts. Used by tests and the webhook replay tool.
func SignPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}
