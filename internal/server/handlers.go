package server

import (
	"fmt"
	"html"
	"io"
	"net/http"

	stdErrors "errors"

	"git.home.luguber.info/inful/informer/internal/errors"
	"git.home.luguber.info/inful/informer/internal/logfields"
	"git.home.luguber.info/inful/informer/internal/orders"
	"git.home.luguber.info/inful/informer/internal/stripe"
)

const maxWebhookBody = 1 << 20

// handleCreateCheckoutSession opens a payment session for the posted kit and
// redirects the browser to the processor's checkout page.
func (s *Server) handleCreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	if s.opts.Payments == nil {
		s.adapter.WriteErrorResponse(w, errors.New(errors.CategoryStorage, errors.SeverityError, "payments not configured"))
		return
	}
	if err := r.ParseForm(); err != nil {
		s.adapter.WriteErrorResponse(w, errors.ValidationError("malformed form body"))
		return
	}
	sku := r.PostFormValue("sku")
	state := r.PostFormValue("state")

	if s.opts.Kits != nil && sku != "" {
		kit, err := s.opts.Kits.ProductBySKU(r.Context(), sku)
		if err != nil {
			s.opts.Logger.Warn("kit lookup failed, proceeding with checkout", logfields.SKU(sku), logfields.Error(err))
		} else if kit != nil && !kit.Active {
			s.adapter.WriteErrorResponse(w, errors.ValidationError("kit is no longer available"))
			return
		}
	}

	session, err := s.opts.Payments.CreateCheckoutSession(r.Context(), sku, state)
	s.opts.Recorder.IncCheckoutSession(err == nil)
	if err != nil {
		s.adapter.WriteErrorResponse(w, err)
		return
	}

	s.opts.Logger.Info("checkout session created", logfields.SKU(sku), logfields.State(state))
	http.Redirect(w, r, session.URL, http.StatusSeeOther)
}

// handleWebhook processes payment processor events. Signature verification
// happens before anything else; an unverified payload has no side effects.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		s.opts.Recorder.IncWebhookEvent("rejected")
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}

	event, err := stripe.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), s.opts.WebhookSecret)
	if err != nil {
		s.opts.Recorder.IncWebhookEvent("rejected")
		s.opts.Logger.Warn("webhook rejected", logfields.Error(err), logfields.RemoteAddr(r.RemoteAddr))
		http.Error(w, "signature verification failed", http.StatusBadRequest)
		return
	}

	if event.Type != "checkout.session.completed" {
		s.opts.Recorder.IncWebhookEvent("ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	session, err := event.Session()
	if err != nil {
		s.opts.Recorder.IncWebhookEvent("rejected")
		http.Error(w, "malformed session object", http.StatusBadRequest)
		return
	}

	email := session.CustomerDetails.Email
	priceID := session.Metadata["priceId"]
	state := session.Metadata["state"]

	if s.opts.Orders != nil {
		_, err := s.opts.Orders.RecordOrder(r.Context(), event.ID, email, priceID, state)
		if stdErrors.Is(err, orders.ErrDuplicateEvent) {
			s.opts.Recorder.IncWebhookEvent("duplicate")
			s.opts.Logger.Info("webhook event already processed", logfields.EventID(event.ID))
			w.WriteHeader(http.StatusOK)
			return
		}
		if err != nil {
			s.opts.Recorder.IncWebhookEvent("failed")
			s.adapter.WriteErrorResponse(w, err)
			return
		}
	}

	if s.opts.Fulfillment != nil {
		if err := s.opts.Fulfillment.Forward(r.Context(), event.ID, email, priceID, state); err != nil {
			// The order is recorded; fulfillment is retried out of band.
			s.opts.Recorder.IncWebhookEvent("failed")
			s.opts.Logger.Error("fulfillment forwarding failed", logfields.EventID(event.ID), logfields.Error(err))
			w.WriteHeader(http.StatusOK)
			return
		}
	}

	s.opts.Recorder.IncWebhookEvent("processed")
	s.opts.Logger.Info("order fulfilled", logfields.EventID(event.ID), logfields.State(state))
	w.WriteHeader(http.StatusOK)
}

// handleDownload verifies payment for a checkout session and serves the
// delivery page.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if s.opts.Payments == nil {
		s.adapter.WriteErrorResponse(w, errors.New(errors.CategoryStorage, errors.SeverityError, "payments not configured"))
		return
	}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		s.adapter.WriteErrorResponse(w, errors.ValidationError("session_id is required"))
		return
	}

	session, err := s.opts.Payments.GetCheckoutSession(r.Context(), sessionID)
	if err != nil {
		s.adapter.WriteErrorResponse(w, err)
		return
	}
	if !session.Paid() {
		http.Error(w, "payment not completed", http.StatusForbidden)
		return
	}

	downloadURL := ""
	if s.opts.Kits != nil {
		if kit, err := s.opts.Kits.ProductBySKU(r.Context(), session.Metadata["priceId"]); err == nil && kit != nil {
			downloadURL = kit.DownloadURL
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if downloadURL != "" {
		fmt.Fprintf(w, `<!doctype html><html><body><h1>Your kit is ready</h1><p><a href="%s">Download your documents</a></p></body></html>`,
			html.EscapeString(downloadURL))
		return
	}
	_, _ = w.Write([]byte(`<!doctype html><html><body><h1>Payment verified</h1><p>Your documents are on the way to your email.</p></body></html>`))
}
