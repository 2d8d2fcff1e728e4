package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    interface{}
	}{
		{"RunID", KeyRunID, "run-1", RunID("run-1")},
		{"Stage", KeyStage, "render", Stage("render")},
		{"SKU", KeySKU, "INF-CA-NC", SKU("INF-CA-NC")},
		{"State", KeyState, "CA", State("CA")},
		{"Category", KeyCategory, "Divorce Kits", Category("Divorce Kits")},
		{"Path", KeyPath, "/products/x/index.html", Path("/products/x/index.html")},
		{"URL", KeyURL, "http://example", URL("http://example")},
		{"EventID", KeyEventID, "evt_1", EventID("evt_1")},
		{"OrderID", KeyOrderID, "ord-1", OrderID("ord-1")},
		{"Method", KeyMethod, "GET", Method("GET")},
		{"RemoteAddr", KeyRemoteAddr, "1.2.3.4", RemoteAddr("1.2.3.4")},
	}

	for _, tc := range cases {
		a := tc.attr.(slog.Attr)
		if a.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, a.Key)
		}
		if got := a.Value.String(); got != tc.attrVal { // Value is slog.Value
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Status(200); v.Key != KeyStatus {
		t.Fatalf("Status key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
	if v := Artifacts(7); v.Key != KeyArtifacts {
		t.Fatalf("Artifacts key mismatch: %s", v.Key)
	}
	if v := Products(2); v.Key != KeyProducts {
		t.Fatalf("Products key mismatch: %s", v.Key)
	}
	if v := States(50); v.Key != KeyStates {
		t.Fatalf("States key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
