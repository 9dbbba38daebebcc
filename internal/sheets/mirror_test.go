package sheets

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ClassroomAnswerLog/internal/models"

	"google.golang.org/api/option"
)

const testSheetID = "sheet-123"

// fakeSheets implements the three Sheets REST calls the mirror makes.
type fakeSheets struct {
	mu           sync.Mutex
	title        string
	rows         [][]string
	getStatus    int
	appendStatus int
	delay        time.Duration
	requests     atomic.Int32
	resolves     atomic.Int32
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-r.Context().Done():
			return
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	base := "/v4/spreadsheets/" + testSheetID
	path := r.URL.Path
	switch {
	case r.Method == http.MethodGet && path == base:
		f.resolves.Add(1)
		if f.getStatus != 0 {
			writeAPIError(w, f.getStatus)
			return
		}
		fmt.Fprintf(w, `{"sheets":[{"properties":{"title":%q}}]}`, f.title)

	case r.Method == http.MethodGet && strings.HasPrefix(path, base+"/values/"):
		if len(f.rows) == 0 {
			fmt.Fprint(w, `{"range":"Sheet1!A1:D1","majorDimension":"ROWS"}`)
			return
		}
		header, _ := json.Marshal(map[string]interface{}{"values": [][]string{f.rows[0]}})
		w.Write(header)

	case r.Method == http.MethodPost && strings.HasPrefix(path, base+"/values/") && strings.HasSuffix(path, ":append"):
		if f.appendStatus != 0 {
			writeAPIError(w, f.appendStatus)
			return
		}
		var body struct {
			Values [][]string `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeAPIError(w, http.StatusBadRequest)
			return
		}
		f.rows = append(f.rows, body.Values...)
		fmt.Fprintf(w, `{"spreadsheetId":%q}`, testSheetID)

	default:
		writeAPIError(w, http.StatusNotFound)
	}
}

func (f *fakeSheets) snapshot() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.rows...)
}

func writeAPIError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":"%s","status":"ERR"}}`, code, http.StatusText(code))
}

func newTestMirror(t *testing.T, fake *fakeSheets) *Mirror {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return newMirror(testSheetID, "",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
}

var testRecord = models.NewRecordAt(
	time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC),
	"Ada", "coins_key_insight", "Because total heads = H stays fixed\tand\nmore",
)

func TestNew_DisabledWithoutCredentials(t *testing.T) {
	m := New(Config{SheetURL: "https://docs.google.com/spreadsheets/d/abc/edit"})
	if m.Enabled() {
		t.Fatal("mirror without credentials must be disabled")
	}
	res := m.Mirror(context.Background(), testRecord)
	if res.Status != models.RemoteUnavailable {
		t.Fatalf("expected RemoteUnavailable, got %+v", res)
	}
}

func TestNew_DisabledWithoutSheet(t *testing.T) {
	m := New(Config{
		SheetURL:    "https://example.com/nothing",
		Credentials: &ServiceAccount{ClientEmail: "a@b", PrivateKey: "k"},
	})
	if m.Enabled() {
		t.Fatal("mirror without a recognisable sheet must be disabled")
	}
	if m.DisabledReason() == "" {
		t.Error("expected a reason")
	}
}

func TestMirror_AppendsHeaderThenRow(t *testing.T) {
	fake := &fakeSheets{title: "Sheet1"}
	m := newTestMirror(t, fake)

	res := m.Mirror(context.Background(), testRecord)
	if res.Status != models.RemoteMirrored {
		t.Fatalf("expected Mirrored, got %+v", res)
	}
	res = m.Mirror(context.Background(), testRecord)
	if res.Status != models.RemoteMirrored {
		t.Fatalf("expected Mirrored on second call, got %+v", res)
	}

	rows := fake.snapshot()
	if len(rows) != 3 {
		t.Fatalf("expected header plus two rows, got %d: %v", len(rows), rows)
	}
	if rows[0][0] != "Timestamp" || rows[0][3] != "Answer" {
		t.Errorf("unexpected header %v", rows[0])
	}
	want := testRecord.Fields()
	for i := range want {
		if rows[1][i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], rows[1][i])
		}
	}
}

func TestMirror_KeepsExistingHeader(t *testing.T) {
	fake := &fakeSheets{title: "Answers", rows: [][]string{{"Timestamp", "Student", "Prompt", "Answer"}}}
	m := newTestMirror(t, fake)

	if res := m.Mirror(context.Background(), testRecord); res.Status != models.RemoteMirrored {
		t.Fatalf("expected Mirrored, got %+v", res)
	}
	if rows := fake.snapshot(); len(rows) != 2 {
		t.Fatalf("expected one header and one row, got %d", len(rows))
	}
}

func TestMirror_ClassifiesFailures(t *testing.T) {
	cases := []struct {
		name         string
		getStatus    int
		appendStatus int
		wantKind     models.FailureKind
	}{
		{"sheet not found", http.StatusNotFound, 0, models.FailureNotFound},
		{"permission denied", http.StatusForbidden, 0, models.FailurePermission},
		{"unauthenticated", http.StatusUnauthorized, 0, models.FailureAuth},
		{"append quota", 0, http.StatusTooManyRequests, models.FailureTransient},
		{"append server error", 0, http.StatusServiceUnavailable, models.FailureTransient},
		{"append bad request", 0, http.StatusBadRequest, models.FailureUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeSheets{title: "Sheet1", getStatus: tc.getStatus, appendStatus: tc.appendStatus}
			m := newTestMirror(t, fake)

			res := m.Mirror(context.Background(), testRecord)
			if res.Status != models.RemoteFailed {
				t.Fatalf("expected RemoteFailed, got %+v", res)
			}
			if res.Kind != tc.wantKind {
				t.Errorf("expected kind %q, got %q (%s)", tc.wantKind, res.Kind, res.Cause)
			}
			if res.Cause == "" {
				t.Error("expected a human-readable cause")
			}
		})
	}
}

func TestMirror_SingleAttemptPerCall(t *testing.T) {
	fake := &fakeSheets{title: "Sheet1", getStatus: http.StatusServiceUnavailable}
	m := newTestMirror(t, fake)

	m.Mirror(context.Background(), testRecord)
	if n := fake.requests.Load(); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}

	// a failed connection is not cached; the next call tries again once
	fake.mu.Lock()
	fake.getStatus = 0
	fake.mu.Unlock()
	if res := m.Mirror(context.Background(), testRecord); res.Status != models.RemoteMirrored {
		t.Fatalf("expected recovery on the next call, got %+v", res)
	}
}

func TestMirror_Timeout(t *testing.T) {
	fake := &fakeSheets{title: "Sheet1", delay: 2 * time.Second}
	m := newTestMirror(t, fake)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := m.Mirror(ctx, testRecord)
	if res.Kind != models.FailureTimeout {
		t.Fatalf("expected timeout, got %+v", res)
	}
	if time.Since(start) > time.Second {
		t.Errorf("mirror did not honour the deadline")
	}
}

func TestMirror_ConcurrentFirstCallsShareOneConnect(t *testing.T) {
	fake := &fakeSheets{title: "Sheet1", delay: 100 * time.Millisecond}
	m := newTestMirror(t, fake)
	const callers = 10

	var wg sync.WaitGroup
	results := make(chan models.RemoteResult, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- m.Mirror(context.Background(), testRecord)
		}()
	}
	wg.Wait()
	close(results)

	for res := range results {
		if res.Status != models.RemoteMirrored {
			t.Fatalf("expected Mirrored, got %+v", res)
		}
	}
	if n := fake.resolves.Load(); n != 1 {
		t.Errorf("expected one worksheet lookup, got %d", n)
	}
	if rows := fake.snapshot(); len(rows) != callers+1 {
		t.Errorf("expected header plus %d rows, got %d", callers, len(rows))
	}
}

func TestMirror_WaiterHonoursItsDeadline(t *testing.T) {
	fake := &fakeSheets{title: "Sheet1", delay: 500 * time.Millisecond}
	m := newTestMirror(t, fake)

	go m.Mirror(context.Background(), testRecord)
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	res := m.Mirror(ctx, testRecord)
	if res.Kind != models.FailureTimeout {
		t.Fatalf("expected timeout, got %+v", res)
	}
	if time.Since(start) > 300*time.Millisecond {
		t.Errorf("waiter was held past its deadline")
	}
}

// testServiceAccount returns a bundle with a freshly generated key whose
// token exchange goes to tokenURL.
func testServiceAccount(t *testing.T, tokenURL string) *ServiceAccount {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	block := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	return &ServiceAccount{
		Type:         "service_account",
		ProjectID:    "classroom-test",
		PrivateKeyID: "key-1",
		PrivateKey:   string(block),
		ClientEmail:  "logger@classroom-test.iam.gserviceaccount.com",
		ClientID:     "1234567890",
		TokenURI:     tokenURL,
	}
}

func TestMirror_TokenEndpointFailures(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantKind models.FailureKind
	}{
		{"invalid grant", http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Invalid JWT Signature."}`, models.FailureAuth},
		{"revoked key", http.StatusUnauthorized, `{"error":"invalid_client"}`, models.FailureAuth},
		{"token endpoint down", http.StatusServiceUnavailable, `{"error":"backend_error"}`, models.FailureTransient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			t.Cleanup(tokenSrv.Close)

			fake := &fakeSheets{title: "Sheet1"}
			sheetSrv := httptest.NewServer(fake)
			t.Cleanup(sheetSrv.Close)

			credJSON, err := testServiceAccount(t, tokenSrv.URL).JSON()
			if err != nil {
				t.Fatal(err)
			}
			m := newMirror(testSheetID, "",
				option.WithCredentialsJSON(credJSON),
				option.WithScopes("https://www.googleapis.com/auth/spreadsheets"),
				option.WithEndpoint(sheetSrv.URL+"/"),
			)

			res := m.Mirror(context.Background(), testRecord)
			if res.Status != models.RemoteFailed {
				t.Fatalf("expected RemoteFailed, got %+v", res)
			}
			if res.Kind != tc.wantKind {
				t.Errorf("expected kind %q, got %q (%s)", tc.wantKind, res.Kind, res.Cause)
			}
			if n := fake.requests.Load(); n != 0 {
				t.Errorf("sheet received %d requests without a token", n)
			}
		})
	}
}
