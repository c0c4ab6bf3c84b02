package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openshelf/shelfd/internal/core"
	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/httpserver/deps"
	"github.com/openshelf/shelfd/internal/httpserver/mw"
	"github.com/openshelf/shelfd/internal/httpserver/routes"
	"github.com/openshelf/shelfd/internal/logger"
	"github.com/openshelf/shelfd/internal/store"
)

type testEnv struct {
	router http.Handler
	clock  *int64
}

func hexPrincipal(b byte) string {
	const digits = "0123456789abcdef"
	pair := string([]byte{digits[b>>4], digits[b&0x0f]})
	return strings.Repeat(pair, 32)
}

var (
	superHex   = hexPrincipal(0x01)
	adminHex   = hexPrincipal(0x02)
	curatorHex = hexPrincipal(0x04)
	readerHex  = hexPrincipal(0x06)
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.New("error", false)
	sec := int64(1_700_000_000)
	clock := &sec

	c, err := core.New(store.NewMemory(), log, func() time.Time { return time.Unix(*clock, 0) })
	if err != nil {
		t.Fatalf("core.New() = %v", err)
	}

	mustParse := func(s string) domain.Principal {
		p, err := domain.ParsePrincipal(s)
		if err != nil {
			t.Fatalf("ParsePrincipal(%q) = %v", s, err)
		}
		return p
	}
	err = c.Bootstrap(context.Background(),
		mustParse(superHex),
		[]domain.Principal{mustParse(adminHex)},
		[]domain.Principal{mustParse(curatorHex)},
	)
	if err != nil {
		t.Fatalf("Bootstrap() = %v", err)
	}

	d := deps.Deps{
		Logger:         log,
		StartTime:      time.Now(),
		Core:           c,
		ThrottleBurst:  1000,
		ThrottlePerMin: 1000,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)
	return &testEnv{router: r, clock: clock}
}

func (e *testEnv) do(t *testing.T, method, path, principal, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("{}")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if principal != "" {
		req.Header.Set(mw.PrincipalHeader, principal)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

const validEntryBody = `{
	"id": "3b2a1c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d",
	"title": "The Go Programming Language",
	"author": "Donovan and Kernighan",
	"content_pointer": "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
	"category": "programming",
	"publication_year": 2015
}`

func errorTag(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestCredentialEndpoints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing principal header", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/credentials", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("mint", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/credentials", readerHex, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})

	t.Run("duplicate mint", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/credentials", readerHex, "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
		if tag := errorTag(t, rec); tag != "DUPLICATE_CREDENTIAL" {
			t.Errorf("error tag = %q, want DUPLICATE_CREDENTIAL", tag)
		}
	})

	t.Run("verify", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/credentials/"+readerHex, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("verify unknown", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/credentials/"+hexPrincipal(0x42), "", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestEntryEndpoints(t *testing.T) {
	env := newTestEnv(t)
	const entryPath = "/api/entries/3b2a1c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"

	t.Run("outsider cannot add", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/entries", readerHex, validEntryBody)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("malformed id in path", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/entries/not-a-uuid", "", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if tag := errorTag(t, rec); tag != "INVALID_IDENTIFIER" {
			t.Errorf("error tag = %q, want INVALID_IDENTIFIER", tag)
		}
	})

	t.Run("malformed id in body", func(t *testing.T) {
		body := strings.Replace(validEntryBody, "3b2a1c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d", "not-a-uuid", 1)
		rec := env.do(t, http.MethodPost, "/api/entries", curatorHex, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if tag := errorTag(t, rec); tag != "INVALID_IDENTIFIER" {
			t.Errorf("error tag = %q, want INVALID_IDENTIFIER", tag)
		}
	})

	t.Run("invalid content pointer", func(t *testing.T) {
		body := strings.Replace(validEntryBody, "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", "invalid_hash", 1)
		rec := env.do(t, http.MethodPost, "/api/entries", curatorHex, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if tag := errorTag(t, rec); tag != "INVALID_CONTENT_POINTER" {
			t.Errorf("error tag = %q, want INVALID_CONTENT_POINTER", tag)
		}
	})

	t.Run("curator adds entry", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/entries", curatorHex, validEntryBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})

	t.Run("cooldown yields 429", func(t *testing.T) {
		body := strings.Replace(validEntryBody,
			"3b2a1c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d",
			"7f8e9dac-1b2c-4d3e-9f0a-1b2c3d4e5f6a", 1)
		rec := env.do(t, http.MethodPost, "/api/entries", curatorHex, body)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
		}
		if tag := errorTag(t, rec); tag != "RATE_LIMIT_COOLDOWN" {
			t.Errorf("error tag = %q, want RATE_LIMIT_COOLDOWN", tag)
		}
	})

	t.Run("get entry", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, entryPath, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("admin updates", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, entryPath, adminHex, `{"title":"Renamed"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
	})

	t.Run("curator cannot remove", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, entryPath, curatorHex, "")
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("admin removes", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, entryPath, adminHex, "")
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("get removed entry", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, entryPath, "", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestPauseEndpoints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("admin cannot pause", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/pause", adminHex, "")
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	if rec := env.do(t, http.MethodPost, "/api/pause", superHex, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("pause status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	t.Run("writes locked while paused", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/entries", curatorHex, validEntryBody)
		if rec.Code != http.StatusLocked {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusLocked)
		}
		if tag := errorTag(t, rec); tag != "PROGRAM_PAUSED" {
			t.Errorf("error tag = %q, want PROGRAM_PAUSED", tag)
		}
	})

	t.Run("status readable while paused", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/status", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var st struct {
			Paused bool `json:"paused"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
			t.Fatalf("failed to decode status: %v", err)
		}
		if !st.Paused {
			t.Error("paused = false, want true")
		}
	})

	if rec := env.do(t, http.MethodPost, "/api/unpause", superHex, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("unpause status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	t.Run("writes resume after unpause", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/entries", curatorHex, validEntryBody)
		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})
}

func TestGovernanceEndpoints(t *testing.T) {
	env := newTestEnv(t)
	candidate := hexPrincipal(0x09)
	body := `{"principal":"` + candidate + `"}`

	t.Run("initiate transfer", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/transfer", superHex, body)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body.String())
		}
	})

	t.Run("confirm before timelock", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/transfer/confirm", superHex, "")
		if rec.Code != http.StatusTooEarly {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooEarly)
		}
		if tag := errorTag(t, rec); tag != "TIMELOCK_NOT_EXPIRED" {
			t.Errorf("error tag = %q, want TIMELOCK_NOT_EXPIRED", tag)
		}
	})

	t.Run("confirm after timelock", func(t *testing.T) {
		*env.clock += domain.TransferTimelockSeconds
		rec := env.do(t, http.MethodPost, "/api/transfer/confirm", superHex, "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}
	})

	t.Run("recovery over the new super admin", func(t *testing.T) {
		// The single remaining admin cannot reach the two-vote threshold.
		rec := env.do(t, http.MethodPost, "/api/recovery", adminHex, body)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
		if tag := errorTag(t, rec); tag != "INSUFFICIENT_ADMINS_FOR_RECOVERY" {
			t.Errorf("error tag = %q, want INSUFFICIENT_ADMINS_FOR_RECOVERY", tag)
		}
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := env.do(t, http.MethodGet, "/readyz", "", ""); rec.Code != http.StatusOK {
		t.Errorf("readyz status = %d, want %d", rec.Code, http.StatusOK)
	}
}
