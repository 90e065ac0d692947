package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aurora-api/aurora/internal/pkg/goerror"
	"github.com/aurora-api/aurora/internal/pkg/instrument"
	"github.com/aurora-api/aurora/internal/pkg/session"
)

type fakeSession struct {
	auth Auth
	err  error
}

type Auth = session.Auth

func (f *fakeSession) Mint(context.Context, int64, string) (string, error) { return "", nil }
func (f *fakeSession) Revoke(context.Context, int64) error                 { return nil }
func (f *fakeSession) Verify(context.Context, string) (Auth, error) {
	return f.auth, f.err
}

func newTestRouter(t *testing.T, sess session.Session) *Router {
	t.Helper()

	return NewRouter(Config{
		Session:    sess,
		Instrument: instrument.NewNoop(),
	})
}

func TestRouterFlatSuccessBody(t *testing.T) {
	r := newTestRouter(t, &fakeSession{})
	r.POST("/auth/login", func(_ *Request) (any, error) {
		return map[string]string{"message": "code sent"}, nil
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"message":"code sent"`) {
		t.Errorf("body = %q, want flat message field", body)
	}

	if strings.Contains(body, `"data"`) {
		t.Errorf("body = %q, must not be wrapped in an envelope", body)
	}
}

func TestRouterNoContentOnNil(t *testing.T) {
	auth := Auth{UserID: 1, TokenID: 2, Device: "api-x"}
	r := newTestRouter(t, &fakeSession{auth: auth})
	r.POST("/auth/logout", func(req *Request) (any, error) {
		if got := session.GetAuth(req.Context()); got == nil || got.UserID != 1 {
			t.Errorf("GetAuth() = %+v, want user 1", got)
		}
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer 2|secret")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestRouterAuthRequired(t *testing.T) {
	r := newTestRouter(t, &fakeSession{err: session.ErrInvalidToken})
	r.POST("/auth/logout", func(_ *Request) (any, error) { return nil, nil })

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"revoked token":  "Bearer 2|revoked",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRouterErrorBody(t *testing.T) {
	r := newTestRouter(t, &fakeSession{})
	r.POST("/auth/verify", func(_ *Request) (any, error) {
		return nil, goerror.NewInvalidInput(nil, "code", "The provided code is invalid or has expired.")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/verify", strings.NewReader(`{}`)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), `"code":"The provided code is invalid or has expired."`) {
		t.Errorf("body = %q, want field-scoped error", rec.Body.String())
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mk("outer"), mk("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"outer", "inner", "handler"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestDecodeBodyRejectsUnknownFields(t *testing.T) {
	req := &Request{Request: httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","oops":1}`))}

	var dst struct {
		Email string `json:"email"`
	}
	if err := req.DecodeBody(&dst); err == nil {
		t.Error("DecodeBody() error = nil, want invalid format")
	}
}
