package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"profile-sync/config"
	"profile-sync/session"
)

func newTestClient(t *testing.T, baseURL string) (*Client, *session.Session) {
	t.Helper()
	sess := session.New(filepath.Join(t.TempDir(), "session"), zap.NewNop())
	cfg := &config.Config{APIBaseURL: baseURL, RequestTimeout: 5 * time.Second}
	return NewClient(cfg, sess, zap.NewNop()), sess
}

func TestRequestSendsBearerTokenWhenAuthenticated(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, sess := newTestClient(t, server.URL)

	_, err := client.Request(context.Background(), http.MethodGet, "/publications/user/1", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "no token, no header")

	sess.Set("token-123")
	_, err = client.Request(context.Background(), http.MethodGet, "/publications/user/1", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestRequestEncodesJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	raw, err := client.Request(context.Background(), http.MethodPost, "/publications/", map[string]string{"title": "A Study"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "A Study", gotBody["title"])
	assert.JSONEq(t, `{"id": 1}`, string(raw))
}

func TestPostFormEncodesFields(t *testing.T) {
	var gotContentType, gotUsername string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		r.ParseForm()
		gotUsername = r.PostFormValue("username")
		w.Write([]byte(`{"access_token": "abc", "token_type": "bearer"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	_, err := client.PostForm(context.Background(), "/auth/login", url.Values{
		"username": {"ada"},
		"password": {"secret"},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "ada", gotUsername)
}

func TestNotFoundBecomesNotFoundError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Profile not found"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	_, err := client.Request(context.Background(), http.MethodGet, "/profiles/99", nil)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "/profiles/99", nf.Path)
	assert.True(t, IsNotFound(err))
}

func TestValidationDetailBecomesFieldErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [
			{"loc": ["body", "title"], "msg": "field required", "type": "value_error.missing"},
			{"loc": ["body", "year"], "msg": "value is not a valid integer", "type": "type_error.integer"},
			{"loc": ["body", "year"], "msg": "ensure this value is greater than 1900", "type": "value_error"}
		]}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	_, err := client.Request(context.Background(), http.MethodPost, "/publications/", map[string]any{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"field required"}, verr.Fields["title"])
	assert.Len(t, verr.Fields["year"], 2)
}

func TestMalformedValidationBodyFallsBackToHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "plain string detail"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	_, err := client.Request(context.Background(), http.MethodPost, "/publications/", map[string]any{})

	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusUnprocessableEntity, herr.Status)
	assert.Equal(t, "plain string detail", herr.Message)
}

func TestServerFailureBecomesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	_, err := client.Request(context.Background(), http.MethodGet, "/publications/user/1", nil)

	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusInternalServerError, herr.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), herr.Message)
}

func TestUnreachableBackendBecomesNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, _ := newTestClient(t, server.URL)
	_, err := client.Request(context.Background(), http.MethodGet, "/publications/user/1", nil)

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.True(t, IsNetwork(err))
	assert.False(t, IsNotFound(err))
}
