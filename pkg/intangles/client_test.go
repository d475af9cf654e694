package intangles

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuery() Query {
	return Query{
		AccountID:       "acc-1",
		SpecIDs:         "spec-1,spec-2",
		PageSize:        300,
		Lang:            "en",
		NoDefaultFields: true,
		Projection:      "total_fuel_consumed",
		Groups:          "",
		LastLocation:    true,
	}
}

func TestFuelConsumedPageRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/vehicle/fuel_consumed", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "7", q.Get("pnum"))
		assert.Equal(t, "300", q.Get("psize"))
		assert.Equal(t, "true", q.Get("no_default_fields"))
		assert.Equal(t, "total_fuel_consumed", q.Get("proj"))
		assert.Equal(t, "spec-1,spec-2", q.Get("spec_ids"))
		assert.Equal(t, "true", q.Get("lastloc"))
		assert.Equal(t, "acc-1", q.Get("acc_id"))
		assert.Equal(t, "en", q.Get("lang"))

		// Header contract with the remote service.
		assert.Equal(t, "application/json, text/plain, */*", r.Header.Get("Accept"))
		assert.Equal(t, "web", r.Header.Get("intangles-session-type"))
		assert.Equal(t, "en", r.Header.Get("intangles-user-lang"))
		assert.Equal(t, "test-token", r.Header.Get("intangles-user-token"))
		assert.Equal(t, "Asia/Calcutta", r.Header.Get("intangles-user-tz"))
		assert.Equal(t, "https://bemblueedge.intangles.com/", r.Header.Get("Referer"))
		assert.Equal(t, "https://bemblueedge.intangles.com", r.Header.Get("Origin"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": [{"total_fuel_consumed": 12.5}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	body, err := client.FuelConsumedPage(context.Background(), testQuery(), 7)
	require.NoError(t, err)

	envelope, ok := body.(map[string]any)
	require.True(t, ok)
	rows, ok := envelope["result"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestFuelConsumedPageStatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "server_error", status: http.StatusInternalServerError},
		{name: "rate_limited", status: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error": "nope"}`))
			}))
			defer srv.Close()

			client := NewClient("test-token", WithBaseURL(srv.URL))

			_, err := client.FuelConsumedPage(context.Background(), testQuery(), 1)
			require.Error(t, err)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.StatusCode)
		})
	}
}

func TestFuelConsumedPageMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	_, err := client.FuelConsumedPage(context.Background(), testQuery(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}

func TestFuelConsumedPageContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-token", WithBaseURL("http://127.0.0.1:0"))

	_, err := client.FuelConsumedPage(ctx, testQuery(), 1)
	require.Error(t, err)
}

func TestWithTimeoutOrderIndependent(t *testing.T) {
	custom := &http.Client{}

	c, ok := NewClient("t", WithTimeout(12*time.Second), WithHTTPClient(custom)).(*httpClient)
	require.True(t, ok)
	assert.Equal(t, 12*time.Second, c.http.Timeout)

	c, ok = NewClient("t", WithHTTPClient(&http.Client{}), WithTimeout(7*time.Second)).(*httpClient)
	require.True(t, ok)
	assert.Equal(t, 7*time.Second, c.http.Timeout)
}

func TestFuelConsumedPageBooleanEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "false", q.Get("no_default_fields"))
		assert.Equal(t, "false", q.Get("lastloc"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))

	q := testQuery()
	q.NoDefaultFields = false
	q.LastLocation = false

	_, err := client.FuelConsumedPage(context.Background(), q, 1)
	require.NoError(t, err)
}
