package labelapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"willowcommerce/internal/adapters/out/labelapi"
	"willowcommerce/internal/core/domain/model/label"
	"willowcommerce/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("should create client with valid parameters", func(t *testing.T) {
		client, err := labelapi.NewClient("http://labels.local", "secret", 5*time.Second)

		require.NoError(t, err)
		require.NotNil(t, client)
	})

	t.Run("should use default timeout when zero", func(t *testing.T) {
		client, err := labelapi.NewClient("http://labels.local", "secret", 0)

		require.NoError(t, err)
		require.NotNil(t, client)
	})

	t.Run("should reject empty base URL", func(t *testing.T) {
		_, err := labelapi.NewClient("", "secret", 0)

		require.Error(t, err)
	})

	t.Run("should reject empty auth token", func(t *testing.T) {
		_, err := labelapi.NewClient("http://labels.local", "", 0)

		require.Error(t, err)
	})
}

func TestClient_PrintLabel(t *testing.T) {
	t.Run("should post request and return document", func(t *testing.T) {
		var gotPath, gotAuth, gotContentType string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte("%PDF-1.4 return label"))
		}))
		defer server.Close()

		client, err := labelapi.NewClient(server.URL, "secret", 0)
		require.NoError(t, err)

		document, err := client.PrintLabel(t.Context(), "u1-42", label.KindReturn, "pdf")

		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 return label"), document)
		assert.Equal(t, "/orders/printlabel", gotPath)
		assert.Equal(t, "Bearer secret", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "u1-42", gotBody["packageId"])
		assert.Equal(t, float64(7), gotBody["labelType"])
		assert.Equal(t, "pdf", gotBody["labelFormat"])
		assert.Equal(t, "pdf", gotBody["type"])
	})

	t.Run("should send replacement label type code", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte("%PDF-1.4 replacement label"))
		}))
		defer server.Close()

		client, err := labelapi.NewClient(server.URL, "secret", 0)
		require.NoError(t, err)

		_, err = client.PrintLabel(t.Context(), "u1-42", label.KindReplacement, "pdf")

		require.NoError(t, err)
		assert.Equal(t, float64(6), gotBody["labelType"])
	})

	t.Run("should default format to pdf", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer server.Close()

		client, err := labelapi.NewClient(server.URL, "secret", 0)
		require.NoError(t, err)

		_, err = client.PrintLabel(t.Context(), "u1-42", label.KindReturn, "")

		require.NoError(t, err)
		assert.Equal(t, "pdf", gotBody["labelFormat"])
	})

	t.Run("should wrap non-200 response as rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client, err := labelapi.NewClient(server.URL, "secret", 0)
		require.NoError(t, err)

		_, err = client.PrintLabel(t.Context(), "u1-42", label.KindReturn, "pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrLabelServiceRejected)
	})

	t.Run("should wrap empty document body as rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := labelapi.NewClient(server.URL, "secret", 0)
		require.NoError(t, err)

		_, err = client.PrintLabel(t.Context(), "u1-42", label.KindReturn, "pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrLabelServiceRejected)
	})

	t.Run("should wrap connection failure as unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client, err := labelapi.NewClient(server.URL, "secret", 0)
		require.NoError(t, err)

		_, err = client.PrintLabel(t.Context(), "u1-42", label.KindReturn, "pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrLabelServiceUnreachable)
	})

	t.Run("should wrap timeout as unreachable", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer func() {
			close(release)
			server.Close()
		}()

		client, err := labelapi.NewClient(server.URL, "secret", 50*time.Millisecond)
		require.NoError(t, err)

		_, err = client.PrintLabel(t.Context(), "u1-42", label.KindReturn, "pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrLabelServiceUnreachable)
	})

	t.Run("should reject empty package reference", func(t *testing.T) {
		client, err := labelapi.NewClient("http://labels.local", "secret", 0)
		require.NoError(t, err)

		_, err = client.PrintLabel(t.Context(), "", label.KindReturn, "pdf")

		require.Error(t, err)
	})

	t.Run("should reject invalid label kind", func(t *testing.T) {
		client, err := labelapi.NewClient("http://labels.local", "secret", 0)
		require.NoError(t, err)

		_, err = client.PrintLabel(t.Context(), "u1-42", label.Kind("gift"), "pdf")

		require.Error(t, err)
	})
}
