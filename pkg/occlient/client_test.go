package occlient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opencart-client/pkg/occlient"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"shop.example.com", "http://shop.example.com/index.php?"},
		{"shop.example.com/", "http://shop.example.com/index.php?"},
		{"https://shop.example.com//", "https://shop.example.com/index.php?"},
		{"http://localhost:8080/store", "http://localhost:8080/store/index.php?"},
		{"HTTPS://shop", "http://HTTPS://shop/index.php?"},
	}

	for _, testCase := range tests {
		t.Run(testCase.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, occlient.NormalizeBaseURL(testCase.in))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := occlient.New(nil)
		require.ErrorIs(t, err, opencart.ErrConfigRequired)
	})

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		_, err := occlient.NewWithURL("")
		require.ErrorIs(t, err, opencart.ErrBaseURLRequired)
	})

	t.Run("does not modify the config", func(t *testing.T) {
		t.Parallel()

		config := &opencart.Config{BaseURL: "shop.example.com"}

		client, err := occlient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "shop.example.com", config.BaseURL)

		url, err := client.URL("login")
		require.NoError(t, err)
		assert.Equal(t, "http://shop.example.com/index.php?api_token=&route=api/login", url)
	})

	t.Run("with session", func(t *testing.T) {
		t.Parallel()

		client, err := occlient.NewWithSession("shop.example.com", t.TempDir()+"/session.json")
		require.NoError(t, err)
		assert.Empty(t, client.SessionCookies())
	})
}

func TestNewWithKey(t *testing.T) {
	t.Parallel()

	t.Run("logs in", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/index.php", request.URL.Path)
			assert.Equal(t, "api/login", request.URL.Query().Get("route"))
			assert.Equal(t, "k", request.PostFormValue("key"))

			_, _ = writer.Write([]byte(`{"success":"ok","api_token":"tok"}`))
		}))
		defer server.Close()

		client, err := occlient.NewWithKey(context.Background(), &opencart.Config{BaseURL: server.URL + "/"}, "k")
		require.NoError(t, err)
		assert.Equal(t, opencart.APIVersion3, client.APIVersion())
		assert.Equal(t, "tok", client.Token())
	})

	t.Run("rejection is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			_, _ = writer.Write([]byte(`{"error":{"key":"Warning: Incorrect API Key!"}}`))
		}))
		defer server.Close()

		_, err := occlient.NewWithKey(context.Background(), &opencart.Config{BaseURL: server.URL}, "bad")
		require.ErrorIs(t, err, opencart.ErrLoginRejected)
		assert.Contains(t, err.Error(), "Incorrect API Key")
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		_, err := occlient.NewWithKey(context.Background(), &opencart.Config{BaseURL: "shop"}, "")
		require.ErrorIs(t, err, opencart.ErrInvalidCredentials)
	})
}

func TestNewWithPassword(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "admin", request.PostFormValue("username"))
		assert.Equal(t, "pw", request.PostFormValue("key"))

		_, _ = writer.Write([]byte(`{"success":"ok","cookie":"sess"}`))
	}))
	defer server.Close()

	client, err := occlient.NewWithPassword(context.Background(), &opencart.Config{BaseURL: server.URL}, "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, opencart.APIVersion1, client.APIVersion())
	assert.Equal(t, "sess", client.Cookie())
}
