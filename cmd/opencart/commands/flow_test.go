package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opencart-client/internal/client"
	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// loginTestStore logs in to a fake OpenCart 3 store saved as "test".
func loginTestStore(t *testing.T) (*client.FakeStore, string) {
	t.Helper()

	dir := setupCLI(t)

	store := client.NewFakeStore()
	t.Cleanup(store.Close)

	store.Respond("login", client.FakeResponse{
		Body:       map[string]interface{}{"success": "Success: API session started", "api_token": "T3"},
		SetCookies: []string{"OCSESSID=abc; path=/"},
	})

	viper.Set("url", storeRoot(store))

	_, _, err := runCommand(NewLoginCommand(), "--key", "secret", "--name", "test")
	require.NoError(t, err)

	viper.Set("url", "")

	return store, dir
}

func TestLoginCommand(t *testing.T) {
	t.Run("saves the detected session", func(t *testing.T) {
		store, dir := loginTestStore(t)

		login := store.Last()
		assert.Equal(t, "login", login.Route)
		assert.Equal(t, "secret", login.Form.Get("key"))

		config := loadConfig()
		assert.Equal(t, "test", config.CurrentStore)

		saved, err := findStore(config, "test")
		require.NoError(t, err)
		assert.Equal(t, storeRoot(store), saved.URL)
		assert.Equal(t, "T3", saved.Token)
		assert.Equal(t, "v3", saved.APIVersion)
		assert.NotNil(t, saved.LastLogin)

		sessionFile := filepath.Join(dir, constants.SessionDirName, "test"+constants.SessionFileExt)
		assert.Equal(t, sessionFile, saved.SessionFile)

		data, err := os.ReadFile(sessionFile)
		require.NoError(t, err)
		assert.JSONEq(t, `{"OCSESSID":"abc"}`, string(data))
	})

	t.Run("rejected", func(t *testing.T) {
		setupCLI(t)

		store := client.NewFakeStore()
		defer store.Close()

		store.Respond("login", client.FakeResponse{Body: map[string]interface{}{"error": map[string]interface{}{"key": "Warning: incorrect API key"}}})
		viper.Set("url", storeRoot(store))

		_, _, err := runCommand(NewLoginCommand(), "--key", "wrong")
		require.ErrorIs(t, err, opencart.ErrLoginRejected)
		assert.Contains(t, err.Error(), "Warning: incorrect API key")
		assert.Empty(t, loadConfig().Stores)
	})

	t.Run("unresolved is saved with a warning", func(t *testing.T) {
		setupCLI(t)

		store := client.NewFakeStore()
		defer store.Close()

		store.Respond("login", client.FakeResponse{Body: map[string]interface{}{"success": "ok"}})
		viper.Set("url", storeRoot(store))

		_, stderr, err := runCommand(NewLoginCommand(), "--key", "k", "--name", "shop")
		require.NoError(t, err)
		assert.Contains(t, stderr, "Warning")

		saved, err := findStore(loadConfig(), "shop")
		require.NoError(t, err)
		assert.Equal(t, "auto", saved.APIVersion)
	})

	t.Run("username and password from stdin", func(t *testing.T) {
		setupCLI(t)

		store := client.NewFakeStore()
		defer store.Close()

		store.Respond("login", client.FakeResponse{Body: map[string]interface{}{"success": "ok", "token": "T2"}})
		viper.Set("url", storeRoot(store))

		cmd := NewLoginCommand()
		cmd.SetIn(strings.NewReader("s3cret\n"))

		_, _, err := runCommand(cmd, "--username", "api", "--name", "shop")
		require.NoError(t, err)

		login := store.Last()
		assert.Equal(t, "api", login.Form.Get("username"))
		assert.Equal(t, "s3cret", login.Form.Get("password"))

		saved, err := findStore(loadConfig(), "shop")
		require.NoError(t, err)
		assert.Equal(t, "v2", saved.APIVersion)
		assert.Equal(t, "api", saved.Username)
	})

	t.Run("credentials required", func(t *testing.T) {
		setupCLI(t)
		viper.Set("url", "shop.example.com")

		_, _, err := runCommand(NewLoginCommand())
		require.ErrorIs(t, err, constants.ErrCredentialsNeeded)
	})
}

func TestResourceCommands(t *testing.T) {
	store, _ := loginTestStore(t)

	tests := []struct {
		name   string
		run    func() (string, string, error)
		route  string
		form   map[string]string
		params map[string]string
	}{
		{
			name:  "cart add",
			run:   func() (string, string, error) { return runCommand(NewCartCommand(), "add", "42", "-q", "2", "--option", "226=15") },
			route: "cart/add",
			form:  map[string]string{"product_id": "42", "quantity": "2", "option[226]": "15"},
		},
		{
			name:  "cart add products json",
			run:   func() (string, string, error) { return runCommand(NewCartCommand(), "add", "--products-json", `[{"product_id":7}]`) },
			route: "cart/add",
			form:  map[string]string{"product[0][product_id]": "7"},
		},
		{
			name:  "cart edit",
			run:   func() (string, string, error) { return runCommand(NewCartCommand(), "edit", "k1", "3") },
			route: "cart/edit",
			form:  map[string]string{"key": "k1", "quantity": "3"},
		},
		{
			name:  "cart products",
			run:   func() (string, string, error) { return runCommand(NewCartCommand(), "products") },
			route: "cart/products",
		},
		{
			name:   "order history",
			run:    func() (string, string, error) { return runCommand(NewOrderCommand(), "history", "7", "--order-status-id", "5", "--notify") },
			route:  "order/history",
			form:   map[string]string{"order_status_id": "5", "notify": "1", "append": "0"},
			params: map[string]string{"order_id": "7"},
		},
		{
			name:  "shipping method",
			run:   func() (string, string, error) { return runCommand(NewShippingCommand(), "method", "flat.flat") },
			route: "shipping/method",
			form:  map[string]string{"shipping_method": "flat.flat"},
		},
		{
			name:  "payment address",
			run:   func() (string, string, error) { return runCommand(NewPaymentCommand(), "address", "--firstname", "Ada", "--country-id", "222") },
			route: "payment/address",
			form:  map[string]string{"firstname": "Ada", "country_id": "222"},
		},
		{
			name:  "reward add",
			run:   func() (string, string, error) { return runCommand(NewRewardCommand(), "add", "100") },
			route: "reward",
			form:  map[string]string{"reward": "100"},
		},
		{
			name:  "voucher apply",
			run:   func() (string, string, error) { return runCommand(NewVoucherCommand(), "apply", "GIFT") },
			route: "voucher",
			form:  map[string]string{"voucher": "GIFT"},
		},
		{
			name:  "coupon",
			run:   func() (string, string, error) { return runCommand(NewCouponCommand(), "SAVE10") },
			route: "coupon",
			form:  map[string]string{"coupon": "SAVE10"},
		},
		{
			name:  "customer",
			run:   func() (string, string, error) { return runCommand(NewCustomerCommand(), "--firstname", "Ada", "--extra", "custom_field[1]=x", "--extra", "firstname=Eve") },
			route: "customer",
			form:  map[string]string{"firstname": "Ada", "custom_field[1]": "x"},
		},
		{
			name:  "call",
			run:   func() (string, string, error) { return runCommand(NewCallCommand(), "sale/order", "info", "-d", "order_id=7") },
			route: "sale/order/info",
			form:  map[string]string{"order_id": "7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.run()
			require.NoError(t, err)

			request := store.Last()
			assert.Equal(t, tt.route, request.Route)
			assert.Equal(t, []string{"T3"}, request.Query["api_token"])
			assert.Contains(t, request.Cookie, "OCSESSID=abc")

			for key, want := range tt.form {
				assert.Equal(t, want, request.Form.Get(key), "form field %s", key)
			}

			for key, want := range tt.params {
				assert.Equal(t, want, request.Query.Get(key), "query parameter %s", key)
			}
		})
	}
}

func TestResourceCommands_Output(t *testing.T) {
	store, _ := loginTestStore(t)

	store.Respond("cart/products", client.FakeResponse{Body: map[string]interface{}{
		"products": []interface{}{map[string]interface{}{"key": "k1", "quantity": "2"}},
	}})

	stdout, _, err := runCommand(NewCartCommand(), "products")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Contains(t, decoded, "products")

	store.Respond("cart/add", client.FakeResponse{Body: map[string]interface{}{"error": map[string]interface{}{"stock": "Out of stock"}}})

	_, _, err = runCommand(NewCartCommand(), "add", "42")
	require.ErrorIs(t, err, constants.ErrStoreReportedError)
	assert.Contains(t, err.Error(), "Out of stock")
}

func TestResourceCommands_ArgumentErrors(t *testing.T) {
	loginTestStore(t)

	_, _, err := runCommand(NewCartCommand(), "add", "not-a-product")
	require.Error(t, err)
	assert.True(t, opencart.IsInvalidArgument(err))
	assert.Equal(t, "product", opencart.Param(err))

	_, _, err = runCommand(NewOrderCommand(), "delete", "0")
	require.Error(t, err)
	assert.Equal(t, "order_id", opencart.Param(err))

	_, _, err = runCommand(NewCartCommand(), "edit", "k1", "many")
	require.Error(t, err)

	_, _, err = runCommand(NewCallCommand(), "/")
	require.ErrorIs(t, err, constants.ErrRouteRequired)
}

func TestVoucherAddFromFile(t *testing.T) {
	store, dir := loginTestStore(t)

	path := filepath.Join(dir, "vouchers.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
- from_name: Ada
  to_email: bob@example.com
  amount: 25
- from_name: Eve
  amount: 10
`), 0o600))

	_, _, err := runCommand(NewVoucherCommand(), "add", "--from-file", path)
	require.NoError(t, err)

	request := store.Last()
	assert.Equal(t, "voucher/add", request.Route)
	assert.Equal(t, "Ada", request.Form.Get("voucher[0][from_name]"))
	assert.Equal(t, "25", request.Form.Get("voucher[0][amount]"))
	assert.Equal(t, "Eve", request.Form.Get("voucher[1][from_name]"))
}

func TestLogoutCommand(t *testing.T) {
	_, dir := loginTestStore(t)

	sessionFile := filepath.Join(dir, constants.SessionDirName, "test"+constants.SessionFileExt)
	require.FileExists(t, sessionFile)

	stdout, _, err := runCommand(NewLogoutCommand())
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out of store 'test'")

	assert.NoFileExists(t, sessionFile)

	saved, err := findStore(loadConfig(), "test")
	require.NoError(t, err)
	assert.Empty(t, saved.Token)
	assert.Empty(t, saved.APIVersion)
}
