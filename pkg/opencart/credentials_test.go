package opencart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

func TestCredentialsFromArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    opencart.Credentials
		wantErr bool
	}{
		{name: "none", args: nil, wantErr: true},
		{name: "api key", args: []string{"k"}, want: opencart.APIKey{Key: "k"}},
		{name: "empty api key", args: []string{""}, wantErr: true},
		{name: "username and password", args: []string{"u", "p"}, want: opencart.UsernamePassword{Username: "u", Password: "p"}},
		{name: "empty password", args: []string{"u", ""}, wantErr: true},
		{name: "empty username", args: []string{"", "p"}, wantErr: true},
		{name: "too many", args: []string{"a", "b", "c"}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			creds, err := opencart.CredentialsFromArgs(testCase.args...)
			if testCase.wantErr {
				require.ErrorIs(t, err, opencart.ErrInvalidCredentials)
				assert.Nil(t, creds)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, creds)
		})
	}
}

func TestCredentials_Form(t *testing.T) {
	t.Parallel()

	assert.Equal(t, opencart.Payload{"key": "k"}, opencart.APIKey{Key: "k"}.Form())
	assert.Equal(t,
		opencart.Payload{"username": "admin", "password": "pw", "key": "pw"},
		opencart.UsernamePassword{Username: "admin", Password: "pw"}.Form(),
	)
}
