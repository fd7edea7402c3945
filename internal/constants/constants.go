package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// SessionDirPerm is the permission for directories created for session files.
	SessionDirPerm = 0755

	// SessionFilePerm is the permission for session files. They hold live
	// session cookies.
	SessionFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for one round trip.
	DefaultHTTPTimeout = 30 * time.Second
)

// HTTP request details.
const (
	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "opencart-client-go"

	// FormContentType is the request body encoding of every API call.
	FormContentType = "application/x-www-form-urlencoded"

	// EntryScript is appended to the normalized base URL.
	EntryScript = "/index.php?"

	// RoutePrefix is prepended to every API route.
	RoutePrefix = "api/"

	// RedactedValue replaces tokens in logged URLs.
	RedactedValue = "***"
)

// Query parameters carrying the API token, by version.
const (
	// TokenParamV2 carries the token for OpenCart 2.1 to 2.3.
	TokenParamV2 = "token"

	// TokenParamV3 carries the token for OpenCart 3 and the auto-detection request.
	TokenParamV3 = "api_token"
)

// Login response fields.
const (
	LoginFieldSuccess  = "success"
	LoginFieldError    = "error"
	LoginFieldCookie   = "cookie"
	LoginFieldToken    = "token"
	LoginFieldAPIToken = "api_token"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Validation and limits.
const (
	// MinimumArgumentCount is the minimum number of command line arguments.
	MinimumArgumentCount = 2

	// KeyValueParts is the number of parts in a key=value argument.
	KeyValueParts = 2
)

// CLI configuration.
const (
	// ConfigDirName is the directory under the user's home holding the CLI config.
	ConfigDirName = ".opencart"

	// ConfigFileName is the CLI config file name.
	ConfigFileName = "config.yml"

	// SessionDirName is the directory under the config dir holding per-store sessions.
	SessionDirName = "sessions"

	// EnvPrefix is the environment variable prefix read by the CLI.
	EnvPrefix = "OPENCART"

	// SessionFileExt is the extension of per-store session files.
	SessionFileExt = ".json"
)

// CLI log file rotation.
const (
	// LogMaxSizeMB is the size at which the CLI log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the age after which rotated log files are removed.
	LogMaxAgeDays = 28
)
