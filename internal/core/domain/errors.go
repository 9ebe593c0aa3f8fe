package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidIconName is returned when an icon name cannot be parsed.
	ErrInvalidIconName = zerr.New("invalid icon name")

	// ErrInvalidIconSet is returned when an icon set fails validation and is discarded.
	ErrInvalidIconSet = zerr.New("invalid icon set")

	// ErrMissingIconBody is returned when an icon in a set has no body.
	ErrMissingIconBody = zerr.New("icon has no body")

	// ErrUnresolvedAlias is returned when an alias parent does not lead to a real icon.
	ErrUnresolvedAlias = zerr.New("alias parent does not resolve to an icon")

	// ErrAliasTooDeep is returned when an alias chain is cyclic or longer than MaxAliasDepth.
	ErrAliasTooDeep = zerr.New("alias chain is too deep")

	// ErrIconNotFound is returned when an icon is confirmed missing.
	ErrIconNotFound = zerr.New("icon not found")

	// ErrRequestFailed is returned when an API request fails or returns a non-200 status.
	ErrRequestFailed = zerr.New("api request failed")

	// ErrResponseParseFailed is returned when an API response is not a valid icon set.
	ErrResponseParseFailed = zerr.New("failed to parse api response")

	// ErrQueryTimeout is returned when a query runs out of time before any host answered.
	ErrQueryTimeout = zerr.New("query timed out")

	// ErrHostsExhausted is returned when every configured host failed.
	ErrHostsExhausted = zerr.New("all api hosts failed")

	// ErrQueryAborted is returned when a query is aborted, by a caller or by a 404 response.
	ErrQueryAborted = zerr.New("query aborted")

	// ErrProviderNotConfigured is returned when no API configuration exists for a provider.
	ErrProviderNotConfigured = zerr.New("provider has no api configuration")

	// ErrLoaderClosed is returned when a request is issued after the loader shut down.
	ErrLoaderClosed = zerr.New("loader is closed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the configuration contains invalid values.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrSetReadFailed is returned when a local icon set file cannot be read.
	ErrSetReadFailed = zerr.New("failed to read icon set file")

	// ErrSetParseFailed is returned when a local icon set file cannot be decoded.
	ErrSetParseFailed = zerr.New("failed to parse icon set file")

	// ErrCacheReadFailed is returned when the persistent set cache cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read icon set cache")

	// ErrCacheWriteFailed is returned when the persistent set cache cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write icon set cache")

	// ErrCacheConnectFailed is returned when the cache backend cannot be reached.
	ErrCacheConnectFailed = zerr.New("failed to connect to icon set cache")

	// ErrUnknownCacheDriver is returned when the cache driver is not supported.
	ErrUnknownCacheDriver = zerr.New("unknown cache driver, expected 'none', 'disk', 'redis' or 'sqlite'")

	// ErrWatcherFailed is returned when the set watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch icon set files")

	// ErrServerFailed is returned when the HTTP server stops with an error.
	ErrServerFailed = zerr.New("http server failed")

	// ErrIconsMissing is returned by commands when some requested icons could not be resolved.
	ErrIconsMissing = zerr.New("some icons could not be resolved")

	// ErrRenderFailed is returned when rendered output cannot be written.
	ErrRenderFailed = zerr.New("failed to write rendered icon")

	// ErrValidationFailed is returned by validate when at least one icon set file is invalid.
	ErrValidationFailed = zerr.New("some icon set files are invalid")
)

// HasKind reports whether err, or one of its causes, is the sentinel kind.
// Attaching metadata copies a sentinel, so kinds are matched by message.
func HasKind(err, kind error) bool {
	want := kind.Error()
	for current := err; current != nil; current = errors.Unwrap(current) {
		link, ok := current.(interface{ Message() string })
		if !ok {
			return errors.Is(current, kind)
		}
		if link.Message() == want {
			return true
		}
	}
	return false
}
