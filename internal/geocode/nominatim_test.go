package geocode_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/crimealert/beacon/internal/geocode"
	"github.com/crimealert/beacon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestNominatimProvider_ReverseGeocode(t *testing.T) {
	logger := slog.Default()
	point := models.Coordinates{Latitude: 23.8103, Longitude: 90.4125}

	t.Run("successful reverse geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org/reverse")
				assert.Equal(t, "23.8103", req.URL.Query().Get("lat"))
				assert.Equal(t, "90.4125", req.URL.Query().Get("lon"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(
					t,
					"Beacon-Alert-Service/1.0 (https://github.com/crimealert/beacon)",
					req.Header.Get("User-Agent"),
				)

				// Return mock response
				responseBody := `{"display_name":"Gulshan Avenue, Dhaka, Bangladesh"}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocode.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(t.Context(), point)

		require.NoError(t, err)
		assert.Equal(t, "Gulshan Avenue, Dhaka, Bangladesh", address)
	})

	t.Run("unresolvable point", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"error":"Unable to geocode"}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocode.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(t.Context(), point)

		require.Error(t, err)
		require.Empty(t, address)
		assert.ErrorIs(t, err, geocode.ErrNominatimNotResolved)
	})

	t.Run("empty response from API", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocode.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(t.Context(), point)

		require.Error(t, err)
		require.Empty(t, address)
		assert.ErrorIs(t, err, geocode.ErrNominatimEmptyResponse)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"error":"Rate limit exceeded"}`
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocode.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(t.Context(), point)

		require.Error(t, err)
		require.Empty(t, address)
		assert.Contains(t, err.Error(), "nominatim API returned status 429")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `invalid json`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocode.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(t.Context(), point)

		require.Error(t, err)
		require.Empty(t, address)
		assert.Contains(t, err.Error(), "failed to decode nominatim response")
	})

	t.Run("transport failure", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := geocode.NewNominatimProviderWithClient(mockClient, logger)
		address, err := provider.ReverseGeocode(t.Context(), point)

		require.Error(t, err)
		require.Empty(t, address)
		assert.Contains(t, err.Error(), "failed to execute reverse geocoding request")
	})
}
