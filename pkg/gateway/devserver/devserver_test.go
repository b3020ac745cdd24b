package devserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flaboy/aira-checkout/pkg/config"
	"github.com/flaboy/aira-checkout/pkg/gateway/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransport(t *testing.T, handler http.HandlerFunc) *DevServer {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config.Config = &config.CheckoutConfig{}
	config.Config.Gateway.Mode = "dev"
	config.Config.Gateway.DevServerURL = server.URL + "/create-payment-intent"

	transport := &DevServer{}
	require.NoError(t, transport.Init())
	return transport
}

func TestCreateIntent(t *testing.T) {
	var received types.CreateIntentRequest

	transport := setupTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create-payment-intent", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(types.CreateIntentResponse{
			ClientSecret:    "pi_123_secret_456",
			PaymentIntentID: "pi_123",
		})
	})

	handle, err := transport.CreateIntent(&types.CreateIntentRequest{
		Amount:   9999,
		Currency: "usd",
		Metadata: map[string]string{"attempt_id": "a-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_123", handle.PaymentIntentID)
	assert.Equal(t, "pi_123_secret_456", handle.ClientSecret)
	assert.Equal(t, int64(9999), received.Amount)
	assert.Equal(t, "usd", received.Currency)
	assert.Equal(t, "a-1", received.Metadata["attempt_id"])
}

func TestCreateIntentErrorResponse(t *testing.T) {
	transport := setupTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(types.CreateIntentResponse{Error: "card_declined"})
	})

	handle, err := transport.CreateIntent(&types.CreateIntentRequest{Amount: 100, Currency: "usd"})

	assert.Nil(t, handle)
	require.Error(t, err)
	var transportErr *types.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "card_declined", transportErr.Message)
}

func TestCreateIntentNonSuccessStatus(t *testing.T) {
	transport := setupTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("{}"))
	})

	_, err := transport.CreateIntent(&types.CreateIntentRequest{Amount: 100, Currency: "usd"})

	require.Error(t, err)
	var transportErr *types.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Message, "status 500")
}

func TestCreateIntentMissingClientSecret(t *testing.T) {
	transport := setupTransport(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.CreateIntentResponse{PaymentIntentID: "pi_123"})
	})

	_, err := transport.CreateIntent(&types.CreateIntentRequest{Amount: 100, Currency: "usd"})

	require.Error(t, err)
	var transportErr *types.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Message, "client secret")
}

func TestCreateIntentNetworkFailure(t *testing.T) {
	config.Config = &config.CheckoutConfig{}
	config.Config.Gateway.DevServerURL = "http://127.0.0.1:1/create-payment-intent"

	transport := &DevServer{}
	require.NoError(t, transport.Init())

	_, err := transport.CreateIntent(&types.CreateIntentRequest{Amount: 100, Currency: "usd"})

	require.Error(t, err)
	var transportErr *types.TransportError
	require.ErrorAs(t, err, &transportErr)
}
