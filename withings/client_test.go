package withings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openhealth/fitsync/errs"
)

const measureResponse = `{
  "status": 0,
  "body": {
    "measuregrps": [
      {
        "grpid": 1,
        "date": 1700000000,
        "category": 1,
        "measures": [
          {"value": 80350, "type": 1, "unit": -3},
          {"value": 221, "type": 6, "unit": -1},
          {"value": 120, "type": 10, "unit": 0},
          {"value": 80, "type": 9, "unit": 0},
          {"value": 64, "type": 11, "unit": 0}
        ]
      },
      {
        "grpid": 2,
        "date": 1700003600,
        "category": 1,
        "measures": [
          {"value": 99, "type": 54, "unit": 0}
        ]
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{AccessToken: "tok", BaseURL: server.URL})
	require.NoError(t, err)

	return client
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(Config{})
	require.ErrorIs(t, err, errs.ErrMissingToken)
}

func TestNewClient_AcceptsCustomHTTPClient(t *testing.T) {
	client, err := NewClient(Config{HTTPClient: http.DefaultClient})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestClient_Measurements(t *testing.T) {
	var gotQuery map[string][]string
	var gotAuth string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(measureResponse))
	})

	from := time.Unix(1699990000, 0)
	to := time.Unix(1700010000, 0)

	measurements, err := client.Measurements(context.Background(), from, to)
	require.NoError(t, err)

	require.Equal(t, "Bearer tok", gotAuth)
	require.Equal(t, []string{"getmeas"}, gotQuery["action"])
	require.Equal(t, []string{"1"}, gotQuery["category"])
	require.Equal(t, []string{"1699990000"}, gotQuery["startdate"])
	require.Equal(t, []string{"1700010000"}, gotQuery["enddate"])

	// the second group maps to no known measure type and is dropped
	require.Len(t, measurements, 1)

	m := measurements[0]
	require.Equal(t, time.Unix(1700000000, 0), m.Timestamp)
	require.NotNil(t, m.Weight)
	require.InDelta(t, 80.35, *m.Weight, 1e-9)
	require.NotNil(t, m.FatRatio)
	require.InDelta(t, 22.1, *m.FatRatio, 1e-9)
	require.NotNil(t, m.SystolicBP)
	require.Equal(t, 120, *m.SystolicBP)
	require.NotNil(t, m.DiastolicBP)
	require.Equal(t, 80, *m.DiastolicBP)
	require.NotNil(t, m.HeartRate)
	require.Equal(t, 64, *m.HeartRate)
	require.Nil(t, m.MuscleMass)
	require.Nil(t, m.BoneMass)
	require.Nil(t, m.Hydration)
}

func TestClient_Measurements_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": 401, "error": "invalid token"}`))
	})

	_, err := client.Measurements(context.Background(), time.Unix(0, 0), time.Unix(1, 0))
	require.ErrorIs(t, err, errs.ErrAPIStatus)
	require.ErrorContains(t, err, "invalid token")
}

func TestClient_Measurements_BadJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Measurements(context.Background(), time.Unix(0, 0), time.Unix(1, 0))
	require.Error(t, err)
}

func TestClient_Height(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "4", r.URL.Query().Get("meastype"))
		_, _ = w.Write([]byte(`{
  "status": 0,
  "body": {
    "measuregrps": [
      {"grpid": 1, "date": 1600000000, "measures": [{"value": 178, "type": 4, "unit": -2}]},
      {"grpid": 2, "date": 1700000000, "measures": [{"value": 179, "type": 4, "unit": -2}]}
    ]
  }
}`))
	})

	height, err := client.Height(context.Background())
	require.NoError(t, err)
	require.NotNil(t, height)
	require.InDelta(t, 1.79, *height, 1e-9, "must pick the most recent reading")
}

func TestClient_Height_NoneRecorded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": 0, "body": {"measuregrps": []}}`))
	})

	height, err := client.Height(context.Background())
	require.NoError(t, err)
	require.Nil(t, height)
}
