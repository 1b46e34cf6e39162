package rovas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/chronomap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = domain.Credentials{APIKey: "key", Token: "tok"}

func testClient(endpoint string) Client {
	return NewClient(Config{Endpoint: endpoint}, NoopObserver{})
}

func TestCheckOrAddShareholder_Structured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rules_proxy_check_or_add_shareholder", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "key", r.Header.Get("API-KEY"))
		assert.Equal(t, "tok", r.Header.Get("TOKEN"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1998, body["project_id"])

		w.Write([]byte(`{"result": 56744}`))
	}))
	defer srv.Close()

	id, err := testClient(srv.URL).CheckOrAddShareholder(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, int64(56744), id)
}

func TestCheckOrAddShareholder_LegacyTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("shareholding confirmed, result: 9912"))
	}))
	defer srv.Close()

	id, err := testClient(srv.URL).CheckOrAddShareholder(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, int64(9912), id)
}

func TestCheckOrAddShareholder_ZeroIDIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": 0}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CheckOrAddShareholder(context.Background(), testCreds)
	assert.ErrorIs(t, err, ErrInvalidShareholderID)
}

func TestCheckOrAddShareholder_NoIDInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "maybe"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CheckOrAddShareholder(context.Background(), testCreds)
	assert.ErrorIs(t, err, ErrNoShareholderID)
}

func TestCheckOrAddShareholder_InvalidKeysMarkerOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The service reports bad keys with a 200 and a marker string.
		w.Write([]byte("The API keys sent are invalid"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CheckOrAddShareholder(context.Background(), testCreds)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCheckOrAddShareholder_MissingCredentialsNoRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CheckOrAddShareholder(context.Background(), domain.Credentials{APIKey: "key"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.False(t, called, "no network call may happen without credentials")
}

func TestCreateWorkReport_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rules_proxy_create_work_report", r.URL.Path)

		var report domain.LaborReport
		require.NoError(t, json.NewDecoder(r.Body).Decode(&report))
		assert.Equal(t, 1645, report.Classification)
		assert.InDelta(t, 1.50, report.Hours, 1e-9)
		assert.Equal(t, 1, report.PublishStatus)

		w.Write([]byte(`{"created_wr_nid": 42}`))
	}))
	defer srv.Close()

	report := domain.NewLaborReport("100", "comment", 90*time.Minute, time.Now())
	id, err := testClient(srv.URL).CreateWorkReport(context.Background(), testCreds, report)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestCreateWorkReport_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	report := domain.NewLaborReport("100", "", time.Hour, time.Now())
	_, err := testClient(srv.URL).CreateWorkReport(context.Background(), testCreds, report)
	assert.ErrorContains(t, err, "status 500")
}

func TestCreateWorkReport_MissingIDIsDegradedSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("created, thanks"))
	}))
	defer srv.Close()

	report := domain.NewLaborReport("100", "", time.Hour, time.Now())
	id, err := testClient(srv.URL).CreateWorkReport(context.Background(), testCreds, report)
	require.NoError(t, err)
	assert.Equal(t, int64(0), id, "missing id surfaces as zero, not as an error")
}

func TestChargeUsageFee_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rules_proxy_create_aur", r.URL.Path)

		var fee domain.FeeCharge
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fee))
		assert.Equal(t, 429681, fee.ProjectID)
		assert.Equal(t, int64(42), fee.ReportID)
		assert.InDelta(t, 0.45, fee.UsageFee, 1e-9)

		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	err := testClient(srv.URL).ChargeUsageFee(context.Background(), testCreds, domain.NewFeeCharge(42, 1.50))
	assert.NoError(t, err)
}

func TestChargeUsageFee_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := testClient(srv.URL).ChargeUsageFee(context.Background(), testCreds, domain.NewFeeCharge(1, 0.5))
	assert.ErrorContains(t, err, "status 400")
}

func TestClient_Unreachable(t *testing.T) {
	c := testClient("http://127.0.0.1:1") // nothing listening
	_, err := c.CheckOrAddShareholder(context.Background(), testCreds)
	assert.Error(t, err)
}
