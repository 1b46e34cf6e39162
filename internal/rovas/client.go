// Package rovas talks to the Rovas work-accounting service: shareholder
// verification, work-report creation, and usage-fee charges.
package rovas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/chronomap/internal/domain"
)

// Client provides access to the Rovas rules-proxy endpoints. All methods
// fail with ErrMissingCredentials before any request when the key pair is
// incomplete, and with ErrInvalidCredentials when the service rejects it.
type Client interface {
	// CheckOrAddShareholder verifies (registering if absent) that the
	// credential holder participates in the OSM project, returning the
	// positive participation id.
	CheckOrAddShareholder(ctx context.Context, creds domain.Credentials) (int64, error)

	// CreateWorkReport submits a labor report and returns the created
	// report id. A success response without a recoverable id returns
	// (0, nil); the caller decides how to surface that degraded outcome.
	CreateWorkReport(ctx context.Context, creds domain.Credentials, report domain.LaborReport) (int64, error)

	// ChargeUsageFee submits the usage fee tied to a created report.
	ChargeUsageFee(ctx context.Context, creds domain.Credentials, fee domain.FeeCharge) error
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client against the configured endpoint.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) CheckOrAddShareholder(ctx context.Context, creds domain.Credentials) (int64, error) {
	payload := map[string]any{"project_id": domain.OSMProjectID}

	body, status, err := c.post(ctx, "check_or_add_shareholder", "rules_proxy_check_or_add_shareholder", creds, payload)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("shareholder check returned status %d: %s", status, body)
	}

	res := parseShareholderResponse(body)
	if res.Kind == ShareholderUnrecognized {
		return 0, fmt.Errorf("%w: %s", ErrNoShareholderID, body)
	}
	if res.ID <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidShareholderID, res.ID)
	}
	return res.ID, nil
}

func (c *httpClient) CreateWorkReport(ctx context.Context, creds domain.Credentials, report domain.LaborReport) (int64, error) {
	body, status, err := c.post(ctx, "create_work_report", "rules_proxy_create_work_report", creds, report)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("work report returned status %d: %s", status, body)
	}

	var resp struct {
		CreatedWrNid int64 `json:"created_wr_nid"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		// Report likely created; the id just could not be recovered.
		return 0, nil
	}
	return resp.CreatedWrNid, nil
}

func (c *httpClient) ChargeUsageFee(ctx context.Context, creds domain.Credentials, fee domain.FeeCharge) error {
	body, status, err := c.post(ctx, "create_aur", "rules_proxy_create_aur", creds, fee)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("usage fee charge returned status %d: %s", status, body)
	}
	return nil
}

// post sends one JSON request with the credential headers and returns the
// raw body and status. Invalid-credential bodies short-circuit regardless
// of status.
func (c *httpClient) post(ctx context.Context, op, path string, creds domain.Credentials, payload any) (string, int, error) {
	start := time.Now()

	fail := func(status int, code string, err error) (string, int, error) {
		c.observer.OnCallComplete(APICallEvent{
			Operation: op,
			Status:    status,
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   false,
			ErrorCode: code,
		})
		return "", status, err
	}

	if creds.Missing() {
		return fail(0, "MISSING_CREDENTIALS", ErrMissingCredentials)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fail(0, "MARSHAL", fmt.Errorf("marshaling request: %w", err))
	}

	url := c.cfg.Endpoint + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fail(0, "REQUEST", fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("API-KEY", creds.APIKey)
	req.Header.Set("TOKEN", creds.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, "TRANSPORT", fmt.Errorf("calling %s: %w", op, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "READ", fmt.Errorf("reading response: %w", err))
	}
	body := string(raw)

	if isInvalidCredentials(body) {
		return fail(resp.StatusCode, "INVALID_CREDENTIALS", ErrInvalidCredentials)
	}

	success := resp.StatusCode == http.StatusOK
	code := ""
	if !success {
		code = fmt.Sprintf("HTTP_%d", resp.StatusCode)
	}
	c.observer.OnCallComplete(APICallEvent{
		Operation: op,
		Status:    resp.StatusCode,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   success,
		ErrorCode: code,
	})
	return body, resp.StatusCode, nil
}
