package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// APIError carries the upstream status and message of a failed panel call.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	return fmt.Sprintf("panel responded %d: %s", e.Status, e.Message)
}

// CreateServerRequest describes a server allocation sized from a product.
type CreateServerRequest struct {
	UserID      int64
	Name        string
	ExternalRef uuid.UUID
	RAMMB       int
	CPUPercent  int
	DiskMB      int
}

// CreatedServer holds the identifiers the panel assigns to a new server.
type CreatedServer struct {
	ID         int64
	Identifier string
}

// Client exposes the panel application API operations used by the
// provisioning workflow. Every failure is reported as an error; callers
// in the verification loop record it and continue with the next item.
type Client interface {
	FindUserIDByEmail(ctx context.Context, email string) (int64, bool, error)
	CreateUser(ctx context.Context, email, name string) (int64, error)
	CreateServer(ctx context.Context, req CreateServerRequest) (*CreatedServer, error)
	SuspendServer(ctx context.Context, serverID int64) error
	UnsuspendServer(ctx context.Context, serverID int64) error
}

// HTTPClient implements Client against the panel REST API.
type HTTPClient struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// attributes mirrors the subset of panel object attributes we consume;
// the rest of the payload is ignored.
type attributes struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
}

type object struct {
	Attributes attributes `json:"attributes"`
}

type list struct {
	Data []object `json:"data"`
}

type errorEnvelope struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// NewHTTPClient creates a panel client with default timeout.
func NewHTTPClient(baseURL, token string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse panel url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("panel url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// FindUserIDByEmail looks up a panel account by email. A miss is not an
// error; it reports found=false.
func (c *HTTPClient) FindUserIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	query := url.Values{}
	query.Set("filter[email]", email)

	var result list
	if err := c.do(ctx, http.MethodGet, "/api/application/users", query, nil, &result); err != nil {
		return 0, false, err
	}

	if len(result.Data) == 0 {
		return 0, false, nil
	}
	return result.Data[0].Attributes.ID, true, nil
}

// CreateUser registers a new panel account for the customer.
func (c *HTTPClient) CreateUser(ctx context.Context, email, name string) (int64, error) {
	body := map[string]any{
		"email":      email,
		"username":   email,
		"first_name": name,
		"last_name":  "customer",
	}

	var result object
	if err := c.do(ctx, http.MethodPost, "/api/application/users", nil, body, &result); err != nil {
		return 0, err
	}
	return result.Attributes.ID, nil
}

// CreateServer requests allocation of a server with the given limits.
func (c *HTTPClient) CreateServer(ctx context.Context, req CreateServerRequest) (*CreatedServer, error) {
	body := map[string]any{
		"name":        req.Name,
		"user":        req.UserID,
		"external_id": req.ExternalRef.String(),
		"limits": map[string]int{
			"memory": req.RAMMB,
			"cpu":    req.CPUPercent,
			"disk":   req.DiskMB,
			"swap":   0,
			"io":     500,
		},
	}

	var result object
	if err := c.do(ctx, http.MethodPost, "/api/application/servers", nil, body, &result); err != nil {
		return nil, err
	}
	return &CreatedServer{ID: result.Attributes.ID, Identifier: result.Attributes.Identifier}, nil
}

// SuspendServer powers a server down on the panel.
func (c *HTTPClient) SuspendServer(ctx context.Context, serverID int64) error {
	endpoint := path.Join("/api/application/servers", strconv.FormatInt(serverID, 10), "suspend")
	return c.do(ctx, http.MethodPost, endpoint, nil, nil, nil)
}

// UnsuspendServer resumes a suspended server.
func (c *HTTPClient) UnsuspendServer(ctx context.Context, serverID int64) error {
	endpoint := path.Join("/api/application/servers", strconv.FormatInt(serverID, 10), "unsuspend")
	return c.do(ctx, http.MethodPost, endpoint, nil, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)
	if query != nil {
		target.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), payload)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := APIError{Status: resp.StatusCode, Message: errorDetail(raw)}
		c.logger.Error("panel request failed",
			slog.String("method", method),
			slog.String("path", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("detail", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorDetail(raw []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Errors) > 0 {
		return envelope.Errors[0].Detail
	}
	detail := string(raw)
	if len(detail) > 256 {
		detail = detail[:256]
	}
	return detail
}
