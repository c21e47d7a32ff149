package swissre

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/securian/medsummary/internal/domain/summary"
)

const (
	defaultBaseURL = "https://lifeguide-rest-genai.api-mp.swissre.com"
	summaryPath    = "/summary"

	defaultAuthUser = "Securian"
	// The upstream contract currently expects this constant rather than a
	// per-call identifier.
	defaultSessionID = "123456"

	contentType = "info"
	language    = "en-eu"
	ratingType  = "adult"
)

var productTypes = []string{"life1"}

// Client performs single-shot summary requests against the SwissRe Life Guide
// endpoint.
type Client struct {
	baseURL    string
	authUser   string
	sessionID  string
	httpClient *http.Client
}

// NewClient builds a summary API client. Empty arguments fall back to the
// production contract values.
func NewClient(baseURL, authUser, sessionID string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if strings.TrimSpace(authUser) == "" {
		authUser = defaultAuthUser
	}
	if strings.TrimSpace(sessionID) == "" {
		sessionID = defaultSessionID
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authUser:   authUser,
		sessionID:  sessionID,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type summaryRequest struct {
	ProductType []string `json:"product_type"`
	Summary     string   `json:"summary"`
	ContentType string   `json:"contentType"`
	Language    string   `json:"language"`
	RatingType  string   `json:"ratingType"`
}

// CreateSummary posts the prompted text and parses the structured result.
// One attempt, no retries; the caller owns the degradation policy.
func (c *Client) CreateSummary(ctx context.Context, token, prompted string) (summary.Result, error) {
	if strings.TrimSpace(token) == "" {
		return summary.Result{}, errors.New("bearer token cannot be empty")
	}

	payload, err := json.Marshal(summaryRequest{
		ProductType: productTypes,
		Summary:     prompted,
		ContentType: contentType,
		Language:    language,
		RatingType:  ratingType,
	})
	if err != nil {
		return summary.Result{}, fmt.Errorf("encode summary request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+summaryPath, bytes.NewReader(payload))
	if err != nil {
		return summary.Result{}, fmt.Errorf("build summary request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-sr-auth-user", c.authUser)
	req.Header.Set("session-id", c.sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return summary.Result{}, fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return summary.Result{}, fmt.Errorf("summary request error: status=%d body=%s", resp.StatusCode, string(excerpt))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return summary.Result{}, fmt.Errorf("read summary response: %w", err)
	}

	var result summary.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return summary.Result{}, fmt.Errorf("decode summary response: %w", err)
	}
	return result, nil
}

var _ summary.Client = (*Client)(nil)
