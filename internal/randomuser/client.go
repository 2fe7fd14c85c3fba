package randomuser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/phd13/vue-infinite-scroll/internal/domain"
)

const (
	// DefaultBaseURL is the public random user API root
	DefaultBaseURL = "https://randomuser.me/api/"

	includedFields = "name,picture,email"
	nationalities  = "gb,de,fr,es,ie,it,nl,pl,pt,se"
)

// Ensure Client implements domain.UserFetcher
var _ domain.UserFetcher = (*Client)(nil)

// Config holds the settings a Client is built from
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero leaves the HTTP client's own setting.
	Timeout time.Duration
	// HTTPClient is used when set; Timeout is still applied to a copy of it
	HTTPClient *http.Client
	// Logger receives one line per failed fetch. Defaults to log.Default().
	Logger *log.Logger
}

// Client fetches users from the random user API and normalizes them
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a new random user API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", cfg.BaseURL)
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		httpClient = &c
	}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

type apiResponse struct {
	Results *[]json.RawMessage `json:"results"`
	Error   string             `json:"error"`
}

// FetchUsers requests count users and returns them normalized, in the order
// the service sent them. A count of zero requests DefaultUserCount users.
// The result may hold fewer users than requested.
func (c *Client) FetchUsers(ctx context.Context, count int) ([]domain.User, error) {
	if count < 0 {
		return nil, domain.ErrInvalidCount
	}
	if count == 0 {
		count = domain.DefaultUserCount
	}

	users, err := c.fetch(ctx, count)
	if err != nil {
		c.logger.Printf("Request error: %v", err)
		return nil, err
	}
	return users, nil
}

func (c *Client) fetch(ctx context.Context, count int) ([]domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(count), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return decodeUsers(body)
}

func (c *Client) requestURL(count int) string {
	u := *c.baseURL
	q := u.Query()
	q.Set("results", strconv.Itoa(count))
	q.Set("inc", includedFields)
	q.Set("nat", nationalities)
	u.RawQuery = q.Encode()
	return u.String()
}

func decodeUsers(body []byte) ([]domain.User, error) {
	var ar apiResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, &MalformedResponseError{Index: -1, Err: err}
	}
	if ar.Error != "" {
		return nil, &TransportError{Message: ar.Error, Err: errors.New(ar.Error)}
	}
	if ar.Results == nil {
		return nil, &MalformedResponseError{Index: -1, Field: "results"}
	}

	raw := *ar.Results
	users := make([]domain.User, 0, len(raw))
	for i, elem := range raw {
		var ru domain.RawUser
		if err := json.Unmarshal(elem, &ru); err != nil {
			return nil, &MalformedResponseError{Index: i, Err: fmt.Errorf("results[%d]: %w", i, err)}
		}
		if field := ru.MissingField(); field != "" {
			return nil, &MalformedResponseError{Index: i, Field: field}
		}
		users = append(users, ru.Normalize())
	}
	return users, nil
}
