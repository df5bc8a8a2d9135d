package volley

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"volleycal/internal/retry"
)

const (
	// DefaultBaseURL is the public Volleyball World API root.
	DefaultBaseURL = "https://en.volleyballworld.com/api/v1"

	requestTimeout = 15 * time.Second
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36"
)

// Client issues requests to the Volleyball World schedule API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      retry.Config
	log        *logrus.Logger
}

// NewClient creates a Client for the given API root. An empty baseURL selects
// the public endpoint.
func NewClient(baseURL string, retryCfg retry.Config, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		retry: retryCfg,
		log:   log,
	}
}

// getJSON fetches a path relative to the API root and decodes the JSON body
// into out. Transport and 5xx failures are retried per the client's retry
// config; the final failure is returned as a *NetworkError. A body that does
// not decode is a *ParseError.
func (c *Client) getJSON(path string, out interface{}) error {
	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	setAPIHeaders(req)

	c.log.WithField("url", reqURL).Debug("fetching")

	var body []byte
	op := func() error {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.WithField("url", reqURL).WithError(err).Warn("request failed")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			err := &statusError{code: resp.StatusCode}
			c.log.WithField("url", reqURL).WithError(err).Warn("request failed")
			return err
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	if err := retry.Do(op, c.retry, isRetryable); err != nil {
		return &NetworkError{URL: reqURL, Err: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{URL: reqURL, Err: err}
	}

	return nil
}

// setAPIHeaders mimics the browser requests the public API expects.
func setAPIHeaders(req *http.Request) {
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,pt-BR;q=0.8,pt;q=0.7")
	req.Header.Set("Origin", "https://en.volleyballworld.com")
	req.Header.Set("Referer", "https://en.volleyballworld.com/")
	req.Header.Set("User-Agent", userAgent)
}
