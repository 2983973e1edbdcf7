package acexr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/stageboard/internal/logger"
)

// ErrMalformedResponse is returned when a 200 response lacks the expected envelope.
var ErrMalformedResponse = errors.New("acexr: malformed response")

// StatusError is returned for any non-200 response.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s status %d: %s", e.Endpoint, e.Status, e.Body)
}

// Observer receives the outcome of every upstream request.
type Observer interface {
	ObserveUpstream(endpoint string, status int, d time.Duration)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithObserver reports request outcomes to o.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New returns a client for the platform data API rooted at baseURL,
// e.g. https://platform.acexr.com/api/1.1.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("acexr"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchLeaderboard loads the leaderboard object for stageID.
func (c *Client) FetchLeaderboard(ctx context.Context, stageID string) (*LeaderboardRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("acexr").WithField("stage_id", stageID)
	endpoint := c.baseURL + "/obj/leaderboard/" + url.PathEscape(stageID)

	var out leaderboardEnvelope
	if err := c.getJSON(ctx, log, "leaderboard", endpoint, &out); err != nil {
		return nil, err
	}
	if out.Response == nil {
		log.Error("leaderboard response has no body")
		return nil, fmt.Errorf("leaderboard %s: %w", stageID, ErrMalformedResponse)
	}

	log.Info("fetched leaderboard %q with %d score ids", out.Response.StageName, len(out.Response.ScoreIDs))
	return out.Response, nil
}

// FetchScores loads every score whose id is in ids, following the
// platform's cursor paging until no results remain.
func (c *Client) FetchScores(ctx context.Context, ids []string) ([]ScoreRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("acexr").WithField("score_ids", len(ids))

	constraints, err := json.Marshal([]constraint{{Key: "_id", ConstraintType: "in", Value: ids}})
	if err != nil {
		return nil, err
	}

	var (
		all    []ScoreRecord
		cursor int
	)
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("constraints", string(constraints))
		if cursor > 0 {
			q.Set("cursor", strconv.Itoa(cursor))
		}
		endpoint := c.baseURL + "/obj/score?" + q.Encode()

		var out scoresEnvelope
		if err := c.getJSON(ctx, log, "score", endpoint, &out); err != nil {
			return nil, err
		}
		if out.Response == nil || out.Response.Results == nil {
			log.Error("scores response page %d has no results", page)
			return nil, fmt.Errorf("scores page %d: %w", page, ErrMalformedResponse)
		}

		results := *out.Response.Results
		all = append(all, results...)
		log.Debug("scores page %d: %d results, %d remaining", page, len(results), out.Response.Remaining)

		if out.Response.Remaining <= 0 {
			break
		}
		if len(results) == 0 {
			log.Error("scores page %d is empty but %d remain", page, out.Response.Remaining)
			return nil, fmt.Errorf("scores page %d: empty page with %d remaining: %w", page, out.Response.Remaining, ErrMalformedResponse)
		}
		cursor += len(results)
	}

	log.Info("fetched %d scores", len(all))
	return all, nil
}

func (c *Client) getJSON(ctx context.Context, log *logger.Logger, name, endpoint string, out any) error {
	log.Debug("fetching %s from: %s", name, endpoint)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(name, 0, time.Since(start))
		log.Error("failed to fetch %s: %v", name, err)
		return err
	}
	defer resp.Body.Close()

	c.observe(name, resp.StatusCode, time.Since(start))
	log.Debug("%s response received in %v, status=%d", name, time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("%s request failed: status=%d, body=%s", name, resp.StatusCode, string(body))
		return &StatusError{Endpoint: name, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode %s response: %v", name, err)
		return fmt.Errorf("decode %s: %v: %w", name, err, ErrMalformedResponse)
	}
	return nil
}

func (c *Client) observe(name string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(name, status, d)
	}
}
