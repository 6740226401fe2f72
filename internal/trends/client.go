// Package trends queries the Google Trends related-queries API.
//
// The API is unofficial and needs a two-step dance: an explore call that
// returns per-widget tokens, then a widgetdata call with the token. Both
// responses carry an XSSI prefix that must be stripped before decoding.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	exploreURL    = "https://trends.google.com/trends/api/explore"
	relatedURL    = "https://trends.google.com/trends/api/widgetdata/relatedsearches"
	relatedWidget = "RELATED_QUERIES"
)

// RelatedQueries holds the two ranked lists the API returns: queries with
// rising interest and the all-time top queries for the keyword.
type RelatedQueries struct {
	Rising []string
	Top    []string
}

// Client fetches related queries for a keyword over a recent time window.
type Client struct {
	httpClient *http.Client
	userAgent  string
	geo        string
	windowDays int
}

// New creates a trends client. geo is an ISO country code ("US"); a
// windowDays of 0 defaults to 30.
func New(geo string, windowDays int) *Client {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		geo:        geo,
		windowDays: windowDays,
	}
}

// RelatedQueries returns rising and top related queries for a keyword.
func (c *Client) RelatedQueries(ctx context.Context, keyword string) (*RelatedQueries, error) {
	widget, err := c.explore(ctx, keyword)
	if err != nil {
		return nil, err
	}

	reqJSON, err := json.Marshal(widget.Request)
	if err != nil {
		return nil, fmt.Errorf("marshal widget request: %w", err)
	}

	params := url.Values{
		"hl":    {"en-US"},
		"tz":    {"0"},
		"req":   {string(reqJSON)},
		"token": {widget.Token},
	}

	body, err := c.get(ctx, relatedURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("related searches: %w", err)
	}

	var parsed struct {
		Default struct {
			RankedList []struct {
				RankedKeyword []struct {
					Query string `json:"query"`
				} `json:"rankedKeyword"`
			} `json:"rankedList"`
		} `json:"default"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode related searches: %w", err)
	}

	// rankedList[0] is rising queries, rankedList[1] is top queries.
	result := &RelatedQueries{}
	for i, list := range parsed.Default.RankedList {
		for _, kw := range list.RankedKeyword {
			switch i {
			case 0:
				result.Rising = append(result.Rising, kw.Query)
			case 1:
				result.Top = append(result.Top, kw.Query)
			}
		}
	}
	return result, nil
}

type widgetSpec struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

// explore resolves the related-queries widget token for a keyword.
func (c *Client) explore(ctx context.Context, keyword string) (*widgetSpec, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -c.windowDays)

	exploreReq := map[string]any{
		"comparisonItem": []map[string]string{{
			"keyword": keyword,
			"geo":     c.geo,
			"time":    start.Format("2006-01-02") + " " + end.Format("2006-01-02"),
		}},
		"category": 0,
		"property": "",
	}
	reqJSON, err := json.Marshal(exploreReq)
	if err != nil {
		return nil, fmt.Errorf("marshal explore request: %w", err)
	}

	params := url.Values{
		"hl":  {"en-US"},
		"tz":  {"0"},
		"req": {string(reqJSON)},
	}

	body, err := c.get(ctx, exploreURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("explore: %w", err)
	}

	var parsed struct {
		Widgets []widgetSpec `json:"widgets"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode explore response: %w", err)
	}

	for i := range parsed.Widgets {
		if parsed.Widgets[i].ID == relatedWidget {
			return &parsed.Widgets[i], nil
		}
	}
	return nil, fmt.Errorf("no %s widget for %q", relatedWidget, keyword)
}

// get performs a request and strips the XSSI prefix from the response.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return stripXSSIPrefix(body), nil
}

// stripXSSIPrefix removes the `)]}'` guard Google prepends to JSON bodies.
func stripXSSIPrefix(body []byte) []byte {
	s := string(body)
	if idx := strings.IndexAny(s, "{["); idx > 0 {
		return []byte(s[idx:])
	}
	return body
}
