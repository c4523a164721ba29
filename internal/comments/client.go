// Package comments retrieves top viewer comments for a video through the
// YouTube Data API.
package comments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"soundrip/internal/media"
	"soundrip/internal/services"
)

const (
	defaultBaseURL    = "https://www.googleapis.com/youtube/v3"
	defaultMaxResults = 100
	maxResultsCap     = 100
	defaultTimeout    = 30 * time.Second
)

// CommentRecord is a single top-level comment, ordered by like count.
type CommentRecord struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	LikeCount int    `json:"like_count"`
}

// Config controls the YouTube Data API client.
type Config struct {
	APIKey     string
	BaseURL    string
	MaxResults int
}

// Client fetches comment threads for a video.
type Client struct {
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient constructs a comments client. The API key is validated at fetch
// time so construction never fails.
func NewClient(cfg Config, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxResults: cfg.MaxResults,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.maxResults <= 0 {
		client.maxResults = defaultMaxResults
	}
	if client.maxResults > maxResultsCap {
		client.maxResults = maxResultsCap
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					AuthorDisplayName string `json:"authorDisplayName"`
					TextDisplay       string `json:"textDisplay"`
					LikeCount         int    `json:"likeCount"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Fetch returns up to the configured number of top-level comments for the
// video, sorted by like count descending. The video ID is parsed from the
// URL before any network traffic.
func (c *Client) Fetch(ctx context.Context, videoURL string) ([]CommentRecord, error) {
	videoID, err := media.ExtractVideoID(videoURL)
	if err != nil {
		return nil, services.Wrap(services.ErrComments, "comments", "parse video URL", "", err)
	}
	if c.apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "comments", "fetch comments",
			"YouTube API key not configured", nil)
	}

	query := url.Values{}
	query.Set("part", "snippet")
	query.Set("videoId", videoID)
	query.Set("order", "relevance")
	query.Set("textFormat", "plainText")
	query.Set("maxResults", strconv.Itoa(c.maxResults))
	query.Set("key", c.apiKey)

	endpoint := c.baseURL + "/commentThreads?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrComments, "comments", "build request", "", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "comments", "fetch comments", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, services.Wrap(services.ErrComments, "comments", "read response", "", err)
	}

	var payload commentThreadsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, services.Wrap(services.ErrComments, "comments", "fetch comments",
				fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
		}
		return nil, services.Wrap(services.ErrComments, "comments", "decode response", "", err)
	}
	if payload.Error != nil {
		marker := services.ErrComments
		if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
			marker = services.ErrTransient
		}
		return nil, services.Wrap(marker, "comments", "fetch comments",
			fmt.Sprintf("API error %d: %s", payload.Error.Code, payload.Error.Message), nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrComments, "comments", "fetch comments",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	records := make([]CommentRecord, 0, len(payload.Items))
	for _, item := range payload.Items {
		snippet := item.Snippet.TopLevelComment.Snippet
		text := strings.TrimSpace(snippet.TextDisplay)
		if text == "" {
			continue
		}
		records = append(records, CommentRecord{
			Author:    snippet.AuthorDisplayName,
			Text:      text,
			LikeCount: snippet.LikeCount,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LikeCount > records[j].LikeCount
	})
	if len(records) > c.maxResults {
		records = records[:c.maxResults]
	}
	return records, nil
}
