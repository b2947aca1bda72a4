package recommend

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// CourseRecommendation is one scored row returned by the AI service
type CourseRecommendation struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// ChatResult is the chat-variant response of the AI service
type ChatResult struct {
	Score   float64                `json:"score"`
	Courses []CourseRecommendation `json:"courses"`
}

// Client consumes the external AI scoring service. The service is an
// opaque HTTP API; every call carries a hard timeout and failures are for
// the caller to degrade gracefully.
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the scoring service at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

// Recommend fetches courses similar to a single course
func (c *Client) Recommend(courseID string, topK int) ([]CourseRecommendation, error) {
	var out []CourseRecommendation
	resp, err := c.http.R().
		SetQueryParam("course_id", courseID).
		SetQueryParam("top_k", strconv.Itoa(topK)).
		SetResult(&out).
		Get("/recommend")
	if err != nil {
		return nil, fmt.Errorf("recommend request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("recommend request returned %d: %s", resp.StatusCode(), resp.String())
	}
	return out, nil
}

// RecommendBatch asks the service for recommendations complementary to the
// given batch of course IDs. The IDs are passed as repeated course_ids
// query parameters, matching the service contract.
func (c *Client) RecommendBatch(courseIDs []string, topK int) ([]CourseRecommendation, error) {
	params := url.Values{}
	for _, id := range courseIDs {
		params.Add("course_ids", id)
	}
	params.Set("top_k", strconv.Itoa(topK))

	var out []CourseRecommendation
	resp, err := c.http.R().
		SetQueryParamsFromValues(params).
		SetResult(&out).
		Post("/recommend/batch")
	if err != nil {
		return nil, fmt.Errorf("batch recommend request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("batch recommend request returned %d: %s", resp.StatusCode(), resp.String())
	}
	return out, nil
}

// Chat sends a free-form query to the chat endpoint
func (c *Client) Chat(query string, topK int) (ChatResult, error) {
	var out ChatResult
	resp, err := c.http.R().
		SetQueryParam("query", query).
		SetQueryParam("top_k", strconv.Itoa(topK)).
		SetResult(&out).
		Get("/chat")
	if err != nil {
		return ChatResult{}, fmt.Errorf("chat request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return ChatResult{}, fmt.Errorf("chat request returned %d: %s", resp.StatusCode(), resp.String())
	}
	return out, nil
}
