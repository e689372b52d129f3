package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	maxAttempts    = 3
	maxRetryDelay  = 5 * time.Second
	requestTimeout = 15 * time.Second
)

// APIError is a non-2xx answer from the content backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content api: %d %s", e.StatusCode, e.Message)
}

// ErrExhausted wraps the last error once all retry attempts failed.
var ErrExhausted = errors.New("content api: retries exhausted")

// Client talks to the headless content backend (bucket API). Reads use the
// read key, writes the write key. Transient failures (network errors, 5xx)
// are retried with exponential backoff; 4xx answers never are.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
	readKey    string
	writeKey   string

	// sleep is swappable so tests do not wait out real backoff delays.
	sleep func(time.Duration)
}

// NewClient creates a content backend client.
func NewClient(baseURL, bucket, readKey, writeKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		bucket:     bucket,
		readKey:    readKey,
		writeKey:   writeKey,
		sleep:      time.Sleep,
	}
}

// retryDelay returns min(1s * 2^(attempt-1), 5s).
func retryDelay(attempt int) time.Duration {
	d := time.Duration(1<<uint(attempt-1)) * time.Second
	if d > maxRetryDelay {
		d = maxRetryDelay
	}
	return d
}

// do executes the request built by build, retrying transient failures.
// The request is rebuilt per attempt so bodies can be resent.
func (c *Client) do(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			c.sleep(retryDelay(attempt - 1))
		}

		req, err := build()
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req.WithContext(ctx))
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			lastErr = &APIError{StatusCode: resp.StatusCode, Message: string(body)}
			continue
		}
		if resp.StatusCode >= 400 {
			// Client errors are never retried.
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
		}
		return resp, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrExhausted, lastErr)
}

func (c *Client) objectsURL() string {
	return fmt.Sprintf("%s/buckets/%s/objects", c.baseURL, url.PathEscape(c.bucket))
}

// ListObjects fetches objects of a type with pagination and metadata filters.
func (c *Client) ListObjects(ctx context.Context, q Query) ([]Object, int, error) {
	values := url.Values{}
	values.Set("type", q.Type)
	values.Set("read_key", c.readKey)
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		values.Set("skip", strconv.Itoa(q.Skip))
	}
	for key, val := range q.Metadata {
		values.Set(fmt.Sprintf("metadata[%s]", key), val)
	}
	endpoint := c.objectsURL() + "?" + values.Encode()

	resp, err := c.do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, endpoint, nil)
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			// Empty bucket type reads as an empty collection, not an error.
			return []Object{}, 0, nil
		}
		return nil, 0, err
	}
	defer resp.Body.Close()

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, 0, fmt.Errorf("decode objects: %w", err)
	}
	return out.Objects, out.Total, nil
}

// GetObject fetches a single object by id. A missing object returns (nil, nil).
func (c *Client) GetObject(ctx context.Context, id string) (*Object, error) {
	endpoint := fmt.Sprintf("%s/%s?read_key=%s", c.objectsURL(), url.PathEscape(id), url.QueryEscape(c.readKey))

	resp, err := c.do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, endpoint, nil)
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	var out objectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	return out.Object, nil
}

// CreateObject inserts a new object into the bucket.
func (c *Client) CreateObject(ctx context.Context, draft ObjectDraft) (*Object, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("marshal draft: %w", err)
	}

	resp, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, c.objectsURL(), bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		c.writeHeaders(req)
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out objectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	return out.Object, nil
}

// UpdateObject applies a partial update to an object.
func (c *Client) UpdateObject(ctx context.Context, id string, patch ObjectPatch) (*Object, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("marshal patch: %w", err)
	}
	endpoint := fmt.Sprintf("%s/%s", c.objectsURL(), url.PathEscape(id))

	resp, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPatch, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		c.writeHeaders(req)
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out objectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	return out.Object, nil
}

// DeleteObject removes an object from the bucket.
func (c *Client) DeleteObject(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/%s", c.objectsURL(), url.PathEscape(id))

	resp, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
		if err != nil {
			return nil, err
		}
		c.writeHeaders(req)
		return req, nil
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) writeHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.writeKey)
}
