package meta

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://graph.facebook.com/v18.0"

	maxRetries = 3
)

type Client struct {
	pixelID       string
	accessToken   string
	testEventCode string
	baseURL       string
	retryBase     time.Duration
	http          *http.Client
}

func NewClient(pixelID, accessToken, testEventCode string) *Client {
	return &Client{
		pixelID:       pixelID,
		accessToken:   accessToken,
		testEventCode: testEventCode,
		baseURL:       defaultBaseURL,
		retryBase:     500 * time.Millisecond,
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client at a different API host. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// WithRetryBase overrides the backoff unit. Used by tests.
func (c *Client) WithRetryBase(d time.Duration) *Client {
	c.retryBase = d
	return c
}

// Send delivers one event. It never fails the caller: missing credentials,
// rejected payloads and exhausted retries all log and return nil. Business
// logic must not branch on the result.
func (c *Client) Send(ctx context.Context, event Event) *EventResponse {
	if c.pixelID == "" || c.accessToken == "" {
		log.Println("meta: pixel id or access token not configured, dropping event", event.EventName)
		return nil
	}

	if event.EventTime == 0 {
		event.EventTime = time.Now().Unix()
	}
	if event.ActionSource == "" {
		event.ActionSource = "website"
	}
	if event.EventID == "" {
		event.EventID = DeduplicationID(event.EventName, event.EventTime, event.CustomData)
	}

	// PII leaves the process hashed. Browser tokens (fbp/fbc) stay opaque.
	event.UserData.Em = hashAll(event.UserData.Em)
	event.UserData.Ph = hashAll(event.UserData.Ph)

	event.DataProcessingOptions = []string{"LDU"}
	event.DataProcessingOptionsCountry = 1
	event.DataProcessingOptionsState = 1000

	return c.sendBatch(ctx, []Event{event})
}

func (c *Client) sendBatch(ctx context.Context, events []Event) *EventResponse {
	payload := eventsRequest{
		Data:          events,
		AccessToken:   c.accessToken,
		TestEventCode: c.testEventCode,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		log.Printf("meta: marshal events: %v", err)
		return nil
	}

	url := fmt.Sprintf("%s/%s/events", c.baseURL, c.pixelID)

	for attempt := 1; attempt <= maxRetries+1; attempt++ {
		resp, err := c.post(ctx, url, jsonBody)
		if err == nil {
			return resp
		}

		if attempt > maxRetries {
			break
		}
		// Linear backoff: base x attempt number.
		select {
		case <-time.After(c.retryBase * time.Duration(attempt)):
		case <-ctx.Done():
			log.Printf("meta: context cancelled after attempt %d: %v", attempt, ctx.Err())
			return nil
		}
	}

	log.Printf("meta: dropping %d event(s) after %d attempts", len(events), maxRetries+1)
	return nil
}

func (c *Client) post(ctx context.Context, url string, jsonBody []byte) (*EventResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("meta: request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("meta: api rejected events (status %d): %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("meta api status %d", resp.StatusCode)
	}

	var response EventResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Printf("meta: decode response: %v", err)
		return nil, err
	}

	return &response, nil
}

// DeduplicationID derives a stable event id from the event's semantic
// content, so retries and the browser pixel's duplicate firing collapse on
// the API side while distinct events keep distinct ids.
func DeduplicationID(eventName string, eventTime int64, customData map[string]any) string {
	serialized, _ := json.Marshal(customData) // map keys marshal sorted
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", eventName, eventTime, serialized)))
	return hex.EncodeToString(sum[:])
}

// LeadEventID is the dedup id the intake endpoint shares with the browser
// pixel for the "Lead" event: both sides derive it from email, phone and the
// submission time.
func LeadEventID(email, phone string, t time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", normalize(email), normalize(phone), t.Unix())))
	return hex.EncodeToString(sum[:])
}

// HashPII one-way hashes a raw email or phone value for user_data match keys.
func HashPII(value string) string {
	sum := sha256.Sum256([]byte(normalize(value)))
	return hex.EncodeToString(sum[:])
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	hashed := make([]string, len(values))
	for i, v := range values {
		hashed[i] = HashPII(v)
	}
	return hashed
}
