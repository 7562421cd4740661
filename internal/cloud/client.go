package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	syncerrors "github.com/Perth00/wanderplan-sync/internal/errors"
)

//go:generate mockgen -source=client.go -destination=mock_docstore.go -package=cloud

// DocStore is the document-oriented cloud store behind sync. The real
// backend is external; this interface is what the synchronizers program
// against and what tests mock.
type DocStore interface {
	// Ping is the connectivity probe run before a push. A failure here
	// aborts the whole sync.
	Ping(ctx context.Context) error

	CreateTrip(ctx context.Context, email string, doc TripDoc) (string, error)
	UpdateTrip(ctx context.Context, email, tripID string, doc TripDoc) error
	ListTrips(ctx context.Context, email string) ([]Document, error)

	CreateActivity(ctx context.Context, email, tripID string, doc ActivityDoc) (string, error)
	// UpdateActivity issues a partial-field update against an existing
	// activity document.
	UpdateActivity(ctx context.Context, email, tripID, activityID string, fields map[string]any) error
	// FindActivity looks up an activity by its natural key (title,
	// dateTime in epoch ms) within one trip. Returns ErrDocNotFound
	// when no document matches.
	FindActivity(ctx context.Context, email, tripID, title string, dateTime int64) (string, error)
	ListActivities(ctx context.Context, email, tripID string) ([]Document, error)

	CreateExpense(ctx context.Context, email, tripID string, doc ExpenseDoc) (string, error)
	UpdateExpense(ctx context.Context, email, tripID, expenseID string, doc ExpenseDoc) error
	FindExpense(ctx context.Context, email, tripID, title string, timestamp int64) (string, error)
	ListExpenses(ctx context.Context, email, tripID string) ([]Document, error)

	PutSummary(ctx context.Context, email string, doc SummaryDoc) error
}

// Client talks to the cloud document API over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a document store client. If httpClient is nil,
// http.DefaultClient is used.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

var _ DocStore = (*Client)(nil)

// do sends a JSON request and returns the raw response body.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var payload io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request body: %w", err)
		}

		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, syncerrors.Wrapf(syncerrors.KindNetwork, "sending request to %s: %v", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, syncerrors.Wrapf(syncerrors.KindNetwork, "reading response from %s: %v", endpoint, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, syncerrors.ErrDocNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, syncerrors.Wrapf(syncerrors.KindAuth, "API %s returned status %d", endpoint, resp.StatusCode)
	case resp.StatusCode >= 300:
		return nil, syncerrors.Wrapf(syncerrors.KindStorage, "API %s returned status %d: %s", endpoint, resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// Ping probes the API health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodGet, "/health", nil); err != nil {
		return fmt.Errorf("%w: %w", syncerrors.ErrCloudUnreachable, err)
	}

	return nil
}

func tripsPath(email string) string {
	return "/accounts/" + url.PathEscape(email) + "/trips"
}

// CreateTrip creates a trip document and returns its assigned key.
func (c *Client) CreateTrip(ctx context.Context, email string, doc TripDoc) (string, error) {
	body, err := c.do(ctx, http.MethodPost, tripsPath(email), doc)
	if err != nil {
		return "", fmt.Errorf("creating trip document: %w", err)
	}

	return docID(body)
}

// UpdateTrip rewrites an existing trip document in place.
func (c *Client) UpdateTrip(ctx context.Context, email, tripID string, doc TripDoc) error {
	endpoint := tripsPath(email) + "/" + url.PathEscape(tripID)
	if _, err := c.do(ctx, http.MethodPatch, endpoint, doc); err != nil {
		return fmt.Errorf("updating trip document %s: %w", tripID, err)
	}

	return nil
}

// ListTrips returns every trip document for the account.
func (c *Client) ListTrips(ctx context.Context, email string) ([]Document, error) {
	body, err := c.do(ctx, http.MethodGet, tripsPath(email), nil)
	if err != nil {
		return nil, fmt.Errorf("listing trip documents: %w", err)
	}

	return parseDocuments(body), nil
}

// CreateActivity creates an activity document under a trip.
func (c *Client) CreateActivity(ctx context.Context, email, tripID string, doc ActivityDoc) (string, error) {
	endpoint := tripsPath(email) + "/" + url.PathEscape(tripID) + "/activities"

	body, err := c.do(ctx, http.MethodPost, endpoint, doc)
	if err != nil {
		return "", fmt.Errorf("creating activity document: %w", err)
	}

	return docID(body)
}

// UpdateActivity issues a partial-field update to an activity document.
func (c *Client) UpdateActivity(ctx context.Context, email, tripID, activityID string, fields map[string]any) error {
	endpoint := tripsPath(email) + "/" + url.PathEscape(tripID) + "/activities/" + url.PathEscape(activityID)
	if _, err := c.do(ctx, http.MethodPatch, endpoint, fields); err != nil {
		return fmt.Errorf("updating activity document %s: %w", activityID, err)
	}

	return nil
}

// FindActivity queries a trip's activities for an exact (title,
// dateTime) match and returns the matching document key.
func (c *Client) FindActivity(ctx context.Context, email, tripID, title string, dateTime int64) (string, error) {
	endpoint := tripsPath(email) + "/" + url.PathEscape(tripID) + "/activities?" + url.Values{
		"title":    []string{title},
		"dateTime": []string{strconv.FormatInt(dateTime, 10)},
	}.Encode()

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("querying activity by natural key: %w", err)
	}

	docs := parseDocuments(body)
	if len(docs) == 0 {
		return "", syncerrors.ErrDocNotFound
	}

	return docs[0].ID, nil
}

// ListActivities returns every activity document under a trip.
func (c *Client) ListActivities(ctx context.Context, email, tripID string) ([]Document, error) {
	endpoint := tripsPath(email) + "/" + url.PathEscape(tripID) + "/activities"

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("listing activity documents: %w", err)
	}

	return parseDocuments(body), nil
}

// CreateExpense creates an expense document under a trip.
func (c *Client) CreateExpense(ctx context.Context, email, tripID string, doc ExpenseDoc) (string, error) {
	endpoint := tripsPath(email) + "/" + url.PathEscape(tripID) + "/expenses"

	body, err := c.do(ctx, http.MethodPost, endpoint, doc)
	if err != nil {
		return "", fmt.Errorf("creating expense document: %w", err)
	}

	return docID(body)
}

// UpdateExpense rewrites an existing expense document.
func (c *Client) UpdateExpense(ctx context.Context, email, tripID, expenseID string, doc ExpenseDoc) error {
	endpoint := tripsPath(email) + "/" + url.PathEscape(tripID) + "/expenses/" + url.PathEscape(expenseID)
	if _, err := c.do(ctx, http.MethodPatch, endpoint, doc); err != nil {
		return fmt.Errorf("updating expense document %s: %w", expenseID, err)
	}

	return nil
}

// FindExpense queries a trip's expenses for an exact (title, timestamp)
// match and returns the matching document key.
func (c *Client) FindExpense(ctx context.Context, email, tripID, title string, timestamp int64) (string, error) {
	endpoint := tripsPath(email) + "/" + url.PathEscape(tripID) + "/expenses?" + url.Values{
		"title":     []string{title},
		"timestamp": []string{strconv.FormatInt(timestamp, 10)},
	}.Encode()

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("querying expense by natural key: %w", err)
	}

	docs := parseDocuments(body)
	if len(docs) == 0 {
		return "", syncerrors.ErrDocNotFound
	}

	return docs[0].ID, nil
}

// ListExpenses returns every expense document under a trip.
func (c *Client) ListExpenses(ctx context.Context, email, tripID string) ([]Document, error) {
	endpoint := tripsPath(email) + "/" + url.PathEscape(tripID) + "/expenses"

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("listing expense documents: %w", err)
	}

	return parseDocuments(body), nil
}

// PutSummary writes the account-wide sync summary document.
func (c *Client) PutSummary(ctx context.Context, email string, doc SummaryDoc) error {
	endpoint := "/accounts/" + url.PathEscape(email) + "/summary"
	if _, err := c.do(ctx, http.MethodPut, endpoint, doc); err != nil {
		return fmt.Errorf("writing sync summary: %w", err)
	}

	return nil
}

// docID extracts the assigned document key from a create response.
func docID(body []byte) (string, error) {
	id := gjson.GetBytes(body, "id").String()
	if id == "" {
		return "", syncerrors.Wrapf(syncerrors.KindStorage, "create response missing document id: %s", string(body))
	}

	return id, nil
}

// parseDocuments decodes a {"documents":[{"id":...,"fields":{...}}]}
// listing. Entries without an id are dropped; field payloads stay raw
// for the tolerant per-document parsers.
func parseDocuments(body []byte) []Document {
	var docs []Document

	gjson.GetBytes(body, "documents").ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id").String()
		if id == "" {
			return true
		}

		docs = append(docs, Document{ID: id, Raw: []byte(item.Get("fields").Raw)})

		return true
	})

	return docs
}
