package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Demmynile/hanniefoods/pkg/config"
	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/logger"
)

var (
	errProjectIDRequired = errors.New("sanity project id is required")
	errTokenRequired     = errors.New("sanity api token is required")
	errLoggerRequired    = errors.New("sanity logger is required")
)

// Client talks to the headless CMS over its HTTP query and mutation
// endpoints. The service has no storage of its own: every product,
// order, and review document lives behind this client.
type Client struct {
	httpClient *http.Client
	queryURL   string
	mutateURL  string
	token      string
	logger     *logger.Logger
}

// New validates the CMS credentials and builds the client.
func New(ctx context.Context, cfg config.SanityConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, errProjectIDRequired
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errTokenRequired
	}

	base := fmt.Sprintf("https://%s.api.sanity.io/v%s/data", projectID, cfg.APIVersion)

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		queryURL:   fmt.Sprintf("%s/query/%s", base, cfg.Dataset),
		mutateURL:  fmt.Sprintf("%s/mutate/%s", base, cfg.Dataset),
		token:      token,
		logger:     logg,
	}

	logg.Info(ctx, "sanity client initialized")
	return c, nil
}

// NewWithEndpoints is used by tests to point the client at a local server.
func NewWithEndpoints(queryURL, mutateURL, token string, logg *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		queryURL:   queryURL,
		mutateURL:  mutateURL,
		token:      token,
		logger:     logg,
	}
}

// Fetch runs a GROQ query and decodes the result payload into dest.
func (c *Client) Fetch(ctx context.Context, query string, params map[string]any, dest any) error {
	body := map[string]any{"query": query}
	if len(params) > 0 {
		queryParams := make(map[string]any, len(params))
		for key, value := range params {
			queryParams["$"+key] = value
		}
		body["params"] = queryParams
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.do(ctx, c.queryURL, body, &envelope); err != nil {
		return err
	}
	if dest == nil || len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode query result")
	}
	return nil
}

// Ping runs a trivial query to verify the dataset is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.Fetch(ctx, "count(*[_id == $id])", map[string]any{"id": "ping"}, nil)
}

// Create persists a new document and returns its generated id.
func (c *Client) Create(ctx context.Context, doc map[string]any) (string, error) {
	body := map[string]any{
		"mutations": []map[string]any{{"create": doc}},
	}

	var envelope mutationResult
	if err := c.do(ctx, c.mutateURL, body, &envelope); err != nil {
		return "", err
	}
	if len(envelope.Results) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "mutation returned no results")
	}
	return envelope.Results[0].ID, nil
}

// Delete removes the document with the given id. Deleting an absent
// document is not an error.
func (c *Client) Delete(ctx context.Context, id string) error {
	body := map[string]any{
		"mutations": []map[string]any{{"delete": map[string]any{"id": id}}},
	}
	return c.do(ctx, c.mutateURL, body, &mutationResult{})
}

// Patch starts a field-set mutation against the document with the given id.
func (c *Client) Patch(id string) *Patch {
	return &Patch{client: c, id: id, fields: map[string]any{}}
}

// Patch accumulates set operations and commits them in one mutation.
type Patch struct {
	client *Client
	id     string
	fields map[string]any
}

// Set stages field values to write on commit.
func (p *Patch) Set(fields map[string]any) *Patch {
	for key, value := range fields {
		p.fields[key] = value
	}
	return p
}

// Commit applies the staged fields to the document.
func (p *Patch) Commit(ctx context.Context) error {
	if len(p.fields) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "patch has no fields to set")
	}
	body := map[string]any{
		"mutations": []map[string]any{{
			"patch": map[string]any{
				"id":  p.id,
				"set": p.fields,
			},
		}},
	}
	return p.client.do(ctx, p.client.mutateURL, body, &mutationResult{})
}

type mutationResult struct {
	Results []struct {
		ID string `json:"id"`
	} `json:"results"`
}

func (c *Client) do(ctx context.Context, url string, body, dest any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", url, map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "document store unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := readErrorBody(resp.Body)
		c.log(ctx, "error", url, map[string]any{"status": resp.StatusCode, "detail": detail})
		return pkgerrors.New(pkgerrors.CodeDependency, "document store request failed").
			WithDetails(map[string]any{"status": resp.StatusCode, "detail": detail})
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	return nil
}

func readErrorBody(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 2048))
	if err != nil {
		return ""
	}

	var parsed struct {
		Message string `json:"message"`
		Error   struct {
			Description string `json:"description"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error.Description != "" {
			return parsed.Error.Description
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) log(ctx context.Context, stage, url string, fields map[string]any) {
	if c.logger == nil {
		return
	}
	merged := map[string]any{"stage": stage, "url": url}
	for k, v := range fields {
		merged[k] = v
	}
	c.logger.Warn(c.logger.WithFields(ctx, merged), "sanity."+stage)
}
