package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Demmynile/hanniefoods/pkg/config"
	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/logger"
)

// StatusSuccess is the gateway's designated success value for both the
// widget callback and the transaction-verify endpoint.
const StatusSuccess = "success"

var (
	errSecretKeyRequired = errors.New("paystack secret key is required")
	errLoggerRequired    = errors.New("paystack logger is required")
)

const referenceAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Client wraps the gateway's REST API. The widget itself runs on the
// customer's device; the server only verifies references after the fact.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	secretKey   string
	merchantTag string
	logger      *logger.Logger
}

// Transaction is the verified state of a payment reference.
type Transaction struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// Succeeded reports whether the gateway settled the transaction.
func (t Transaction) Succeeded() bool {
	return strings.EqualFold(t.Status, StatusSuccess)
}

// NewClient validates the gateway credentials and builds the client.
func NewClient(ctx context.Context, cfg config.PaystackConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	secretKey := strings.TrimSpace(cfg.SecretKey)
	if secretKey == "" {
		return nil, errSecretKeyRequired
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: cfg.SessionTimeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:   secretKey,
		merchantTag: cfg.MerchantTag,
		logger:      logg,
	}

	logg.Info(ctx, "paystack client initialized")
	return c, nil
}

// NewWithEndpoint is used by tests to point the client at a local server.
func NewWithEndpoint(baseURL, secretKey, merchantTag string, logg *logger.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{},
		baseURL:     strings.TrimRight(baseURL, "/"),
		secretKey:   secretKey,
		merchantTag: merchantTag,
		logger:      logg,
	}
}

// NewReference mints a client reference for one checkout attempt so the
// backend can correlate the attempt before any order exists.
func (c *Client) NewReference() string {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	tag := c.merchantTag
	if tag == "" {
		tag = "HANNIESFOOD"
	}
	return fmt.Sprintf("%s_%d_%s", tag, time.Now().UnixMilli(), string(suffix))
}

// Probe checks that the gateway host is reachable. Any HTTP response
// counts as reachable; only transport failures and timeouts report the
// gateway as down.
func (c *Client) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build probe request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway unreachable")
	}
	resp.Body.Close()
	return nil
}

// VerifyTransaction confirms a payment reference against the gateway.
// A reference the gateway does not know is reported as not-found.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment reference is required")
	}

	endpoint := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, url.PathEscape(reference))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build verify request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", "verify_transaction", map[string]any{"error": err.Error()})
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment reference not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log(ctx, "error", "verify_transaction", map[string]any{"status": resp.StatusCode})
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment verification failed").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	var envelope struct {
		Status  bool        `json:"status"`
		Message string      `json:"message"`
		Data    Transaction `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode verify response")
	}
	if !envelope.Status {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment verification rejected").
			WithDetails(map[string]any{"message": envelope.Message})
	}

	c.log(ctx, "response", "verify_transaction", map[string]any{
		"reference": envelope.Data.Reference,
		"status":    envelope.Data.Status,
	})
	return &envelope.Data, nil
}

func (c *Client) log(ctx context.Context, stage, op string, fields map[string]any) {
	if c.logger == nil {
		return
	}
	merged := map[string]any{"stage": stage, "operation": op}
	for k, v := range fields {
		merged[k] = v
	}
	c.logger.Info(c.logger.WithFields(ctx, merged), "paystack."+op)
}
