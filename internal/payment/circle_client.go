package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	transfersPath       = "/v1/transfers"
	circleCurrency      = "USD"
	circleChain         = "ARC"
	errorSnippetBytes   = 512
	defaultHTTPTimeout  = 10 * time.Second
	defaultMaxElapsed   = 8 * time.Second
	defaultInitialRetry = 250 * time.Millisecond
)

// TransferRequest is one USDC transfer to the jukebox wallet
type TransferRequest struct {
	Amount    string
	SongTitle string
	Artist    string
}

// TransferResult is what Circle reports for an accepted transfer
type TransferResult struct {
	ID              string
	TransactionHash string
	Status          string
}

// CircleConfig configures the Circle transfers client
type CircleConfig struct {
	APIKey             string
	AppID              string
	BaseURL            string
	DestinationAddress string
	// MaxElapsed bounds all retries of one transfer
	MaxElapsed time.Duration
	HTTPClient *http.Client
}

// CircleClient posts transfers to the Circle API with retries
type CircleClient struct {
	cfg CircleConfig
	hc  *http.Client
}

// NewCircleClient creates a Circle client
func NewCircleClient(cfg CircleConfig) *CircleClient {
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = defaultMaxElapsed
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &CircleClient{cfg: cfg, hc: hc}
}

type circleTransferBody struct {
	IdempotencyKey string            `json:"idempotencyKey"`
	Amount         circleMoney       `json:"amount"`
	Destination    circleDestination `json:"destination"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type circleMoney struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type circleDestination struct {
	Type    string `json:"type"`
	Address string `json:"address"`
	Chain   string `json:"chain"`
}

type circleTransferResponse struct {
	Data struct {
		ID              string `json:"id"`
		Status          string `json:"status"`
		TransactionHash string `json:"transactionHash"`
	} `json:"data"`
}

// Transfer submits one transfer. 429 and 5xx responses are retried with
// exponential backoff; other 4xx responses fail immediately. Every failure
// is returned as *PaymentTransportError.
func (c *CircleClient) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	body, err := json.Marshal(circleTransferBody{
		// One key per logical transfer so retries cannot double-charge
		IdempotencyKey: uuid.NewString(),
		Amount:         circleMoney{Amount: req.Amount, Currency: circleCurrency},
		Destination: circleDestination{
			Type:    "blockchain",
			Address: c.cfg.DestinationAddress,
			Chain:   circleChain,
		},
		Metadata: map[string]string{
			"songTitle": req.SongTitle,
			"artist":    req.Artist,
			"appId":     c.cfg.AppID,
		},
	})
	if err != nil {
		return nil, &PaymentTransportError{Err: fmt.Errorf("encode transfer: %w", err)}
	}

	endpoint := c.cfg.BaseURL + transfersPath
	var out circleTransferResponse
	var lastStatus int

	op := func() error {
		// Recreate request each attempt to avoid reusing consumed bodies
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		r.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		r.Header.Set("Content-Type", "application/json")

		resp, err := c.hc.Do(r)
		if err != nil {
			lastStatus = 0
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		lastStatus = resp.StatusCode

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			log.Printf("⏳ CIRCLE RATE LIMITED: retrying")
			return fmt.Errorf("rate limited: 429")
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			snippet := readSnippet(resp.Body)
			log.Printf("❌ CIRCLE REJECTED TRANSFER: status=%d body=%s", resp.StatusCode, snippet)
			return backoff.Permanent(fmt.Errorf("transfer status %d: %s", resp.StatusCode, snippet))
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			snippet := readSnippet(resp.Body)
			log.Printf("⚠️  CIRCLE SERVER ERROR: status=%d body=%s", resp.StatusCode, snippet)
			return fmt.Errorf("transfer status %d: %s", resp.StatusCode, snippet)
		}

		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode transfer response: %w", err))
		}
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = defaultInitialRetry
	expo.MaxElapsedTime = c.cfg.MaxElapsed

	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Err
		}
		return nil, &PaymentTransportError{Status: lastStatus, Err: err}
	}

	if out.Data.ID == "" && out.Data.TransactionHash == "" {
		return nil, &PaymentTransportError{Status: lastStatus, Err: errors.New("transfer response carries no id")}
	}
	return &TransferResult{
		ID:              out.Data.ID,
		TransactionHash: out.Data.TransactionHash,
		Status:          out.Data.Status,
	}, nil
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, errorSnippetBytes))
	return strings.TrimSpace(string(b))
}
