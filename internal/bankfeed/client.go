// Package bankfeed links an external bank-data provider to the store: a
// thin REST client for the provider boundary plus an importer that maps
// provider payloads into accounts and transactions.
package bankfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// Session is the handle the provider returns when a link session is
// created. The client secret drives the provider's own hosted UI.
type Session struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

// Balance is the provider's point-in-time balance report.
type Balance struct {
	Current decimal.Decimal `json:"current"`
}

// FeedAccount is one institution account as the provider reports it.
type FeedAccount struct {
	ID              string  `json:"id"`
	InstitutionName string  `json:"institution_name"`
	Last4           string  `json:"last4"`
	Balance         Balance `json:"balance"`
	Currency        string  `json:"currency"`
}

// FeedTransaction is one provider transaction. Amount is a signed
// minor-unit integer (negative = expense-like); TransactedAt is epoch
// seconds.
type FeedTransaction struct {
	ID           string `json:"id"`
	Description  string `json:"description"`
	Amount       int64  `json:"amount"`
	TransactedAt int64  `json:"transacted_at"`
}

// Client talks to the provider's REST surface.
type Client struct {
	baseURL        string
	publishableKey string
	httpClient     *http.Client
}

func NewClient(baseURL, publishableKey string) *Client {
	return &Client{
		baseURL:        baseURL,
		publishableKey: publishableKey,
		httpClient:     http.DefaultClient,
	}
}

// CreateSession opens a new financial-connections session.
func (c *Client) CreateSession(ctx context.Context) (Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/financial-connections-sheet", &s); err != nil {
		return Session{}, fmt.Errorf("create link session: %w", err)
	}
	return s, nil
}

// ListAccounts lists the accounts collected by a completed session.
func (c *Client) ListAccounts(ctx context.Context, sessionID string) ([]FeedAccount, error) {
	q := url.Values{"session_id": {sessionID}}
	var accounts []FeedAccount
	if err := c.do(ctx, http.MethodGet, "/accounts?"+q.Encode(), &accounts); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// ListTransactions lists the transactions of one provider account.
func (c *Client) ListTransactions(ctx context.Context, accountID string) ([]FeedTransaction, error) {
	q := url.Values{"account_id": {accountID}}
	var txns []FeedTransaction
	if err := c.do(ctx, http.MethodGet, "/transactions?"+q.Encode(), &txns); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.publishableKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.publishableKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
