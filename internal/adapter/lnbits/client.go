package lnbits

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"zap-feed-service/internal/core/domain"
)

// paymentsFetchLimit bounds one payments read; the reconciliation window is
// capped anyway so there is no point streaming the full history.
const paymentsFetchLimit = 100

// Client talks to the LNbits core API. Roster-level endpoints authenticate
// with a bearer token obtained from the operator credential; wallet-scoped
// endpoints use the per-wallet keys the caller passes in.
//
// The bearer token is cached for the life of the process under a mutex so
// concurrent fetches share one login. Safe for concurrent use.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        zerolog.Logger

	mu    sync.Mutex
	token string
}

// NewClient creates an LNbits client against baseURL.
func NewClient(baseURL, username, password string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListUsers fetches the full roster.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var envelope usersEnvelope
	if err := c.doBearer(ctx, http.MethodGet, "/users/api/v1/user", nil, &envelope); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users := make([]domain.User, 0, len(envelope.Data))
	for _, u := range envelope.Data {
		users = append(users, u.toDomain())
	}
	return users, nil
}

// ListUserWallets fetches one user's wallets, dropping deleted ones.
func (c *Client) ListUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	path := "/users/api/v1/user/" + userID + "/wallet"
	if err := c.doBearer(ctx, http.MethodGet, path, nil, &wallets); err != nil {
		return nil, fmt.Errorf("listing wallets for user %s: %w", userID, err)
	}

	active := wallets[:0]
	for _, w := range wallets {
		if w.Deleted {
			continue
		}
		active = append(active, w)
	}
	return active, nil
}

// ListPaymentsSince fetches recent rows for one wallet. The payments endpoint
// has no server-side time filter, so the cutoff is applied after decoding.
func (c *Client) ListPaymentsSince(ctx context.Context, walletInKey string, since int64) ([]domain.LedgerPayment, error) {
	var rows []domain.LedgerPayment
	path := fmt.Sprintf("/api/v1/payments?limit=%d", paymentsFetchLimit)
	if err := c.doKeyed(ctx, http.MethodGet, path, walletInKey, nil, &rows); err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	if since <= 0 {
		return rows, nil
	}

	filtered := rows[:0]
	for _, r := range rows {
		if int64(r.Time) >= since {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// WalletBalanceMsat returns the balance of the wallet walletInKey belongs to.
func (c *Client) WalletBalanceMsat(ctx context.Context, walletInKey string) (int64, error) {
	var balance walletBalanceResponse
	if err := c.doKeyed(ctx, http.MethodGet, "/api/v1/wallet", walletInKey, nil, &balance); err != nil {
		return 0, fmt.Errorf("reading wallet balance: %w", err)
	}
	return balance.Balance, nil
}

// CreateInvoice asks the receiving wallet for a bolt11 payment request.
func (c *Client) CreateInvoice(ctx context.Context, walletInKey string, amountSat int64, memo string) (string, error) {
	req := createInvoiceRequest{Out: false, Amount: amountSat, Memo: memo}
	var res createInvoiceResponse
	if err := c.doKeyed(ctx, http.MethodPost, "/api/v1/payments", walletInKey, req, &res); err != nil {
		return "", fmt.Errorf("creating invoice: %w", err)
	}
	if res.PaymentRequest == "" {
		return "", fmt.Errorf("creating invoice: empty payment request in response")
	}
	return res.PaymentRequest, nil
}

// PayInvoice settles a bolt11 payment request from the paying wallet.
func (c *Client) PayInvoice(ctx context.Context, walletAdminKey string, bolt11 string) (string, error) {
	req := payInvoiceRequest{Out: true, Bolt11: bolt11}
	var res payInvoiceResponse
	if err := c.doKeyed(ctx, http.MethodPost, "/api/v1/payments", walletAdminKey, req, &res); err != nil {
		return "", fmt.Errorf("paying invoice: %w", err)
	}
	return res.PaymentHash, nil
}

// InvalidateToken drops the cached bearer token.
func (c *Client) InvalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// accessToken returns the cached bearer token, logging in when necessary.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	var res authResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth", nil, authRequest{
		Username: c.username,
		Password: c.password,
	}, &res); err != nil {
		return "", fmt.Errorf("authenticating: %w", err)
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("authenticating: empty access token in response")
	}

	c.token = res.AccessToken
	c.log.Debug().Msg("lnbits access token refreshed")
	return c.token, nil
}

// doBearer performs a bearer-authenticated request, re-authenticating once
// when the cached token has gone stale.
func (c *Client) doBearer(ctx context.Context, method, path string, body, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	err = c.do(ctx, method, path, map[string]string{"Authorization": "Bearer " + token}, body, out)
	if isUnauthorized(err) {
		c.InvalidateToken()
		token, err = c.accessToken(ctx)
		if err != nil {
			return err
		}
		err = c.do(ctx, method, path, map[string]string{"Authorization": "Bearer " + token}, body, out)
	}
	return err
}

// doKeyed performs a wallet-key-authenticated request.
func (c *Client) doKeyed(ctx context.Context, method, path, apiKey string, body, out any) error {
	return c.do(ctx, method, path, map[string]string{"X-Api-Key": apiKey}, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// statusError builds an error from a non-2xx response, surfacing the API's
// detail message when one is present.
func (c *Client) statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr apiErrorResponse
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Detail != "" {
		return &StatusError{Status: resp.StatusCode, Detail: apiErr.Detail}
	}
	return &StatusError{Status: resp.StatusCode, Detail: resp.Status}
}

// StatusError is a non-2xx response from the LNbits API.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lnbits api: %d %s", e.Status, e.Detail)
}

func isUnauthorized(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Status == http.StatusUnauthorized
}
