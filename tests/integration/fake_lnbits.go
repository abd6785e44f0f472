package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// fakeLNbits is a stateful stand-in for the upstream LNbits API. It speaks
// the real wire shapes, enforces the two auth schemes (operator bearer token
// for roster endpoints, per-wallet X-Api-Key for payment endpoints), and
// settles internal transfers the way the real node does: one debit row and
// one credit row sharing a checking id.
type fakeLNbits struct {
	server *httptest.Server

	mu       sync.Mutex
	users    []fakeUser
	wallets  []fakeWallet
	payments map[string][]fakePayment // wallet id -> rows
	invoices map[string]fakeInvoice   // bolt11 -> pending invoice
	logins   int
	seq      int
}

type fakeUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	ExternalID string `json:"external_id"`
	Extra      any    `json:"extra"`
}

type fakeWallet struct {
	ID          string `json:"id"`
	UserID      string `json:"user"`
	Name        string `json:"name"`
	InKey       string `json:"inkey"`
	AdminKey    string `json:"adminkey"`
	BalanceMsat int64  `json:"balance_msat"`
	Deleted     bool   `json:"deleted"`
}

type fakePayment struct {
	CheckingID string `json:"checking_id"`
	WalletID   string `json:"wallet_id"`
	Amount     int64  `json:"amount"`
	Memo       string `json:"memo"`
	Time       int64  `json:"time"`
}

type fakeInvoice struct {
	walletID  string
	amountSat int64
	memo      string
}

const (
	fakeOperatorUser = "operator"
	fakeOperatorPass = "secret"
	fakeBearerToken  = "fake-bearer-token"
)

func newFakeLNbits() *fakeLNbits {
	f := &fakeLNbits{
		payments: make(map[string][]fakePayment),
		invoices: make(map[string]fakeInvoice),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/v1/auth", f.handleAuth)
	mux.HandleFunc("GET /users/api/v1/user", f.handleListUsers)
	mux.HandleFunc("GET /users/api/v1/user/{id}/wallet", f.handleListWallets)
	mux.HandleFunc("GET /api/v1/wallet", f.handleBalance)
	mux.HandleFunc("GET /api/v1/payments", f.handleListPayments)
	mux.HandleFunc("POST /api/v1/payments", f.handlePostPayment)

	f.server = httptest.NewServer(mux)
	return f
}

func (f *fakeLNbits) close() { f.server.Close() }

// addUser registers a roster entry plus an allowance and a private wallet,
// returning the user id. Usernames are email-style so the service derives
// display names from them.
func (f *fakeLNbits) addUser(id, username, aadObjectID string, allowanceMsat int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users = append(f.users, fakeUser{
		ID:         id,
		Username:   username,
		Email:      username,
		ExternalID: aadObjectID,
	})
	f.wallets = append(f.wallets,
		fakeWallet{
			ID:          id + "-allow",
			UserID:      id,
			Name:        "Allowance",
			InKey:       id + "-allow-in",
			AdminKey:    id + "-allow-admin",
			BalanceMsat: allowanceMsat,
		},
		fakeWallet{
			ID:          id + "-priv",
			UserID:      id,
			Name:        "Private",
			InKey:       id + "-priv-in",
			AdminKey:    id + "-priv-admin",
		},
	)
}

// seedTransfer plants a settled internal transfer directly into the ledger,
// bypassing the invoice flow.
func (f *fakeLNbits) seedTransfer(fromWalletID, toWalletID string, amountMsat int64, memo string, at int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settleLocked(fromWalletID, toWalletID, amountMsat, memo, at)
}

func (f *fakeLNbits) settleLocked(fromWalletID, toWalletID string, amountMsat int64, memo string, at int64) string {
	f.seq++
	hash := fmt.Sprintf("hash-%d", f.seq)
	f.payments[fromWalletID] = append(f.payments[fromWalletID], fakePayment{
		CheckingID: "internal_" + hash,
		WalletID:   fromWalletID,
		Amount:     -amountMsat,
		Memo:       memo,
		Time:       at,
	})
	f.payments[toWalletID] = append(f.payments[toWalletID], fakePayment{
		CheckingID: hash,
		WalletID:   toWalletID,
		Amount:     amountMsat,
		Memo:       memo,
		Time:       at,
	})
	for i := range f.wallets {
		if f.wallets[i].ID == fromWalletID {
			f.wallets[i].BalanceMsat -= amountMsat
		}
		if f.wallets[i].ID == toWalletID {
			f.wallets[i].BalanceMsat += amountMsat
		}
	}
	return hash
}

func (f *fakeLNbits) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}

func (f *fakeLNbits) walletByKey(key string) *fakeWallet {
	for i := range f.wallets {
		if f.wallets[i].InKey == key || f.wallets[i].AdminKey == key {
			return &f.wallets[i]
		}
	}
	return nil
}

// --- Handlers ---

func (f *fakeLNbits) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.Username != fakeOperatorUser || req.Password != fakeOperatorPass {
		apiError(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	f.mu.Lock()
	f.logins++
	f.mu.Unlock()
	writeJSON(w, map[string]string{"access_token": fakeBearerToken})
}

func (f *fakeLNbits) requireBearer(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+fakeBearerToken {
		apiError(w, http.StatusUnauthorized, "Invalid bearer token.")
		return false
	}
	return true
}

func (f *fakeLNbits) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if !f.requireBearer(w, r) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, map[string]any{"data": f.users})
}

func (f *fakeLNbits) handleListWallets(w http.ResponseWriter, r *http.Request) {
	if !f.requireBearer(w, r) {
		return
	}
	userID := r.PathValue("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	wallets := make([]fakeWallet, 0)
	for _, wl := range f.wallets {
		if wl.UserID == userID {
			wallets = append(wallets, wl)
		}
	}
	writeJSON(w, wallets)
}

func (f *fakeLNbits) handleBalance(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wl := f.walletByKey(r.Header.Get("X-Api-Key"))
	if wl == nil {
		apiError(w, http.StatusUnauthorized, "Invalid key.")
		return
	}
	writeJSON(w, map[string]int64{"balance": wl.BalanceMsat})
}

func (f *fakeLNbits) handleListPayments(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wl := f.walletByKey(r.Header.Get("X-Api-Key"))
	if wl == nil {
		apiError(w, http.StatusUnauthorized, "Invalid key.")
		return
	}
	rows := f.payments[wl.ID]
	if rows == nil {
		rows = []fakePayment{}
	}
	writeJSON(w, rows)
}

func (f *fakeLNbits) handlePostPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Out    bool   `json:"out"`
		Amount int64  `json:"amount"`
		Memo   string `json:"memo"`
		Bolt11 string `json:"bolt11"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, "malformed body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	wl := f.walletByKey(r.Header.Get("X-Api-Key"))
	if wl == nil {
		apiError(w, http.StatusUnauthorized, "Invalid key.")
		return
	}

	if !req.Out {
		// Invoice creation against the receiving wallet's invoice key.
		f.seq++
		bolt11 := fmt.Sprintf("lnfake%d", f.seq)
		f.invoices[bolt11] = fakeInvoice{walletID: wl.ID, amountSat: req.Amount, memo: req.Memo}
		writeJSON(w, map[string]string{
			"payment_request": bolt11,
			"payment_hash":    fmt.Sprintf("invhash-%d", f.seq),
		})
		return
	}

	// Settlement against the paying wallet's admin key.
	inv, ok := f.invoices[req.Bolt11]
	if !ok {
		apiError(w, http.StatusBadRequest, "Unknown payment request.")
		return
	}
	amountMsat := inv.amountSat * 1000
	if wl.BalanceMsat < amountMsat {
		apiError(w, http.StatusForbidden, "Insufficient balance.")
		return
	}
	delete(f.invoices, req.Bolt11)
	hash := f.settleLocked(wl.ID, inv.walletID, amountMsat, inv.memo, time.Now().Unix())
	writeJSON(w, map[string]string{"payment_hash": hash})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func apiError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
