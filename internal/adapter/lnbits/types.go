package lnbits

import (
	"strings"

	"zap-feed-service/internal/core/domain"
)

// Wire types for the LNbits core API. Wallet rows decode straight into
// domain.Wallet; the user shape needs mapping because the roster endpoint
// spreads identity across the top level and an extra blob.

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
}

type apiUserExtra struct {
	AADObjectID string `json:"aadObjectId"`
	Email       string `json:"email"`
	Type        string `json:"type"`
}

type apiUser struct {
	ID         string        `json:"id"`
	Username   string        `json:"username"`
	Email      string        `json:"email"`
	ExternalID string        `json:"external_id"`
	Extra      *apiUserExtra `json:"extra"`
}

// usersEnvelope wraps the roster list in a data field.
type usersEnvelope struct {
	Data []apiUser `json:"data"`
}

type walletBalanceResponse struct {
	Balance int64 `json:"balance"` // millisatoshis
}

type createInvoiceRequest struct {
	Out    bool   `json:"out"`
	Amount int64  `json:"amount"` // satoshis
	Memo   string `json:"memo"`
}

type createInvoiceResponse struct {
	PaymentRequest string `json:"payment_request"`
	PaymentHash    string `json:"payment_hash"`
}

type payInvoiceRequest struct {
	Out    bool   `json:"out"`
	Bolt11 string `json:"bolt11"`
}

type payInvoiceResponse struct {
	PaymentHash string `json:"payment_hash"`
}

type apiErrorResponse struct {
	Detail string `json:"detail"`
}

// toDomain maps a roster row, deriving a friendly display name and pulling
// the directory object id from external_id with the extra blob as fallback.
func (u apiUser) toDomain() domain.User {
	aad := u.ExternalID
	email := u.Email
	userType := domain.UserTypeTeammate
	if u.Extra != nil {
		if aad == "" {
			aad = u.Extra.AADObjectID
		}
		if email == "" {
			email = u.Extra.Email
		}
		if u.Extra.Type != "" {
			userType = domain.UserType(strings.ToLower(u.Extra.Type))
		}
	}
	if email == "" {
		email = u.Username
	}

	return domain.User{
		ID:          u.ID,
		DisplayName: displayName(u.Username, u.ID),
		Email:       email,
		AADObjectID: aad,
		Type:        userType,
	}
}

// displayName derives a readable name from a username. Email-style usernames
// keep only the local part, with dots as word breaks and each word
// title-cased ("jane.doe@example.com" becomes "Jane Doe").
func displayName(username, fallback string) string {
	name := username
	if name == "" {
		return fallback
	}
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
		words := strings.Split(strings.ReplaceAll(name, ".", " "), " ")
		for i, w := range words {
			if w == "" {
				continue
			}
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
		name = strings.Join(words, " ")
	}
	return name
}
