package domain

// UserType distinguishes human teammates from automation accounts in the
// ledger roster.
type UserType string

const (
	UserTypeTeammate UserType = "teammate"
	UserTypeCopilot  UserType = "copilot"
)

// User is one account in the upstream ledger roster.
type User struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	AADObjectID string   `json:"aad_object_id,omitempty"`
	Type        UserType `json:"type"`
}
