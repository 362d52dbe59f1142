package powerbi

import (
	"fmt"
	"time"
)

// Workspace is a BI workspace, also called a group.
type Workspace struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	IsReadOnly            bool   `json:"isReadOnly"`
	IsOnDedicatedCapacity bool   `json:"isOnDedicatedCapacity"`
	Type                  string `json:"type"`
}

// Report is a report published in a workspace.
type Report struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	EmbedURL    string `json:"embedUrl"`
	WebURL      string `json:"webUrl"`
	DatasetID   string `json:"datasetId"`
	WorkspaceID string `json:"workspaceId"`
}

// EmbedToken is what a browser needs to embed a report.
type EmbedToken struct {
	EmbedURL    string    `json:"embedUrl"`
	AccessToken string    `json:"accessToken"`
	EmbedID     string    `json:"embedId"`
	Expiration  time.Time `json:"expiration"`
	TokenType   string    `json:"tokenType"`
}

type listResponse[T any] struct {
	Value []T `json:"value"`
}

type generateTokenRequest struct {
	AccessLevel string `json:"accessLevel"`
	AllowSaveAs bool   `json:"allowSaveAs"`
}

type generateTokenResponse struct {
	Token      string    `json:"token"`
	TokenID    string    `json:"tokenId"`
	Expiration time.Time `json:"expiration"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================

// AccessLevel is the permission carried by an embed token.
type AccessLevel struct {
	value string
}

// The set of access levels a token can carry.
var (
	View = AccessLevel{"View"}
	Edit = AccessLevel{"Edit"}
)

var accessLevels = map[string]AccessLevel{
	View.value: View,
	Edit.value: Edit,
}

// ParseAccessLevel parses the string value. An empty value is View.
func ParseAccessLevel(value string) (AccessLevel, error) {
	if value == "" {
		return View, nil
	}

	al, exists := accessLevels[value]
	if !exists {
		return AccessLevel{}, fmt.Errorf("invalid access level %q", value)
	}

	return al, nil
}

// String returns the name of the access level.
func (al AccessLevel) String() string {
	return al.value
}
