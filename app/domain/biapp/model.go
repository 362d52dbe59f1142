package biapp

import (
	"encoding/json"
	"time"

	"github.com/jcpaschoal/biadmin/foundation/powerbi"
)

// Workspace represents a BI workspace.
type Workspace struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsReadOnly bool   `json:"isReadOnly"`
	Type       string `json:"type,omitempty"`
}

// Workspaces is a list of workspaces.
type Workspaces []Workspace

// Encode implements the web.Encoder interface.
func (app Workspaces) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppWorkspaces(wss []powerbi.Workspace) Workspaces {
	app := make(Workspaces, len(wss))
	for i, ws := range wss {
		app[i] = Workspace{
			ID:         ws.ID,
			Name:       ws.Name,
			IsReadOnly: ws.IsReadOnly,
			Type:       ws.Type,
		}
	}
	return app
}

// Report represents a report of a workspace.
type Report struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	EmbedURL    string `json:"embedUrl"`
	WebURL      string `json:"webUrl,omitempty"`
	DatasetID   string `json:"datasetId,omitempty"`
	WorkspaceID string `json:"workspaceId"`
}

// Encode implements the web.Encoder interface.
func (app Report) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppReport(r powerbi.Report) Report {
	return Report{
		ID:          r.ID,
		Name:        r.Name,
		EmbedURL:    r.EmbedURL,
		WebURL:      r.WebURL,
		DatasetID:   r.DatasetID,
		WorkspaceID: r.WorkspaceID,
	}
}

// Reports is a list of reports.
type Reports []Report

// Encode implements the web.Encoder interface.
func (app Reports) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppReports(rs []powerbi.Report) Reports {
	app := make(Reports, len(rs))
	for i, r := range rs {
		app[i] = toAppReport(r)
	}
	return app
}

// EmbedToken is what a browser needs to render a report.
type EmbedToken struct {
	EmbedID     string `json:"embedId"`
	EmbedURL    string `json:"embedUrl"`
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	Expiration  string `json:"expiration"`
}

// Encode implements the web.Encoder interface.
func (app EmbedToken) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppEmbedToken(tkn powerbi.EmbedToken) EmbedToken {
	return EmbedToken{
		EmbedID:     tkn.EmbedID,
		EmbedURL:    tkn.EmbedURL,
		AccessToken: tkn.AccessToken,
		TokenType:   tkn.TokenType,
		Expiration:  tkn.Expiration.Format(time.RFC3339),
	}
}
