package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

const (
	uriScheme = "halda://"

	sessionsPrefix = uriScheme + "sessions/"
	copySuffix     = "/copy"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "audiences",
		Name:        "audiences",
		Description: "Built-in and custom audiences available for queries",
		MIMEType:    "application/json",
	}, s.handleAudiencesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sessions",
		Name:        "sessions",
		Description: "Saved search sessions",
		MIMEType:    "application/json",
	}, s.handleSessionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: sessionsPrefix + "{sessionId}",
		Name:        "session",
		Description: "A session with its questions and merged results",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: sessionsPrefix + "{sessionId}" + copySuffix,
		Name:        "session-copy",
		Description: "Session results as \"label: url\" lines",
		MIMEType:    "text/plain",
	}, s.handleSessionResource)
}

func (s *Server) handleAudiencesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	audiences := domain.BuiltInAudiences()
	if s.ports.Audiences != nil {
		var err error
		audiences, err = s.ports.Audiences.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing audiences: %w", err)
		}
	}
	return jsonResource(req.Params.URI, audiences)
}

func (s *Server) handleSessionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type sessionInfo struct {
		ID         string `json:"id"`
		SchoolName string `json:"schoolName"`
		Results    int    `json:"results"`
		URI        string `json:"uri"`
	}

	infos := []sessionInfo{}
	if s.ports.Sessions != nil {
		sessions, err := s.ports.Sessions.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing sessions: %w", err)
		}
		for i := range sessions {
			infos = append(infos, sessionInfo{
				ID:         sessions[i].ID,
				SchoolName: sessions[i].SchoolName,
				Results:    len(sessions[i].Results),
				URI:        sessionsPrefix + sessions[i].ID,
			})
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleSessionResource serves both the JSON and copy views of a session.
func (s *Server) handleSessionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	if s.ports.Sessions == nil {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	id, copyView := extractSessionID(uri)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	sess, err := s.ports.Sessions.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}

	if !copyView {
		return jsonResource(uri, sess)
	}

	lines := make([]string, len(sess.Results))
	for i, r := range sess.Results {
		lines[i] = r.CopyLine()
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     strings.Join(lines, "\n"),
		}},
	}, nil
}

// extractSessionID parses halda://sessions/{id} and halda://sessions/{id}/copy.
func extractSessionID(uri string) (id string, copyView bool) {
	if !strings.HasPrefix(uri, sessionsPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(uri, sessionsPrefix)
	if strings.HasSuffix(rest, copySuffix) {
		rest = strings.TrimSuffix(rest, copySuffix)
		copyView = true
	}
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, copyView
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
