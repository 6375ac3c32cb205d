// Package mcpserver exposes the release notes parser and store as Model
// Context Protocol tools over stdio.
package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/SavaKodi/DatexReleaseNotes/internal/render"
	"github.com/SavaKodi/DatexReleaseNotes/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "relnotes"

// Server holds what the tool handlers need. The store is optional; the
// store-backed tools are only registered when it is set.
type Server struct {
	store *store.Store
}

// New creates the tool set. st may be nil.
func New(st *store.Store) *Server {
	return &Server{store: st}
}

// MCPServer builds the MCP server with all tools registered.
func (s *Server) MCPServer(version string) *server.MCPServer {
	srv := server.NewMCPServer(serverName, version)

	srv.AddTool(mcp.NewTool("parse_release_notes",
		mcp.WithDescription("Parse pasted release notes (text or JSON) into structured releases"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Release notes text containing one or more releases"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: json (default) or markdown"),
		),
	), s.handleParse)

	if s.store != nil {
		srv.AddTool(mcp.NewTool("list_releases",
			mcp.WithDescription("List stored releases, newest first"),
			mcp.WithString("component", mcp.Description("Only items of this component")),
			mcp.WithString("category", mcp.Description("Only items of this category")),
			mcp.WithString("text", mcp.Description("Search terms, all must match")),
		), s.handleList)

		srv.AddTool(mcp.NewTool("get_release",
			mcp.WithDescription("Show one stored release as Markdown"),
			mcp.WithString("version",
				mcp.Required(),
				mcp.Description("Release version, e.g. 25.04.11"),
			),
		), s.handleGet)
	}
	return srv
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio(version string) error {
	return server.ServeStdio(s.MCPServer(version))
}

func (s *Server) handleParse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := request.Params.Arguments["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text must be a string"), nil
	}
	format, _ := request.Params.Arguments["format"].(string)

	report := releasenotes.ParseMultipleWithDiagnostics(text)
	if len(report.Releases) == 0 {
		return mcp.NewToolResultError(noReleasesMessage(report)), nil
	}

	var buf bytes.Buffer
	switch format {
	case "", "json":
		if err := render.JSON(&buf, report.Releases); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	case "markdown":
		if err := render.Markdown(&buf, render.FromParsed(report.Releases)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: expected json or markdown", format)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func noReleasesMessage(report *releasenotes.Report) string {
	dropped := len(report.Dropped()) + report.JSONDropped
	if dropped == 0 {
		return "no releases detected"
	}
	return fmt.Sprintf("no releases detected (%d dropped: unparseable or before %s)", dropped, releasenotes.CutoffDate)
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := store.Filter{}
	filter.Component, _ = request.Params.Arguments["component"].(string)
	filter.Category, _ = request.Params.Arguments["category"].(string)
	filter.Text, _ = request.Params.Arguments["text"].(string)

	views, err := s.store.List(filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	for _, rel := range render.FromStore(views) {
		fmt.Fprintln(&buf, render.Summary(rel))
	}
	if buf.Len() == 0 {
		return mcp.NewToolResultText("no releases stored"), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	version, ok := request.Params.Arguments["version"].(string)
	if !ok || version == "" {
		return mcp.NewToolResultError("version must be a non-empty string"), nil
	}

	view, err := s.store.GetVersion(version)
	if err != nil {
		var nf *store.VersionNotFoundError
		if errors.As(err, &nf) {
			return mcp.NewToolResultError(nf.Error()), nil
		}
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.Markdown(&buf, render.FromStore([]store.ReleaseView{*view})); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(buf.String()), nil
}
