// Package mcp provides an MCP (Model Context Protocol) server that exposes
// jobnav path resolution as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"

	"github.com/laporte-eng/jobnav/internal/core"
	"github.com/laporte-eng/jobnav/internal/integration"
	"github.com/laporte-eng/jobnav/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the resolver and launcher and exposes them as MCP tools.
type Server struct {
	server   *gomcp.Server
	resolver core.PathResolver
	launcher *integration.Launcher
}

// NewServer creates a new MCP server. launcher may be nil, in which case
// resolve_location resolves directly and cannot open.
func NewServer(resolver core.PathResolver, launcher *integration.Launcher, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		resolver: resolver,
		launcher: launcher,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "jobnav", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type extractJobNumberInput struct {
	Text string `json:"text" jsonschema:"free text such as a file name that contains a 6-digit job number"`
}

type extractJobNumberOutput struct {
	JobNumber string `json:"job_number"`
}

type resolveLocationInput struct {
	Target string `json:"target" jsonschema:"location to resolve: job, qc, prints, print, pictures or model"`
	Arg    string `json:"arg" jsonschema:"job number (or any text containing one) for job, qc, prints and pictures; a file name for print and model"`
	Dept   string `json:"dept,omitempty" jsonschema:"department for qc: balance (default), assembly or blading"`
	Open   bool   `json:"open,omitempty" jsonschema:"also open the resolved path with the system handler"`
}

type resolveLocationOutput struct {
	Path   string `json:"path"`
	Opened bool   `json:"opened"`
}

type listRangesInput struct {
	Pictures bool `json:"pictures,omitempty" jsonschema:"list the pictures root (truncated names) instead of the projects folder"`
}

type rangeOutput struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Low  int    `json:"low"`
	High int    `json:"high"`
}

type listRangesOutput struct {
	Ranges []rangeOutput `json:"ranges"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "extract_job_number",
		Description: "Extract the first 6-digit job number from text such as a drawing or model file name.",
	}, s.handleExtractJobNumber)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "resolve_location",
		Description: "Resolve a job location on the engineering share (job folder, QC reports, issued prints, pictures, QC models). Optionally open it.",
	}, s.handleResolveLocation)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_ranges",
		Description: "List the numbered range folders under the projects folder or pictures root, in natural order.",
	}, s.handleListRanges)
}

// --- Tool handlers ---

func (s *Server) handleExtractJobNumber(_ context.Context, _ *gomcp.CallToolRequest, input extractJobNumberInput) (*gomcp.CallToolResult, extractJobNumberOutput, error) {
	job, err := core.ExtractJobNumber(input.Text)
	if err != nil {
		return errorResult(err.Error()), extractJobNumberOutput{}, nil
	}
	return nil, extractJobNumberOutput{JobNumber: job.String()}, nil
}

func (s *Server) handleResolveLocation(_ context.Context, _ *gomcp.CallToolRequest, input resolveLocationInput) (*gomcp.CallToolResult, resolveLocationOutput, error) {
	target, err := models.ParseTarget(input.Target)
	if err != nil {
		return errorResult(err.Error()), resolveLocationOutput{}, nil
	}
	var dept models.Department
	if input.Dept != "" {
		dept, err = models.ParseDepartment(input.Dept)
		if err != nil {
			return errorResult(err.Error()), resolveLocationOutput{}, nil
		}
	}

	if input.Open {
		if s.launcher == nil {
			return errorResult("opening is not available on this server"), resolveLocationOutput{}, nil
		}
		path, err := s.launcher.Resolve(target, input.Arg, dept)
		if err != nil {
			s.launcher.Report("Could not find "+string(target), err)
			return errorResult(fmt.Sprintf("%s [%s]", err, models.KindOf(err))), resolveLocationOutput{}, nil
		}
		if !s.launcher.OpenPath(path) {
			return errorResult(fmt.Sprintf("could not open %s [%s]", path, models.KindOpenFailed)), resolveLocationOutput{}, nil
		}
		return nil, resolveLocationOutput{Path: path, Opened: true}, nil
	}

	var path string
	if s.launcher != nil {
		path, err = s.launcher.Resolve(target, input.Arg, dept)
	} else {
		path, err = s.resolver.Resolve(target, input.Arg, dept)
	}
	if err != nil {
		return errorResult(fmt.Sprintf("%s [%s]", err, models.KindOf(err))), resolveLocationOutput{}, nil
	}
	return nil, resolveLocationOutput{Path: path}, nil
}

func (s *Server) handleListRanges(_ context.Context, _ *gomcp.CallToolRequest, input listRangesInput) (*gomcp.CallToolResult, listRangesOutput, error) {
	conv := models.RangeFull
	if input.Pictures {
		conv = models.RangeTruncated
	}

	folders, err := s.resolver.RangeFolders(conv)
	if err != nil {
		return errorResult(fmt.Sprintf("listing ranges: %s", err)), listRangesOutput{Ranges: []rangeOutput{}}, nil
	}

	out := listRangesOutput{
		Ranges: make([]rangeOutput, len(folders)),
		Count:  len(folders),
	}
	for i, f := range folders {
		out.Ranges[i] = rangeOutput{Name: f.Name, Path: f.Path, Low: f.Low, High: f.High}
	}
	return nil, out, nil
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
