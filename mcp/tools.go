package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ragtools/docrag"
)

// QueryInput is the input schema for the query_documentation tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the question to answer from the documentation"`
}

// QueryOutput is the output schema for the query_documentation tool.
type QueryOutput struct {
	Documents string `json:"documents"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_documentation",
		Description: "Query the indexed documentation and return the most relevant excerpts",
	}, s.handleQuery)
}

// handleQuery handles the query_documentation tool invocation. The index
// is consulted fresh on every call, so a rebuild in another process is
// picked up without restarting the server.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	results, err := s.index.Search(ctx, input.Query, TopK)
	if err != nil {
		if docrag.ErrorCode(err) == docrag.ENOTFOUND {
			// A missing index is an operator problem, not a protocol
			// error: tell the caller what to do instead of failing
			// the tool call.
			s.logger.Warn("query before index build", "error", err)
			return textResult(docrag.ErrorMessage(err)), QueryOutput{Documents: docrag.ErrorMessage(err)}, nil
		}
		s.logger.Error("documentation query failed", "query", input.Query, "error", err)
		return nil, QueryOutput{}, err
	}

	s.logger.Info("documentation query", "query", input.Query, "results", len(results))

	formatted := docrag.FormatResults(results)
	return textResult(formatted), QueryOutput{Documents: formatted}, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
