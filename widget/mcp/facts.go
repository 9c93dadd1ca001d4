package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/factboard/pkg/board"
	"github.com/papercomputeco/factboard/pkg/fact"
)

var (
	listFactsToolName    = "list_facts"
	listFactsDescription = "List every fact in the facts collection, in the order the collection returns them."

	addFactToolName    = "add_fact"
	addFactDescription = "Add a fact to the facts collection. Returns the collection as it is after the fact was added."
)

// ListFactsInput represents the input arguments for the list_facts tool.
type ListFactsInput struct{}

// AddFactInput represents the input arguments for the add_fact tool.
type AddFactInput struct {
	Text string `json:"text" jsonschema:"the text of the fact to add"`
}

// FactsOutput is the output of both fact tools.
type FactsOutput struct {
	Facts []string `json:"facts"`
	Count int      `json:"count"`
}

// handleListFacts processes a list_facts request.
func (s *Server) handleListFacts(ctx context.Context, _ *mcp.CallToolRequest, _ ListFactsInput) (*mcp.CallToolResult, FactsOutput, error) {
	b, err := s.newBoard(board.NewField(""))
	if err != nil {
		return toolError("Failed to create board: %v", err)
	}

	list, err := b.LoadFacts(ctx)
	if err != nil {
		s.config.Logger.Error("failed to list facts", "error", err)
		return toolError("Failed to list facts: %v", err)
	}

	return toolResult(s.config.Logger, list)
}

// handleAddFact processes an add_fact request.
func (s *Server) handleAddFact(ctx context.Context, _ *mcp.CallToolRequest, input AddFactInput) (*mcp.CallToolResult, FactsOutput, error) {
	s.config.Logger.Debug("MCP add fact request", "text_length", len(input.Text))

	b, err := s.newBoard(board.NewField(input.Text))
	if err != nil {
		return toolError("Failed to create board: %v", err)
	}

	list, err := b.SubmitFacts(ctx)
	if err != nil {
		s.config.Logger.Error("failed to add fact", "error", err)
		return toolError("Failed to add fact: %v", err)
	}

	return toolResult(s.config.Logger, list)
}

func (s *Server) newBoard(input board.Input) (*board.Board, error) {
	return board.New(s.config.Collection, board.NewBuffer(), input,
		board.WithName("mcp"),
		board.WithTarget(s.config.Target),
		board.WithPublisher(s.config.Publisher),
		board.WithLogger(s.config.Logger),
	)
}

// toolResult returns the structured output, also serialized as JSON in a
// TextContent block for clients that ignore structured content.
func toolResult(logger *slog.Logger, list []fact.Fact) (*mcp.CallToolResult, FactsOutput, error) {
	output := FactsOutput{
		Facts: fact.Texts(list),
		Count: len(list),
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal facts output", "error", err)
		return toolError("Failed to serialize facts: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}

func toolError(format string, args ...any) (*mcp.CallToolResult, FactsOutput, error) {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}, FactsOutput{Facts: []string{}}, nil
}
