// Package mcptools exposes the draft board as Model Context Protocol tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/malexanderboyd/pwr9-draftboard/internal/director"
	"github.com/malexanderboyd/pwr9-draftboard/internal/draft"
)

const ServerName = "draftboard-mcp"

type AddPickArgs struct {
	Name      string `json:"name" jsonschema:"Player name, unique across the board"`
	Position  string `json:"position" jsonschema:"Position, e.g. RB or WR"`
	NFLTeam   string `json:"nfl_team" jsonschema:"NFL team abbreviation, e.g. SF"`
	DraftPick *int   `json:"draft_pick,omitempty" jsonschema:"Pick number, only used when the board uses manual pick entry"`
}

type RemovePickArgs struct {
	DraftPick int  `json:"draft_pick" jsonschema:"Pick number to clear"`
	Confirm   bool `json:"confirm,omitempty" jsonschema:"Must be true; removal renumbers later picks on auto boards"`
}

type ResetArgs struct {
	Confirm bool `json:"confirm,omitempty" jsonschema:"Must be true; every pick is dropped"`
}

type SearchArgs struct {
	Query string `json:"query" jsonschema:"Case-insensitive text matched against name, position and team"`
}

type SlotArgs struct {
	PickNumber int `json:"pick_number" jsonschema:"Overall pick number"`
}

type NoArgs struct{}

// NewServer builds an MCP server whose tools all run through d.
func NewServer(d *director.Director, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	Register(server, d)
	return server
}

func Register(server *mcp.Server, d *director.Director) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft_add_pick",
		Description: "Record a drafted player. Auto boards assign the next pick number; manual boards need draft_pick.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AddPickArgs) (*mcp.CallToolResult, any, error) {
		pick, err := director.Query(ctx, d, func(e *draft.Engine) (draft.Pick, error) {
			return e.AddPick(ctx, draft.AddPickInput{
				Name:      args.Name,
				Position:  args.Position,
				NFLTeam:   args.NFLTeam,
				DraftPick: args.DraftPick,
			})
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(map[string]any{"pick": pick})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft_remove_pick",
		Description: "Remove the player at a pick number. Requires confirm=true.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RemovePickArgs) (*mcp.CallToolResult, any, error) {
		if !args.Confirm {
			return toolError(errors.New("removal not confirmed: call again with confirm=true")), nil, nil
		}
		removed, err := director.Query(ctx, d, func(e *draft.Engine) (draft.Pick, error) {
			p, _ := e.PickAt(args.DraftPick)
			return p, e.RemovePick(ctx, args.DraftPick)
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(map[string]any{"removed": removed})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft_reset",
		Description: "Clear every pick from the board and the saved draft. Requires confirm=true.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ResetArgs) (*mcp.CallToolResult, any, error) {
		if !args.Confirm {
			return toolError(errors.New("reset not confirmed: call again with confirm=true")), nil, nil
		}
		removed, err := director.Query(ctx, d, func(e *draft.Engine) (int, error) {
			return e.Reset(ctx), nil
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(map[string]any{"removed": removed})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft_search",
		Description: "Find drafted players by name, position or NFL team",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
		matches, err := director.Query(ctx, d, func(e *draft.Engine) ([]draft.Pick, error) {
			return e.SearchPicks(args.Query), nil
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(map[string]any{"query": args.Query, "matches": matches})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft_summary",
		Description: "Players drafted so far, the current round and the next pick number",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
		summary, err := director.Query(ctx, d, func(e *draft.Engine) (draft.Summary, error) {
			return e.Summary(), nil
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(summary)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft_board",
		Description: "The full board, one row per round in snake order",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
		board, err := director.Query(ctx, d, func(e *draft.Engine) (draft.Board, error) {
			return e.Board(), nil
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(board)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft_slot",
		Description: "Round and team for a pick number, and who was taken there",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SlotArgs) (*mcp.CallToolResult, any, error) {
		cell, err := director.Query(ctx, d, func(e *draft.Engine) (draft.Cell, error) {
			return e.Slot(args.PickNumber)
		})
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(cell)
	})
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	text := fmt.Sprintf("error: %v", err)
	if code := draft.CodeOf(err); code != draft.CodeUnknown {
		text = fmt.Sprintf("error [%s]: %v", code, err)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
