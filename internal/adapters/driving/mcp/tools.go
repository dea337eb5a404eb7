package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// AnnotationOutput is one annotation as returned by the tools.
type AnnotationOutput struct {
	ID      int64    `json:"id"`
	Page    int      `json:"page"`
	Text    string   `json:"text"`
	Replies []string `json:"replies"`
}

// ListAnnotationsInput is the input schema for the list_annotations tool.
type ListAnnotationsInput struct {
	Page int `json:"page,omitempty" jsonschema:"only list annotations on this page (default all pages)"`
}

// ListAnnotationsOutput is the output schema for the list_annotations tool.
type ListAnnotationsOutput struct {
	Annotations []AnnotationOutput `json:"annotations"`
	Count       int                `json:"count"`
}

// CreateAnnotationInput is the input schema for the create_annotation tool.
type CreateAnnotationInput struct {
	Page  int    `json:"page" jsonschema:"1-based page number to search"`
	Text  string `json:"text" jsonschema:"text to highlight; matched ignoring case and whitespace"`
	Reply string `json:"reply,omitempty" jsonschema:"optional first reply"`
}

// AddReplyInput is the input schema for the add_reply tool.
type AddReplyInput struct {
	ID   int64  `json:"id" jsonschema:"annotation id"`
	Text string `json:"text" jsonschema:"reply text"`
}

// ExportAnnotationsInput is the input schema for the export_annotations tool.
type ExportAnnotationsInput struct {
	Template string  `json:"template,omitempty" jsonschema:"plain, plain-page, quoted, quoted-page, ellipsis or ellipsis-page (default from settings)"`
	IDs      []int64 `json:"ids,omitempty" jsonschema:"annotation ids to export (default all)"`
	Copy     bool    `json:"copy,omitempty" jsonschema:"also copy the result to the clipboard"`
}

// ExportAnnotationsOutput is the output schema for the export_annotations tool.
type ExportAnnotationsOutput struct {
	Template string `json:"template"`
	Text     string `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_annotations",
		Description: "List annotations on the loaded PDF in reading order",
	}, s.handleListAnnotations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_annotation",
		Description: "Highlight text on a page of the loaded PDF",
	}, s.handleCreateAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_reply",
		Description: "Add a reply to an annotation",
	}, s.handleAddReply)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_annotations",
		Description: "Format annotations as text using an export template",
	}, s.handleExportAnnotations)
}

// handleListAnnotations handles the list_annotations tool invocation.
func (s *Server) handleListAnnotations(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListAnnotationsInput,
) (*mcp.CallToolResult, ListAnnotationsOutput, error) {
	entries := s.ports.Annotation.Panel().Entries

	output := ListAnnotationsOutput{Annotations: make([]AnnotationOutput, 0, len(entries))}
	for i := range entries {
		if input.Page > 0 && entries[i].PageNumber != input.Page {
			continue
		}
		output.Annotations = append(output.Annotations, toOutput(&entries[i]))
	}
	output.Count = len(output.Annotations)

	return nil, output, nil
}

// handleCreateAnnotation handles the create_annotation tool invocation.
func (s *Server) handleCreateAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateAnnotationInput,
) (*mcp.CallToolResult, AnnotationOutput, error) {
	if _, err := s.ports.Annotation.SelectText(input.Page, input.Text); err != nil {
		return nil, AnnotationOutput{}, fmt.Errorf("selecting text: %w", err)
	}
	a, err := s.ports.Annotation.Annotate(ctx)
	if err != nil {
		return nil, AnnotationOutput{}, fmt.Errorf("creating annotation: %w", err)
	}

	if input.Reply != "" {
		if err := s.ports.Annotation.AddReply(ctx, a.ID, input.Reply); err != nil {
			return nil, AnnotationOutput{}, fmt.Errorf("adding reply: %w", err)
		}
		if updated, err := s.ports.Annotation.Get(a.ID); err == nil {
			a = updated
		}
	}

	return nil, toOutput(a), nil
}

// handleAddReply handles the add_reply tool invocation.
func (s *Server) handleAddReply(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddReplyInput,
) (*mcp.CallToolResult, AnnotationOutput, error) {
	if err := s.ports.Annotation.AddReply(ctx, input.ID, input.Text); err != nil {
		return nil, AnnotationOutput{}, fmt.Errorf("adding reply: %w", err)
	}
	a, err := s.ports.Annotation.Get(input.ID)
	if err != nil {
		return nil, AnnotationOutput{}, err
	}
	return nil, toOutput(a), nil
}

// handleExportAnnotations handles the export_annotations tool invocation.
// Programmatic callers cannot answer the chooser, so an empty template
// uses the fallback.
func (s *Server) handleExportAnnotations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportAnnotationsInput,
) (*mcp.CallToolResult, ExportAnnotationsOutput, error) {
	tmpl := domain.ExportTemplate(input.Template)
	if tmpl == "" {
		tmpl = s.ports.Export.Fallback()
	}

	var (
		text string
		err  error
	)
	if input.Copy {
		text, err = s.ports.Export.Export(ctx, tmpl, input.IDs...)
	} else {
		text, err = s.ports.Export.Format(tmpl, input.IDs...)
	}
	if err != nil {
		return nil, ExportAnnotationsOutput{}, err
	}

	return nil, ExportAnnotationsOutput{Template: tmpl.String(), Text: text}, nil
}

func toOutput(a *domain.Annotation) AnnotationOutput {
	replies := a.Replies
	if replies == nil {
		replies = []string{}
	}
	return AnnotationOutput{
		ID:      a.ID,
		Page:    a.PageNumber,
		Text:    a.Text,
		Replies: replies,
	}
}
