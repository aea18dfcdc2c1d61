package mcp

import (
	"time"

	"github.com/notebook-md/notebookmd/internal/model"
)

type NotebookCreateInput struct {
	Name        string  `json:"name" jsonschema:"the notebook name"`
	Description *string `json:"description,omitempty" jsonschema:"optional description"`
	Colour      *string `json:"colour,omitempty" jsonschema:"hex colour such as #FFFFFF"`
}

type NotebookOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Colour      string   `json:"colour"`
	Sections    []string `json:"sections"`
}

type NotebookListInput struct{}

type NotebookListOutput struct {
	Notebooks []NotebookOutput `json:"notebooks"`
}

type NotebookDeleteInput struct {
	ID string `json:"id" jsonschema:"the notebook id"`
}

type DeleteOutput struct {
	Message  string   `json:"message"`
	Sections []string `json:"sections,omitempty"`
	Pages    []string `json:"pages,omitempty"`
}

type SectionCreateInput struct {
	NotebookID string  `json:"notebookId" jsonschema:"the notebook that owns the section"`
	Name       string  `json:"name" jsonschema:"the section name"`
	Color      *string `json:"color,omitempty" jsonschema:"hex colour; a random red-pink one when omitted"`
}

type SectionOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NotebookID string `json:"notebookId"`
	Color      string `json:"color"`
}

type SectionListInput struct {
	NotebookID string `json:"notebookId" jsonschema:"the notebook id"`
}

type SectionListOutput struct {
	Sections []SectionOutput `json:"sections"`
}

type SectionDeleteInput struct {
	ID string `json:"id" jsonschema:"the section id"`
}

type PageCreateInput struct {
	Title        string  `json:"title" jsonschema:"the page title"`
	SectionID    *string `json:"sectionId,omitempty" jsonschema:"section to file the page in; inbox when omitted"`
	ParentPageID *string `json:"parentPageId,omitempty" jsonschema:"page to nest the new page under"`
	Data         *string `json:"data,omitempty" jsonschema:"serialized editor content"`
}

type PageOutput struct {
	ID           string `json:"id"`
	SectionID    string `json:"sectionId,omitempty"`
	ParentPageID string `json:"parentPageId,omitempty"`
	Title        string `json:"title"`
	Data         string `json:"data,omitempty"`
	Path         string `json:"path"`
	Level        int    `json:"level"`
	CreationDate string `json:"creationDate"`
	EditedDate   string `json:"editedDate"`
	Archived     bool   `json:"archived,omitempty"`
	Location     string `json:"location,omitempty"`
}

type PageGetInput struct {
	ID string `json:"id" jsonschema:"the page id"`
}

type PageUpdateInput struct {
	ID       string  `json:"id" jsonschema:"the page id"`
	Title    *string `json:"title,omitempty" jsonschema:"new title"`
	Data     *string `json:"data,omitempty" jsonschema:"new serialized editor content"`
	Archived *bool   `json:"archived,omitempty" jsonschema:"archive or unarchive the page"`
}

type PageDeleteInput struct {
	ID string `json:"id" jsonschema:"the page id"`
}

type PageReorderInput struct {
	ActiveID string `json:"activeId,omitempty" jsonschema:"the dragged page; empty to drop the page passed to page_drag_start"`
	OverID   string `json:"overId,omitempty" jsonschema:"the page it was dropped on; empty for a drop outside any page"`
}

type PageReorderOutput struct {
	Changed bool       `json:"changed"`
	Page    PageOutput `json:"page"`
}

type PageDragStartInput struct {
	ID string `json:"id" jsonschema:"the page to pick up"`
}

type PageDragStatusInput struct{}

type PageDragOutput struct {
	Active bool        `json:"active"`
	Page   *PageOutput `json:"page,omitempty"`
}

type PageSearchInput struct {
	Query string `json:"query,omitempty" jsonschema:"case-insensitive title filter"`
}

type PageListOutput struct {
	Pages []PageOutput `json:"pages"`
}

type PageTreeInput struct {
	SectionID string `json:"sectionId,omitempty" jsonschema:"the section id; the inbox when empty"`
}

// TreeEntry is one page of a tree listing, in depth-first order.
type TreeEntry struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ParentPageID string `json:"parentPageId,omitempty"`
	Level        int    `json:"level"`
	Archived     bool   `json:"archived,omitempty"`
}

type PageTreeOutput struct {
	Entries []TreeEntry `json:"entries"`
}

func notebookOutput(nb model.Notebook) NotebookOutput {
	sections := make([]string, 0, len(nb.Sections))
	sections = append(sections, nb.Sections...)
	return NotebookOutput{
		ID:          nb.ID,
		Name:        nb.Name,
		Description: nb.Description,
		Colour:      nb.Colour,
		Sections:    sections,
	}
}

func sectionOutput(sec model.Section) SectionOutput {
	return SectionOutput{
		ID:         sec.ID,
		Name:       sec.Name,
		NotebookID: sec.NotebookID,
		Color:      sec.Color,
	}
}

func pageOutput(p model.Page, withData bool) PageOutput {
	out := PageOutput{
		ID:           p.ID,
		SectionID:    p.SectionID,
		ParentPageID: p.ParentPageID,
		Title:        p.Title,
		Path:         p.Path,
		Level:        p.Level,
		CreationDate: p.CreationDate.Format(time.RFC3339),
		EditedDate:   p.EditedDate.Format(time.RFC3339),
		Archived:     p.Archived,
	}
	if withData {
		out.Data = string(p.Data)
	}
	return out
}
