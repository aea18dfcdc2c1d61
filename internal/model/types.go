// Package model provides the entity types shared by the notebook stores.
package model

import (
	"encoding/json"
	"time"
)

// NotebookID, SectionID and PageID are the identifiers of the three entity kinds.
// An empty id stands for "none" wherever an id is optional.
type (
	NotebookID = string
	SectionID  = string
	PageID     = string
	UserID     = string
)

// Content is the serialized document of the rich-text editor. It is stored and
// returned untouched; nothing in this module parses it.
type Content string

// Notebook groups sections. Sections holds back-references only; sections
// themselves live in the section store.
type Notebook struct {
	ID          NotebookID  `json:"id"`
	Name        string      `json:"name"`
	User        UserID      `json:"user"`
	Description string      `json:"description"`
	Colour      string      `json:"colour"`
	Sections    []SectionID `json:"sections"`
}

// Clone returns a copy that shares no memory with n.
func (n Notebook) Clone() Notebook {
	n.Sections = append([]SectionID{}, n.Sections...)
	return n
}

// Section belongs to exactly one notebook.
type Section struct {
	ID         SectionID  `json:"id"`
	Name       string     `json:"name"`
	User       UserID     `json:"user"`
	NotebookID NotebookID `json:"notebookId"`
	Color      string     `json:"color"`
}

// Page is a unit of content. Pages form a tree through ParentPageID and carry
// a slash-delimited Path of ancestor ids ending in their own id.
//
// SectionID is empty for inbox pages and ParentPageID is empty for root pages.
type Page struct {
	ID           PageID
	SectionID    SectionID
	ParentPageID PageID
	Title        string
	Data         Content
	Path         string
	Level        int
	CreationDate time.Time
	EditedDate   time.Time
	Archived     bool
}

// IsInbox reports whether the page is uncategorized.
func (p Page) IsInbox() bool { return p.SectionID == "" }

// IsRoot reports whether the page has no parent.
func (p Page) IsRoot() bool { return p.ParentPageID == "" }

type pageJSON struct {
	ID           PageID     `json:"id"`
	SectionID    *SectionID `json:"sectionId"`
	ParentPageID *PageID    `json:"parentPageId"`
	Title        string     `json:"title"`
	Data         Content    `json:"data"`
	Path         string     `json:"path"`
	Level        int        `json:"level"`
	CreationDate time.Time  `json:"creationDate"`
	EditedDate   time.Time  `json:"editedDate"`
	Archived     bool       `json:"archived"`
}

// MarshalJSON encodes empty SectionID and ParentPageID as null.
func (p Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(pageJSON{
		ID:           p.ID,
		SectionID:    nullable(p.SectionID),
		ParentPageID: nullable(p.ParentPageID),
		Title:        p.Title,
		Data:         p.Data,
		Path:         p.Path,
		Level:        p.Level,
		CreationDate: p.CreationDate,
		EditedDate:   p.EditedDate,
		Archived:     p.Archived,
	})
}

// UnmarshalJSON accepts null or missing SectionID and ParentPageID.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw pageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Page{
		ID:           raw.ID,
		Title:        raw.Title,
		Data:         raw.Data,
		Path:         raw.Path,
		Level:        raw.Level,
		CreationDate: raw.CreationDate,
		EditedDate:   raw.EditedDate,
		Archived:     raw.Archived,
	}
	if raw.SectionID != nil {
		p.SectionID = *raw.SectionID
	}
	if raw.ParentPageID != nil {
		p.ParentPageID = *raw.ParentPageID
	}
	return nil
}

func nullable(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
