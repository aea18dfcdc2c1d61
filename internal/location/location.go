// Package location parses and formats the navigation paths that address a
// notebook section or a page.
package location

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindHome     Kind = "home"
	KindSection  Kind = "section"
	KindPage     Kind = "page"
	KindInbox    Kind = "inbox"
	KindAllPages Kind = "pages"
)

const appPrefix = "/app"

type Location struct {
	Kind       Kind
	NotebookID string
	SectionID  string
	PageID     string
}

func NewHome() Location {
	return Location{Kind: KindHome}
}

func NewSection(notebookID, sectionID string) Location {
	return Location{Kind: KindSection, NotebookID: notebookID, SectionID: sectionID}
}

func NewPage(notebookID, sectionID, pageID string) Location {
	return Location{Kind: KindPage, NotebookID: notebookID, SectionID: sectionID, PageID: pageID}
}

func NewInbox(pageID string) Location {
	return Location{Kind: KindInbox, PageID: pageID}
}

func NewAllPages(pageID string) Location {
	return Location{Kind: KindAllPages, PageID: pageID}
}

// ForPage picks the route used to open a page: the full notebook route when
// both its notebook and section are known, the all-pages route otherwise.
func ForPage(notebookID, sectionID, pageID string) Location {
	if notebookID != "" && sectionID != "" {
		return NewPage(notebookID, sectionID, pageID)
	}
	return NewAllPages(pageID)
}

func Validate(l Location) error {
	switch l.Kind {
	case KindHome:
		return nil
	case KindSection:
		if err := ensureNonEmpty("section location requires a notebook id", l.NotebookID); err != nil {
			return err
		}
		return ensureNonEmpty("section location requires a section id", l.SectionID)
	case KindPage:
		if err := ensureNonEmpty("page location requires a notebook id", l.NotebookID); err != nil {
			return err
		}
		if err := ensureNonEmpty("page location requires a section id", l.SectionID); err != nil {
			return err
		}
		return ensureNonEmpty("page location requires a page id", l.PageID)
	case KindInbox, KindAllPages:
		return ensureNonEmpty(string(l.Kind)+" location requires a page id", l.PageID)
	default:
		return fmt.Errorf("invalid location kind: %s", l.Kind)
	}
}

// Format renders the location as an absolute /app path.
func Format(l Location) string {
	switch l.Kind {
	case KindHome:
		return appPrefix
	case KindSection:
		return appPrefix + "/notebook/" + l.NotebookID + "/section/" + l.SectionID
	case KindPage:
		return Format(NewSection(l.NotebookID, l.SectionID)) + "/page/" + l.PageID
	case KindInbox:
		return appPrefix + "/inbox/page/" + l.PageID
	case KindAllPages:
		return appPrefix + "/pages/page/" + l.PageID
	default:
		return ""
	}
}

// Parse reads an /app path. The /app prefix and the leading slash are
// optional, so relative links are accepted too.
func Parse(path string) (Location, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	trimmed = strings.TrimPrefix(trimmed, strings.TrimPrefix(appPrefix, "/"))
	trimmed = strings.Trim(trimmed, "/")

	var parts []string
	if trimmed != "" {
		parts = strings.Split(trimmed, "/")
	}

	var l Location
	switch {
	case len(parts) == 0:
		l = NewHome()
	case len(parts) == 4 && parts[0] == "notebook" && parts[2] == "section":
		l = NewSection(parts[1], parts[3])
	case len(parts) == 6 && parts[0] == "notebook" && parts[2] == "section" && parts[4] == "page":
		l = NewPage(parts[1], parts[3], parts[5])
	case len(parts) == 3 && parts[0] == "inbox" && parts[1] == "page":
		l = NewInbox(parts[2])
	case len(parts) == 3 && parts[0] == "pages" && parts[1] == "page":
		l = NewAllPages(parts[2])
	default:
		return Location{}, fmt.Errorf("unrecognised location: %q", path)
	}
	return l, Validate(l)
}

func ensureNonEmpty(msg, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(msg)
	}
	return nil
}
