package application

import (
	"errors"
	"fmt"
	"slices"
)

// Check validates the page invariants and the references between stores:
// sections point at existing notebooks, notebooks list existing sections of
// their own, and filed pages point at existing sections.
func (a *App) Check() error {
	errs := []error{a.Pages.Validate()}

	for _, sec := range a.Sections.List() {
		nb, ok := a.Notebooks.Get(sec.NotebookID)
		if !ok {
			errs = append(errs, fmt.Errorf("section %s: notebook %s does not exist", sec.ID, sec.NotebookID))
			continue
		}
		if !slices.Contains(nb.Sections, sec.ID) {
			errs = append(errs, fmt.Errorf("section %s: not listed by notebook %s", sec.ID, nb.ID))
		}
	}

	for _, nb := range a.Notebooks.List() {
		for _, secID := range nb.Sections {
			sec, ok := a.Sections.Get(secID)
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("notebook %s: section %s does not exist", nb.ID, secID))
			case sec.NotebookID != nb.ID:
				errs = append(errs, fmt.Errorf("notebook %s: section %s belongs to notebook %s", nb.ID, secID, sec.NotebookID))
			}
		}
	}

	for _, p := range a.Pages.List() {
		if p.SectionID == "" {
			continue
		}
		if _, ok := a.Sections.Get(p.SectionID); !ok {
			errs = append(errs, fmt.Errorf("page %s: section %s does not exist", p.ID, p.SectionID))
		}
	}

	return errors.Join(errs...)
}
