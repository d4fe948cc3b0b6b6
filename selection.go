package voicenav

import "context"

// Selection is an Element bound to the command phrase a user assigned to it.
type Selection struct {
	Element
	Name string `json:"name"`
}

// DefaultName returns the placeholder command name used when no name was
// submitted for the element with the given id.
func DefaultName(id string) string {
	return "default_name_" + id
}

// BuildSelections cross-references checked element ids against a catalog.
// Selections follow the order of checkedIDs. Ids missing from the catalog are
// skipped. An id with no entry in names gets DefaultName; an entry that is
// present but empty is kept empty.
func BuildSelections(catalog *Catalog, checkedIDs []string, names map[string]string) ([]Selection, error) {
	if len(checkedIDs) == 0 {
		return nil, Errorf(ENOSELECTION, "no components selected")
	}

	selections := make([]Selection, 0, len(checkedIDs))
	for _, id := range checkedIDs {
		el, ok := catalog.FindByID(id)
		if !ok {
			continue
		}
		name, ok := names[id]
		if !ok {
			name = DefaultName(id)
		}
		selections = append(selections, Selection{Element: el, Name: name})
	}

	if len(selections) == 0 {
		return nil, Errorf(ENOSELECTION, "none of the selected components exist")
	}
	return selections, nil
}

// SelectionWriter persists the selections of one generation run.
type SelectionWriter interface {
	SaveSelections(ctx context.Context, selections []Selection) error
}
