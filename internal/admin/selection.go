package admin

import "errors"

// ErrNothingSelected is returned when a bulk delete is attempted with no items selected.
var ErrNothingSelected = errors.New("no items selected")

// Selection tracks checked items in the delete view. IDs come back in the
// order they were first selected.
type Selection struct {
	order []string
	set   map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{set: make(map[string]struct{})}
}

// Toggle flips id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if _, ok := s.set[id]; ok {
		delete(s.set, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return false
	}
	s.set[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// SelectAll replaces the selection with ids.
func (s *Selection) SelectAll(ids []string) {
	s.Clear()
	for _, id := range ids {
		if _, ok := s.set[id]; ok {
			continue
		}
		s.set[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

func (s *Selection) Clear() {
	s.order = nil
	s.set = make(map[string]struct{})
}

func (s *Selection) Selected(id string) bool {
	_, ok := s.set[id]
	return ok
}

func (s *Selection) Len() int { return len(s.order) }

// IDs returns the selected ids, or ErrNothingSelected.
func (s *Selection) IDs() ([]string, error) {
	if len(s.order) == 0 {
		return nil, ErrNothingSelected
	}
	return append([]string(nil), s.order...), nil
}
