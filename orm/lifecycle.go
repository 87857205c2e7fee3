package orm

// State is the persistence lifecycle of an entity instance.
type State int

const (
	Unsaved State = iota
	Persisted
	Deleted
)

func (s State) String() string {
	switch s {
	case Unsaved:
		return "unsaved"
	case Persisted:
		return "persisted"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

func stateOf(id uint, deleted bool) State {
	if deleted {
		return Deleted
	}
	if id == 0 {
		return Unsaved
	}

	return Persisted
}

func (w *Warehouse) State() State { return stateOf(w.ID, w.deleted) }
func (a *Address) State() State   { return stateOf(a.ID, a.deleted) }
func (p *Product) State() State   { return stateOf(p.ID, p.deleted) }
func (t *Tag) State() State       { return stateOf(t.ID, t.deleted) }
func (s *StockItem) State() State { return stateOf(s.ID, s.deleted) }

// MarkDeleted moves the instance to the terminal Deleted state.
func (w *Warehouse) MarkDeleted() { w.deleted = true }
func (a *Address) MarkDeleted()   { a.deleted = true }
func (p *Product) MarkDeleted()   { p.deleted = true }
func (t *Tag) MarkDeleted()       { t.deleted = true }
func (s *StockItem) MarkDeleted() { s.deleted = true }
