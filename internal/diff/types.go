package diff

// ItemData is the flattened form of one item, keyed by its path from HOME
type ItemData struct {
	Path   string // "Games/Action/Doom"
	Kind   string
	Icon   string
	Target string
	Args   string
}

// DiffResult contains the changes between two trees
type DiffResult struct {
	NewItems      map[string]*ItemData
	DeletedItems  map[string]*ItemData
	ModifiedItems map[string]*ItemChange
}

// Empty reports whether the trees were identical
func (r *DiffResult) Empty() bool {
	return len(r.NewItems) == 0 && len(r.DeletedItems) == 0 && len(r.ModifiedItems) == 0
}

// ItemChange describes what changed for an item present in both trees
type ItemChange struct {
	Item    *ItemData
	OldItem *ItemData
	// Fields maps a field name to its [old, new] values
	Fields map[string][2]string
}

// DiffLineType indicates the type of diff line for rendering
type DiffLineType int

const (
	DiffTypeNewSection DiffLineType = iota
	DiffTypeDeletedSection
	DiffTypeModifiedSection
	DiffTypeNewItem
	DiffTypeDeletedItem
	DiffTypeModifiedItem
	DiffTypeItemDetail
	DiffTypeSummary
	DiffTypeBlank
)

// DiffLine represents a rendered line in diff output
type DiffLine struct {
	Type    DiffLineType
	Content string
	Indent  int
}
