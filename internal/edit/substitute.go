package edit

import (
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// Field names a substitutable item field
type Field string

const (
	FieldTarget Field = "target"
	FieldArgs   Field = "args"
	FieldIcon   Field = "icon"
)

// ErrUnknownField is returned by ParseField for anything but target, args or icon
var ErrUnknownField = errors.Base("unknown field")

// ParseField parses a field name. "path" is accepted as the file-format name of target.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "target", "path":
		return FieldTarget, nil
	case "args":
		return FieldArgs, nil
	case "icon":
		return FieldIcon, nil
	}
	return "", errors.Errorf("%w: %q", ErrUnknownField, s)
}

// Substitute sets field to newValue on every item below root whose field
// equals oldValue exactly, and returns how many items changed. Folders have no
// target or args and are skipped for those fields.
func Substitute(root *model.Folder, field Field, oldValue, newValue string) int {
	changed := 0
	root.Walk(func(item model.Item, _ []string) {
		v := fieldOf(item, field)
		if v == nil || *v != oldValue {
			return
		}
		*v = newValue
		ensureIcon(item)
		changed++
	})
	return changed
}

func fieldOf(item model.Item, field Field) *string {
	if field == FieldIcon {
		return &item.Common().Icon
	}
	switch it := item.(type) {
	case *model.Shortcut:
		switch field {
		case FieldTarget:
			return &it.Target
		case FieldArgs:
			return &it.Args
		}
	case *model.Folder:
		// folders carry neither target nor args
	}
	return nil
}
