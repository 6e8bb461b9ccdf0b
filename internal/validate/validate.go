// Package validate lints raw launcher tree data. It works on the untyped JSON
// form so that shapes the item decoder would reject or silently default are
// reported instead.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// Severity ranks a finding
type Severity int

const (
	// SeverityError is a structural defect
	SeverityError Severity = iota
	// SeverityWarning is a missing optional key
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Finding is a single defect at the node identified by Path ("Tools/Broken")
type Finding struct {
	Path     string
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	path := f.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("%s: %s", path, f.Message)
}

// Validate walks the whole tree and returns every finding. It never stops at
// the first defect; a malformed branch is reported and skipped.
func Validate(root any) []Finding {
	v := &validator{}
	items, ok := root.(map[string]any)
	if !ok {
		v.errorf("", "expected top-level object, got %s", typeName(root))
		return v.findings
	}
	v.checkItems(items, "")
	return v.findings
}

// ValidateBytes parses data and validates it. Invalid JSON is a single finding.
func ValidateBytes(data []byte) []Finding {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return []Finding{{Severity: SeverityError, Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	return Validate(root)
}

// ValidateFile reads and validates a tree file
func ValidateFile(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return ValidateBytes(data), nil
}

// HasErrors reports whether any finding is an error rather than a warning
func HasErrors(findings []Finding) bool {
	return slices.ContainsFunc(findings, func(f Finding) bool {
		return f.Severity == SeverityError
	})
}

type validator struct {
	findings []Finding
}

func (v *validator) errorf(path, format string, args ...any) {
	v.findings = append(v.findings, Finding{Path: path, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) warnf(path, format string, args ...any) {
	v.findings = append(v.findings, Finding{Path: path, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) checkItems(items map[string]any, parent string) {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		path := name
		if parent != "" {
			path = parent + "/" + name
		}
		v.checkNode(name, items[name], path)
	}
}

func (v *validator) checkNode(name string, value any, path string) {
	node, ok := value.(map[string]any)
	if !ok {
		v.errorf(path, "expected object, got %s", typeName(value))
		return
	}

	if strings.TrimSpace(name) == "" {
		v.errorf(path, "blank name")
	}

	kind := v.checkType(node, path)
	v.checkOptionalString(node, model.KeyIcon, path)

	switch kind {
	case model.KindShortcut:
		v.checkShortcut(node, path)
	case model.KindFolder:
		v.checkFolderFields(node, path)
	}

	// keep descending whatever was found above so one pass reports everything
	if raw, present := node[model.KeyItems]; present {
		children, ok := raw.(map[string]any)
		if !ok {
			v.errorf(path, "%q should be an object, got %s", model.KeyItems, typeName(raw))
			return
		}
		v.checkItems(children, path)
	} else if kind == model.KindFolder {
		v.warnf(path, "missing optional key %q", model.KeyItems)
	}
}

func (v *validator) checkType(node map[string]any, path string) model.Kind {
	raw, present := node[model.KeyType]
	if !present {
		v.errorf(path, "missing required key %q", model.KeyType)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		v.errorf(path, "%q should be a string, got %s", model.KeyType, typeName(raw))
		return ""
	}
	switch kind := model.Kind(s); kind {
	case model.KindFolder, model.KindShortcut:
		return kind
	case "":
		v.errorf(path, "empty required key %q", model.KeyType)
	default:
		v.errorf(path, "unknown type %q", s)
	}
	return ""
}

func (v *validator) checkShortcut(node map[string]any, path string) {
	raw, present := node[model.KeyPath]
	switch s, ok := raw.(string); {
	case !present:
		v.errorf(path, "missing required key %q for shortcut", model.KeyPath)
	case !ok:
		v.errorf(path, "%q should be a string, got %s", model.KeyPath, typeName(raw))
	case strings.TrimSpace(s) == "":
		v.errorf(path, "empty required key %q for shortcut", model.KeyPath)
	}

	if raw, present := node[model.KeyArgs]; present {
		if _, ok := raw.(string); !ok {
			v.errorf(path, "%q should be a string, got %s", model.KeyArgs, typeName(raw))
		}
	}

	if _, present := node[model.KeyItems]; present {
		v.errorf(path, "shortcut must not carry %q", model.KeyItems)
	}
}

func (v *validator) checkFolderFields(node map[string]any, path string) {
	for _, key := range []string{model.KeyPath, model.KeyArgs} {
		if _, present := node[key]; present {
			v.errorf(path, "folder must not carry %q", key)
		}
	}
}

func (v *validator) checkOptionalString(node map[string]any, key, path string) {
	raw, present := node[key]
	if !present {
		v.warnf(path, "missing optional key %q", key)
		return
	}
	if _, ok := raw.(string); !ok {
		v.errorf(path, "%q should be a string, got %s", key, typeName(raw))
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
