// Package template expands {{...}} placeholders in shortcut arguments at
// launch time, e.g. `--log {{date:%Y-%m-%d}}.log` or `{{clipboard}}`.
package template

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// ErrUnknownFunction is returned for a placeholder naming no function
var ErrUnknownFunction = errors.Base("unknown placeholder function")

// Context holds what placeholders can refer to
type Context struct {
	// Name is the name of the shortcut being launched
	Name string
	// Target is the shortcut target
	Target string
	// ClipboardCommand prints the clipboard, e.g. "xclip -selection clipboard -o"
	ClipboardCommand string
	// WeekStart is the first day of the week for weekday(), 0 = Sunday
	WeekStart int
	// Now defaults to time.Now
	Now func() time.Time
}

func (c Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

var placeholder = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Has reports whether text contains a placeholder
func Has(text string) bool {
	return placeholder.MatchString(text)
}

// Expand replaces every {{function:arg}} or {{function(arg)|pipe:arg}} in
// text. Text without placeholders is returned unchanged.
func Expand(text string, ctx Context) (string, error) {
	var firstErr error
	result := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		if firstErr != nil {
			return m
		}
		value, err := evaluateExpression(m[2:len(m)-2], ctx)
		if err != nil {
			firstErr = err
			return m
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// evaluateExpression evaluates one placeholder body, applying pipes left to
// right: weekday(1)|date:%A
func evaluateExpression(expr string, ctx Context) (string, error) {
	parts := strings.Split(expr, "|")

	value, err := processFunction(parts[0], ctx)
	if err != nil {
		return "", err
	}
	for _, pipe := range parts[1:] {
		value, err = applyPipe(strings.TrimSpace(pipe), value)
		if err != nil {
			return "", err
		}
	}
	return convertToString(value), nil
}

func convertToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case *DateValue:
		return FormatDateValue(v, "")
	default:
		return ""
	}
}

func applyPipe(pipeExpr string, prevValue any) (any, error) {
	function, args := splitCall(pipeExpr)
	switch function {
	case "date":
		if dv, ok := prevValue.(*DateValue); ok {
			return FormatDateValue(dv, args), nil
		}
	case "upper":
		return strings.ToUpper(convertToString(prevValue)), nil
	case "lower":
		return strings.ToLower(convertToString(prevValue)), nil
	case "quote":
		return ShellQuote(convertToString(prevValue)), nil
	}
	return nil, errors.Errorf("%w: pipe %q", ErrUnknownFunction, function)
}

// splitCall parses "function(args)" or "function:args"
func splitCall(expr string) (string, string) {
	expr = strings.TrimSpace(expr)
	if open := strings.Index(expr, "("); open > 0 && strings.HasSuffix(expr, ")") {
		return strings.TrimSpace(expr[:open]), strings.TrimSpace(expr[open+1 : len(expr)-1])
	}
	function, args, _ := strings.Cut(expr, ":")
	return strings.TrimSpace(function), strings.TrimSpace(args)
}

func processFunction(funcExpr string, ctx Context) (any, error) {
	function, args := splitCall(funcExpr)

	switch function {
	case "now":
		return ctx.now().Format(time.RFC3339), nil
	case "date":
		return FormatDateValue(&DateValue{t: ctx.now()}, args), nil
	case "weekday":
		dayNum, err := strconv.Atoi(args)
		if err != nil {
			return nil, errors.Errorf("weekday needs a day number 0-6, got %q", args)
		}
		return WeekdayWithStart(ctx.now(), dayNum, ctx.WeekStart), nil
	case "clipboard":
		return Clipboard(ctx.ClipboardCommand)
	case "env":
		return Env(args), nil
	case "home":
		return Home(), nil
	case "name":
		return ctx.Name, nil
	case "target":
		return ctx.Target, nil
	}
	return nil, errors.Errorf("%w: %q", ErrUnknownFunction, function)
}

// ShortcutArgs expands the arguments of sc, with name and target taken
// from it
func ShortcutArgs(sc *model.Shortcut, ctx Context) (string, error) {
	if !Has(sc.Args) {
		return sc.Args, nil
	}
	ctx.Name = sc.Name
	ctx.Target = sc.Target
	return Expand(sc.Args, ctx)
}
