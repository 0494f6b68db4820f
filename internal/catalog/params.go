package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/nerrad567/dbscope/internal/explorer"
)

// ErrUnknownOperation is returned when a dispatch names an operation that
// is not in the catalog.
var ErrUnknownOperation = errors.New("catalog: unknown operation")

// Args is a validated, typed view of one request's parameters. Accessors
// assume validateArgs ran; absent optional values return zero values
// (integers return their declared defaults, applied during validation).
type Args map[string]any

// String returns a string parameter, or "" if absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns an integer parameter, or 0 if absent.
func (a Args) Int(name string) int {
	v, _ := a[name].(int)
	return v
}

// StringList returns a string-list parameter, or nil if absent.
func (a Args) StringList(name string) []string {
	v, _ := a[name].([]string)
	return v
}

// validateArgs checks a raw parameter object against the operation's
// declared shape and produces typed Args.
//
// A nil parameter set is InvalidArguments (transports decode JSON
// non-objects to nil as well). Required parameters must be present and
// non-empty. Integers must be whole numbers within their declared bounds;
// violations are ErrInvalidParameter naming the parameter. Unknown
// parameter names are rejected so callers learn about typos instead of
// having options silently ignored.
func validateArgs(op Operation, params map[string]any) (Args, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: parameters must be an object", explorer.ErrInvalidArguments)
	}

	declared := make(map[string]ParamSpec, len(op.Params))
	for _, spec := range op.Params {
		declared[spec.Name] = spec
	}
	for name := range params {
		if _, ok := declared[name]; !ok {
			return nil, fmt.Errorf("%w: unknown parameter %q", explorer.ErrInvalidArguments, name)
		}
	}

	args := Args{}
	for _, spec := range op.Params {
		raw, present := params[spec.Name]
		if !present || raw == nil {
			if spec.Required {
				return nil, fmt.Errorf("%w: missing required parameter %q", explorer.ErrInvalidArguments, spec.Name)
			}
			if spec.Type == TypeInteger && spec.Default != 0 {
				args[spec.Name] = spec.Default
			}
			continue
		}

		switch spec.Type {
		case TypeString:
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: parameter %q must be a string", explorer.ErrInvalidArguments, spec.Name)
			}
			if spec.Required && s == "" {
				return nil, fmt.Errorf("%w: parameter %q must not be empty", explorer.ErrInvalidArguments, spec.Name)
			}
			args[spec.Name] = s

		case TypeInteger:
			n, err := intValue(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q must be an integer", explorer.ErrInvalidParameter, spec.Name)
			}
			if n < spec.Min || n > spec.Max {
				return nil, fmt.Errorf("%w: %q must be between %d and %d",
					explorer.ErrInvalidParameter, spec.Name, spec.Min, spec.Max)
			}
			args[spec.Name] = n

		case TypeStringList:
			list, err := stringListValue(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: parameter %q must be a list of strings", explorer.ErrInvalidArguments, spec.Name)
			}
			if spec.Required && len(list) == 0 {
				return nil, fmt.Errorf("%w: parameter %q must not be empty", explorer.ErrInvalidArguments, spec.Name)
			}
			args[spec.Name] = list
		}
	}

	return args, nil
}

// intValue accepts the integer encodings produced by JSON decoding and
// native Go callers.
func intValue(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not a whole number")
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("not numeric")
	}
}

// stringListValue accepts []string from native callers and []any from
// JSON decoding.
func stringListValue(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		list := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is not a string", i)
			}
			list[i] = s
		}
		return list, nil
	default:
		return nil, fmt.Errorf("not a list")
	}
}
