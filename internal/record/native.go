package record

import "fmt"

// ToNative converts a record tree into plain Go values
// (map[string]any, []any, string, int64, float64, bool, nil) for checkers
// that work on decoded JSON. DateLike scalars that were not normalized are
// rendered as their ISO text form.
func ToNative(v Value) (any, error) {
	switch n := v.(type) {
	case nil, Null:
		return nil, nil
	case String:
		return string(n), nil
	case Int:
		return int64(n), nil
	case Float:
		return float64(n), nil
	case Bool:
		return bool(n), nil
	case DateLike:
		return n.ISOFormat(), nil
	case Sequence:
		out := make([]any, len(n))
		for i, child := range n {
			elem, err := ToNative(child)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = elem
		}
		return out, nil
	case Mapping:
		out := make(map[string]any, len(n))
		for k, child := range n {
			elem, err := ToNative(child)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out[k] = elem
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported record value: %T", v)
	}
}
