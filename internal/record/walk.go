package record

// Transform rebuilds v bottom-up. Mappings keep every key with each value
// transformed, sequences keep their order with each element transformed, and
// every scalar is replaced by fn(scalar). The input tree is never mutated.
func Transform(v Value, fn func(Value) Value) Value {
	switch n := v.(type) {
	case Mapping:
		out := make(Mapping, len(n))
		for k, child := range n {
			out[k] = Transform(child, fn)
		}
		return out
	case Sequence:
		out := make(Sequence, len(n))
		for i, child := range n {
			out[i] = Transform(child, fn)
		}
		return out
	case nil:
		return nil
	default:
		return fn(n)
	}
}

// Normalize replaces every DateLike scalar reachable in v with its ISO text
// form. All other scalars pass through unchanged.
func Normalize(v Value) Value {
	return Transform(v, normalizeScalar)
}

func normalizeScalar(v Value) Value {
	if d, ok := v.(DateLike); ok {
		return String(d.ISOFormat())
	}
	return v
}
