package record

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMultipleDocuments is returned when a data file holds more than one YAML document.
var ErrMultipleDocuments = errors.New("expected a single document in the stream")

const mergeTag = "!!merge"

// ParseFile opens, parses and closes the YAML data file at path.
func ParseFile(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes exactly one YAML document from r into a record tree.
// An empty stream yields Null.
func Parse(r io.Reader) (Value, error) {
	dec := yaml.NewDecoder(r)

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Null{}, nil
		}
		return nil, err
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, ErrMultipleDocuments
	case !errors.Is(err, io.EOF):
		return nil, err
	}

	return fromNode(&doc)
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (Value, error) {
	return Parse(bytes.NewReader(data))
}

// ErrExcessiveAliasing is returned when alias expansion dominates a document,
// as in nested "billion laughs" payloads.
var ErrExcessiveAliasing = errors.New("document contains excessive aliasing")

// Alias budget thresholds, matching the decoder limits yaml.v3 applies when
// decoding into Go values.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

func allowedAliasRatio(built int) float64 {
	switch {
	case built <= aliasRatioRangeLow:
		return 0.99
	case built >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(built-aliasRatioRangeLow)/aliasRatioRange)
	}
}

// converter turns a yaml.Node tree into a record tree. It tracks the nodes
// under construction so that an alias into its own ancestry is an error,
// and counts nodes built through aliases against the alias budget.
type converter struct {
	building   map[*yaml.Node]bool
	built      int
	aliased    int
	aliasDepth int
}

func fromNode(n *yaml.Node) (Value, error) {
	c := &converter{building: make(map[*yaml.Node]bool)}
	return c.node(n)
}

func (c *converter) node(n *yaml.Node) (Value, error) {
	c.built++
	if c.aliasDepth > 0 {
		c.aliased++
	}
	if c.aliased > 100 && c.built > 1000 &&
		float64(c.aliased)/float64(c.built) > allowedAliasRatio(c.built) {
		return nil, ErrExcessiveAliasing
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return c.node(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
		}
		if c.building[n.Alias] {
			return nil, fmt.Errorf("line %d: anchor %q references itself", n.Line, n.Value)
		}
		c.aliasDepth++
		defer func() { c.aliasDepth-- }()
		return c.node(n.Alias)
	case yaml.SequenceNode:
		c.building[n] = true
		defer delete(c.building, n)

		seq := make(Sequence, len(n.Content))
		for i, child := range n.Content {
			v, err := c.node(child)
			if err != nil {
				return nil, err
			}
			seq[i] = v
		}
		return seq, nil
	case yaml.MappingNode:
		c.building[n] = true
		defer delete(c.building, n)

		return c.mapping(n)
	case yaml.ScalarNode:
		return fromScalar(n)
	case 0:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// mapping builds a Mapping, rejecting duplicate keys. Keys merged in with
// `<<` never override keys written explicitly in the mapping.
func (c *converter) mapping(n *yaml.Node) (Value, error) {
	m := make(Mapping, len(n.Content)/2)
	var merges []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == mergeTag {
			merges = append(merges, valNode)
			continue
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		key := keyNode.Value
		if _, dup := m[key]; dup {
			return nil, fmt.Errorf("line %d: mapping key %q already defined", keyNode.Line, key)
		}
		v, err := c.node(valNode)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}

	for _, src := range merges {
		if err := c.mergeInto(m, src); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (c *converter) mergeInto(dst Mapping, src *yaml.Node) error {
	v, err := c.node(src)
	if err != nil {
		return err
	}
	switch s := v.(type) {
	case Mapping:
		for k, child := range s {
			if _, ok := dst[k]; !ok {
				dst[k] = child
			}
		}
		return nil
	case Sequence:
		for _, elem := range s {
			sm, ok := elem.(Mapping)
			if !ok {
				return fmt.Errorf("line %d: merge sequence must contain only mappings", src.Line)
			}
			for k, child := range sm {
				if _, ok := dst[k]; !ok {
					dst[k] = child
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value must be a mapping or a sequence of mappings", src.Line)
	}
}

// yaml11Bools are the plain-scalar boolean spellings of YAML 1.1 that
// YAML 1.2 resolves as strings. Registry files were written against 1.1.
var yaml11Bools = map[string]bool{
	"yes": true, "Yes": true, "YES": true,
	"no": false, "No": false, "NO": false,
	"on": true, "On": true, "ON": true,
	"off": false, "Off": false, "OFF": false,
}

func fromScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		// Out of int64 range; keep the magnitude as a float.
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return Float(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, err
		}
		dateOnly, zoned := timestampShape(n.Value)
		return Timestamp{Time: t, DateOnly: dateOnly, Zoned: zoned}, nil
	default:
		if n.Style == 0 && n.ShortTag() == "!!str" {
			if b, ok := yaml11Bools[n.Value]; ok {
				return Bool(b), nil
			}
		}
		return String(n.Value), nil
	}
}

// timestampShape reports whether a YAML timestamp literal has no time of day,
// and whether its time of day carries a zone designator.
func timestampShape(lit string) (dateOnly, zoned bool) {
	lit = strings.TrimSpace(lit)
	sep := strings.IndexAny(lit, "Tt ")
	if sep < 0 {
		return true, false
	}
	clock := lit[sep+1:]
	return false, strings.ContainsAny(clock, "Zz+-")
}
