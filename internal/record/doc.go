// Package record provides the in-memory tree parsed from a registry data file.
//
// A record is a sealed tree of Value nodes: scalars (Null, String, Int, Float,
// Bool, Timestamp), ordered sequences and keyed mappings. Parsing, the
// date normalization walk, conversion to plain Go values for schema checkers,
// and canonical JSON digests all live here. record imports nothing internal.
//
// Normalization rewrites every DateLike scalar into its ISO text form so
// that schema checkers only ever see JSON-compatible scalars:
//
//	v, err := record.ParseFile("01_Military_Aviation/f22.yaml")
//	if err != nil {
//	    return err
//	}
//	v = record.Normalize(v)
package record
