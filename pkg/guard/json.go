package guard

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"slices"
)

var errTrailingData = errors.New("unexpected data after top-level value")

// decodeJSON decodes exactly one JSON value. Numbers stay json.Number so no
// precision is lost before the schema sees them.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}

// collectStrings appends every string in v, object keys included, walking
// objects in key order.
func collectStrings(v any, dst []string) []string {
	switch t := v.(type) {
	case string:
		dst = append(dst, t)
	case []any:
		for _, e := range t {
			dst = collectStrings(e, dst)
		}
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(t)) {
			dst = append(dst, k)
			dst = collectStrings(t[k], dst)
		}
	}
	return dst
}
