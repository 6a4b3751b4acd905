package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// InfoPair is one label→value entry of a shop card's basic-info block.
type InfoPair struct {
	Label string
	Value string
}

// InfoMap is an order-preserving string→string mapping. It serializes
// as a plain JSON object, but unlike a Go map it keeps the entries in
// insertion order so keyed editing stays stable across round-trips.
type InfoMap []InfoPair

// Get returns the value for label and whether it exists.
func (m InfoMap) Get(label string) (string, bool) {
	for _, p := range m {
		if p.Label == label {
			return p.Value, true
		}
	}
	return "", false
}

// Set updates the value for label in place, or appends a new entry.
func (m *InfoMap) Set(label, value string) {
	for i, p := range *m {
		if p.Label == label {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, InfoPair{Label: label, Value: value})
}

// Delete removes the entry for label, if present.
func (m *InfoMap) Delete(label string) {
	for i, p := range *m {
		if p.Label == label {
			*m = append((*m)[:i], (*m)[i+1:]...)
			return
		}
	}
}

// MarshalJSON writes the entries as a JSON object in slice order.
func (m InfoMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object token by token so the key order of
// the source document is preserved.
func (m *InfoMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("info: expected object, got %v", tok)
	}

	out := InfoMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("info: non-string key %v", keyTok)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("info[%s]: %w", key, err)
		}
		out = append(out, InfoPair{Label: key, Value: val})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}
