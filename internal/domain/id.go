package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a remote identifier. Catalog and order services send either JSON
// strings or numbers; both decode to the same text form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*id = ID(t)
	case json.Number:
		*id = ID(t.String())
	case nil:
		*id = ""
	default:
		return fmt.Errorf("id: want string or number, got %s", b)
	}
	return nil
}
