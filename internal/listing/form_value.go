package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FormValue is a text input. Clients may send it as a JSON string, a JSON
// number or null.
type FormValue string

// Trimmed returns the value without surrounding whitespace.
func (v FormValue) Trimmed() string {
	return strings.TrimSpace(string(v))
}

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("form value must be a string or a number: %s", data)
	}
	*v = FormValue(n.String())
	return nil
}
