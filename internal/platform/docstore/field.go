package docstore

import (
	"encoding/json"
	"fmt"
)

// DecodeField copies one field of the document into out, which must be a
// pointer. A missing field leaves out unchanged and reports false.
func (d *Document) DecodeField(field string, out any) (bool, error) {
	if d == nil || d.Data == nil {
		return false, nil
	}
	raw, ok := d.Data[field]
	if !ok || raw == nil {
		return false, nil
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return false, fmt.Errorf("failed to marshal field %s: %w", field, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("failed to decode field %s: %w", field, err)
	}
	return true, nil
}
