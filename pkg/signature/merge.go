package signature

import (
	"encoding/json"
	"fmt"
)

// MergeJSON overlays the keys present in data onto cfg. Keys absent from the
// document keep their current values. A "social" key replaces the whole list,
// including when the document lists fewer links than cfg holds.
func MergeJSON(cfg *Config, data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("signature: merge json: %w", err)
	}
	if _, ok := keys["social"]; ok {
		// encoding/json decodes into existing slice elements
		cfg.Social = nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("signature: merge json: %w", err)
	}
	return nil
}
