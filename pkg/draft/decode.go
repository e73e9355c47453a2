package draft

import (
	"fmt"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Decode maps a slice onto a typed struct using "mapstructure" tags.
// Input is weakly typed so YAML/JSON-sourced numbers and strings convert.
func Decode(s domain.Slice, out any) error {
	return decode(map[string]any(s), out)
}

// DecodeDraft maps a whole draft onto a struct whose fields are tagged with
// slice keys.
func DecodeDraft(d domain.Draft, out any) error {
	raw := make(map[string]any, len(d))
	for key, slice := range d {
		raw[key] = map[string]any(slice)
	}
	return decode(raw, out)
}

// Encode flattens a typed struct back into a slice.
func Encode(in any) (domain.Slice, error) {
	var raw map[string]any
	if err := decode(in, &raw); err != nil {
		return nil, err
	}
	return domain.Slice(raw), nil
}

func decode(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("failed to decode draft: %w", err)
	}
	return nil
}
