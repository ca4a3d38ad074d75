package entry

import "encoding/json"

// marshalTagged renders known (a struct with json tags, no "type" field) plus
// the Type discriminator and any extra vendor fields into a single flat JSON
// object. extra never overrides a known field.
func marshalTagged(typ Type, known any, extra map[string]any) ([]byte, error) {
	knownBytes, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(knownBytes, &m); err != nil {
		return nil, err
	}
	typeBytes, err := json.Marshal(typ)
	if err != nil {
		return nil, err
	}
	m["type"] = typeBytes
	for k, v := range extra {
		if _, exists := m[k]; exists {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		m[k] = raw
	}
	return json.Marshal(m)
}

// unmarshalTagged fills known from data, then collects every JSON field not
// named in knownKeys (and not "type") into an extra map. Returns a nil map
// when there are no extension fields, so callers can round-trip without
// emitting an empty "extra" object.
func unmarshalTagged(data []byte, known any, knownKeys []string) (map[string]any, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	knownSet := make(map[string]bool, len(knownKeys)+1)
	knownSet["type"] = true
	for _, k := range knownKeys {
		knownSet[k] = true
	}
	var extra map[string]any
	for k, v := range all {
		if knownSet[k] {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra, nil
}
