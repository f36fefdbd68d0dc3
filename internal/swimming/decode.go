package swimming

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"

	"github.com/charmbracelet/log"
)

// envelopeKeys are tried in order when the portal wraps the list in an object.
var envelopeKeys = []string{"results", "items", "data", "persons", "content"}

// decodePeople accepts either a bare JSON array of persons or an object
// holding such an array. Elements that do not decode as a person are skipped;
// only a malformed outer document is an error.
func decodePeople(body []byte) ([]Person, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response body")
	}

	switch trimmed[0] {
	case '[':
		return decodeArray(trimmed)
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		raw, ok := findArray(envelope)
		if !ok {
			return nil, errors.New("response object holds no person list")
		}
		return decodeArray(raw)
	default:
		return nil, errors.New("response is neither a JSON array nor an object")
	}
}

func decodeArray(data []byte) ([]Person, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, err
	}
	people := make([]Person, 0, len(elements))
	for i, raw := range elements {
		var p Person
		if err := json.Unmarshal(raw, &p); err != nil {
			log.Warn("Skipping undecodable record", "index", i, "error", err)
			continue
		}
		people = append(people, p)
	}
	return people, nil
}

func findArray(envelope map[string]json.RawMessage) (json.RawMessage, bool) {
	for _, key := range envelopeKeys {
		if raw, ok := envelope[key]; ok && isArray(raw) {
			return raw, true
		}
	}
	keys := make([]string, 0, len(envelope))
	for key := range envelope {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if isArray(envelope[key]) {
			return envelope[key], true
		}
	}
	return nil, false
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
