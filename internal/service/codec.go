package service

import (
	"github.com/goccy/go-json"
)

// jsonCodec is a plain-JSON Connect codec. The service has no generated
// schema: its wire contract is the JSON documents of the external API, so
// requests and responses are ordinary tagged structs.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
