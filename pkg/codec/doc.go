// Package codec provides field-level JSON adapters for API payloads
// that encode values in non-native shapes.
//
// Base62 covers APIs that issue compact base-62 strings for numeric
// identifiers. JSONString covers APIs that embed a whole JSON document
// inside a JSON string field. Both plug into encoding/json through the
// standard marshaler interfaces, so they compose with regular struct
// tags and with each other:
//
//	type Envelope struct {
//		ID      codec.Base62                    `json:"id"`
//		Payload codec.JSONString[[]codec.Base62] `json:"payload"`
//	}
package codec
