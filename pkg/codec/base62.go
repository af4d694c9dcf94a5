package codec

import (
	"fmt"

	"github.com/jxskiss/base62"
)

// Base62 is a uint64 that travels as a base-62-encoded string.
type Base62 uint64

// String returns the base-62 encoding.
func (b Base62) String() string {
	return string(base62.FormatUint(uint64(b)))
}

// MarshalText implements encoding.TextMarshaler.
func (b Base62) MarshalText() ([]byte, error) {
	return base62.FormatUint(uint64(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Base62) UnmarshalText(text []byte) error {
	n, err := base62.ParseUint(text)
	if err != nil {
		return fmt.Errorf("parse base62 %q: %w", text, err)
	}
	*b = Base62(n)
	return nil
}
