package pagecache

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEntry_Age(t *testing.T) {
	entry := &Entry{CachedAt: time.Now().Add(-2 * time.Minute)}

	age := entry.Age()
	if age < 2*time.Minute || age > 2*time.Minute+time.Second {
		t.Errorf("Age() = %v, want ~2m", age)
	}
}

func TestEntry_TotalOmittedWhenUnknown(t *testing.T) {
	entry := Entry{
		Items:    json.RawMessage(`[1,2,3]`),
		CachedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, present := fields["total"]; present {
		t.Error("total should be omitted when the source reported none")
	}
}
