package pagecache

import "testing"

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "simple keyspace",
			key:  Key{Keyspace: "users", Offset: 0},
			want: "apikit:pages:v1:users:0",
		},
		{
			name: "nested keyspace",
			key:  Key{Keyspace: "github:issues:golang", Offset: 40},
			want: "apikit:pages:v1:github:issues:golang:40",
		},
		{
			name: "large offset",
			key:  Key{Keyspace: "orders", Offset: 1_000_000},
			want: "apikit:pages:v1:orders:1000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.key.String()
			if got != tt.want {
				t.Errorf("Key.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyspacePattern(t *testing.T) {
	got := KeyspacePattern("github:issues:golang")
	want := "apikit:pages:v1:github:issues:golang:*"
	if got != want {
		t.Errorf("KeyspacePattern() = %v, want %v", got, want)
	}
}
