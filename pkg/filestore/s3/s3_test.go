package s3

import "testing"

func TestContentType(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"export.csv", "text/csv", true},
		{"dir/export.json", "application/json", true},
		{"export.yml", "application/yaml", true},
		{"song.mp3", "", false},
	}
	for _, tt := range tests {
		got, err := ContentType(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ContentType(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}
}
