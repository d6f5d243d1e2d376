package codec

import "testing"

func TestTaggable(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"auto-tests", true},
		{"source_dir", true},
		{"line.length", true},
		{"with space", true},
		{"größe", true},
		{"", false},
		{"-", false},
		{"a,b", false},
		{`q"k`, false},
		{"it's", false},
		{`back\slash`, false},
		{"tab\tkey", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := taggable(tt.key); got != tt.want {
				t.Errorf("taggable(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
