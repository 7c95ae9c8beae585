package updater

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{"v0.1.0", "v0.1.0", 0},
		{"v0.2.0", "v0.1.9", 1},
		{"v0.1.0", "v0.1.1", -1},
		{"v0.10.0", "v0.2.0", 1}, // numeric, not lexicographic
		{"v1.0", "v1.0.0", 0},
		{"v1.0.1", "v1.0", 1},
		{"0.1.0", "v0.1.0", 0}, // prefix optional
	}

	for _, tt := range tests {
		if got := compareVersions(tt.v1, tt.v2); got != tt.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.v1, tt.v2, got, tt.want)
		}
	}
}
