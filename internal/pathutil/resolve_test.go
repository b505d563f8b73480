package pathutil

// Path canonicalization tests

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		root string
		want string
	}{
		{
			name: "relative prefix glued onto drive-letter path",
			raw:  "./C:/proj/x.ts",
			root: "C:/proj",
			want: "C:/proj/x.ts",
		},
		{
			name: "parent prefix glued onto drive-letter path",
			raw:  "../C:/proj/x.ts",
			root: "C:/proj",
			want: "C:/proj/x.ts",
		},
		{
			name: "duplicated project root collapses to one occurrence",
			raw:  "C:/proj/C:/proj/x.ts",
			root: "C:/proj",
			want: "C:/proj/x.ts",
		},
		{
			name: "file scheme stripped",
			raw:  "file:///C:/proj/src/a.ts",
			root: "C:/proj",
			want: "C:/proj/src/a.ts",
		},
		{
			name: "file scheme on posix path",
			raw:  "file:///home/user/proj/a.go",
			root: "/home/user/proj",
			want: "/home/user/proj/a.go",
		},
		{
			name: "relative path joined with root",
			raw:  "src/a.ts",
			root: "/home/user/proj",
			want: "/home/user/proj/src/a.ts",
		},
		{
			name: "relative path with dot segments",
			raw:  "./src/../src/a.ts",
			root: "/home/user/proj",
			want: "/home/user/proj/src/a.ts",
		},
		{
			name: "backslash separators normalized",
			raw:  "C:\\proj\\src\\a.ts",
			root: "C:/proj",
			want: "C:/proj/src/a.ts",
		},
		{
			name: "absolute path untouched by root",
			raw:  "/etc/hosts",
			root: "/home/user/proj",
			want: "/etc/hosts",
		},
		{
			name: "drive root with trailing separator",
			raw:  "x.ts",
			root: "C:/proj/",
			want: "C:/proj/x.ts",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  src/a.ts \n",
			root: "/proj",
			want: "/proj/src/a.ts",
		},
		{
			name: "empty root leaves relative path relative",
			raw:  "src/a.ts",
			root: "",
			want: "src/a.ts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.raw, tt.root)
			if got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.raw, tt.root, got, tt.want)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	first := Resolve("./C:/proj/C:/proj/x.ts", "C:/proj")
	for range 10 {
		if got := Resolve("./C:/proj/C:/proj/x.ts", "C:/proj"); got != first {
			t.Fatalf("Resolve not deterministic: %q vs %q", got, first)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/b/../c", "a/c"},
		{"/a/../../b", "/b"},
		{"../a", "../a"},
		{"../../a/b", "../../a/b"},
		{"C:/a/../b", "C:/b"},
		{"C:/..", "C:/"},
		{".", "."},
		{"", ""},
		{"a//b///c", "a/b/c"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRel(t *testing.T) {
	tests := []struct {
		root string
		path string
		want string
	}{
		{"/proj", "/proj/src/a.go", "src/a.go"},
		{"/proj", "/other/a.go", "/other/a.go"},
		{"/proj", "/proj", "."},
		{"C:/proj", "C:/proj/x.ts", "x.ts"},
		{"", "/proj/a.go", "/proj/a.go"},
	}

	for _, tt := range tests {
		if got := Rel(tt.root, tt.path); got != tt.want {
			t.Errorf("Rel(%q, %q) = %q, want %q", tt.root, tt.path, got, tt.want)
		}
	}
}

func TestResolverDisplay(t *testing.T) {
	r := NewResolver("/home/user/proj")
	if got := r.Resolve("src/a.ts"); got != "/home/user/proj/src/a.ts" {
		t.Errorf("Resolve = %q", got)
	}
	if got := r.Display("/home/user/proj/src/a.ts"); got != "src/a.ts" {
		t.Errorf("Display = %q", got)
	}
	if got := r.Display("/tmp/outside.ts"); got != "/tmp/outside.ts" {
		t.Errorf("Display = %q", got)
	}
}
