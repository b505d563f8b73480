// Package pathutil canonicalizes the heterogeneous path spellings that appear
// in model output into one absolute path per logical file. Resolution is purely
// lexical: no filesystem access, fully unit-testable in isolation.
package pathutil

import (
	"regexp"
	"strings"
)

var (
	// driveAbsRe matches a Windows drive-letter absolute path ("C:/" or "C:\").
	driveAbsRe = regexp.MustCompile(`^[A-Za-z]:(?:[/\\]|$)`)

	// relBeforeDriveRe matches one or more "./" or "../" prefixes immediately
	// followed by a drive-letter absolute pattern. Upstream prompt plumbing is
	// known to concatenate a relative prefix onto an already-absolute path;
	// the prefix carries no meaning and is dropped.
	relBeforeDriveRe = regexp.MustCompile(`^(?:\.\.?[/\\])+([A-Za-z]:[/\\])`)

	// schemeSlashDriveRe matches the leftover slash of a "file:///C:/..." URL.
	schemeSlashDriveRe = regexp.MustCompile(`^/([A-Za-z]:[/\\])`)
)

// Resolver resolves raw model-supplied paths against a fixed project root.
type Resolver struct {
	root string
}

// NewResolver creates a Resolver for the given project root. An empty root
// means relative paths resolve against the process working directory, which
// callers supply via ResolveAgainst.
func NewResolver(projectRoot string) *Resolver {
	return &Resolver{root: Normalize(projectRoot)}
}

// Root returns the normalized project root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve canonicalizes rawPath against the resolver's project root.
func (r *Resolver) Resolve(rawPath string) string {
	return Resolve(rawPath, r.root)
}

// Display returns the path shown in review UIs: relative to the project root
// when the path lives under it, otherwise the absolute path unchanged.
func (r *Resolver) Display(absPath string) string {
	return Rel(r.root, absPath)
}

// Resolve canonicalizes a raw path spelling into one absolute path.
//
// Steps, in order:
//  1. strip a leading "file://" scheme
//  2. strip a relative-directory prefix glued onto a drive-letter absolute path
//  3. normalize separators and collapse "."/".." segments
//  4. collapse a consecutively repeated project root (root+sep+root)
//  5. join with projectRoot if the result is still not absolute
func Resolve(rawPath, projectRoot string) string {
	p := strings.TrimSpace(rawPath)

	if rest, ok := strings.CutPrefix(p, "file://"); ok {
		p = schemeSlashDriveRe.ReplaceAllString(rest, "$1")
	}

	p = relBeforeDriveRe.ReplaceAllString(p, "$1")
	p = Normalize(p)

	root := Normalize(projectRoot)
	if root != "" && root != "." {
		dup := root + "/" + root
		for strings.Contains(p, dup) {
			p = strings.Replace(p, dup, root, 1)
		}
	}

	if !IsAbs(p) && root != "" && root != "." {
		p = Normalize(root + "/" + p)
	}

	return p
}

// Rel returns path relative to root (forward slashes) when path is inside
// root, and path unchanged otherwise.
func Rel(root, path string) string {
	root = Normalize(root)
	path = Normalize(path)
	if root == "" || root == "." {
		return path
	}
	if path == root {
		return "."
	}
	if rest, ok := strings.CutPrefix(path, root+"/"); ok {
		return rest
	}
	return path
}

// IsAbs reports whether the normalized path is absolute, accepting both POSIX
// and drive-letter spellings regardless of the host OS.
func IsAbs(path string) bool {
	return strings.HasPrefix(path, "/") || driveAbsRe.MatchString(path)
}

// Normalize converts separators to forward slashes and collapses "." and ".."
// segments lexically. Unrooted ".." segments at the start of a relative path
// are preserved; ".." above the root of an absolute path is dropped.
func Normalize(path string) string {
	p := strings.ReplaceAll(strings.TrimSpace(path), "\\", "/")
	if p == "" {
		return ""
	}

	rooted := strings.HasPrefix(p, "/")
	var drive string
	if driveAbsRe.MatchString(p) {
		drive = p[:2]
		p = p[2:]
	}

	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
			} else if !rooted && drive == "" {
				out = append(out, "..")
			}
		default:
			out = append(out, seg)
		}
	}

	joined := strings.Join(out, "/")
	switch {
	case drive != "":
		return drive + "/" + joined
	case rooted:
		return "/" + joined
	case joined == "":
		return "."
	}
	return joined
}
