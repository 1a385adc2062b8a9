package projectsearch

import (
	"strings"

	stdpath "path"
)

// splitPatternList splits a semicolon- or comma-separated pattern list into
// its elements, dropping empty entries.
func splitPatternList(patterns string) []string {
	if patterns == "" {
		return nil
	}
	fields := strings.FieldsFunc(patterns, func(r rune) bool {
		return r == ';' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// matchesPattern reports whether path (forward-slash separated) matches a
// single glob element: if the element contains '*' or '?' it is matched
// against the basename and the full path using path.Match wildcards;
// otherwise it is a substring match against the lowercased full path.
func matchesPattern(pattern, path string) bool {
	if strings.ContainsAny(pattern, "*?") {
		base := path
		if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
			base = path[idx+1:]
		}
		if ok, _ := stdpath.Match(pattern, base); ok {
			return true
		}
		ok, _ := stdpath.Match(pattern, path)
		return ok
	}
	return strings.Contains(strings.ToLower(path), strings.ToLower(pattern))
}

// admitted reports whether path is admitted by the include/exclude glob
// lists: excluded if any exclude pattern matches; included if there are
// no include patterns, or at least one matches.
func admitted(path string, includeGlobs, excludeGlobs []string) bool {
	for _, pat := range excludeGlobs {
		if matchesPattern(pat, path) {
			return false
		}
	}
	if len(includeGlobs) == 0 {
		return true
	}
	for _, pat := range includeGlobs {
		if matchesPattern(pat, path) {
			return true
		}
	}
	return false
}
