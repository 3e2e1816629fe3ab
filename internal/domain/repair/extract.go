package repair

import "regexp"

// pathRegex captures filesystem paths (Linux/Windows), optionally wrapped
// in single or double quotes. Quoted paths may not contain whitespace.
var pathRegex = regexp.MustCompile(`['"]?([a-zA-Z]:[\\/][^'"\s]+|/[^\s'"]+)['"]?`)

// ExtractPath returns the leftmost path-shaped token in the log text.
// The second return value is false when no such token exists; callers
// must treat that as a normal outcome, not a failure.
func ExtractPath(log string) (string, bool) {
	m := pathRegex.FindStringSubmatch(log)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}
