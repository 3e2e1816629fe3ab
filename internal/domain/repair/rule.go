package repair

import (
	"fmt"
	"path"
	"strings"
)

// Rule recognizes one error signature and emits one corrective script.
// Implementations must be stateless: Matches is a pure predicate and
// never fails, and GenerateScript has no side effects. GenerateScript
// returns false when the rule matched but could not build a script
// (typically because no path could be extracted from the log).
type Rule interface {
	// Name identifies the rule in plans and diagnostics output.
	Name() string

	// Matches reports whether the log text carries this rule's signature.
	Matches(log string) bool

	// GenerateScript produces a shell-executable remediation command.
	// It is only called after Matches returned true for the same log.
	GenerateScript(log string) (string, bool)
}

// PermissionErrorRule repairs "Permission denied" failures by resetting
// permissions on the offending path. When a tenant is set, ownership is
// restored to the tenant's service account first.
type PermissionErrorRule struct {
	Tenant string
}

func (r PermissionErrorRule) Name() string { return "permission-error" }

func (r PermissionErrorRule) Matches(log string) bool {
	return strings.Contains(log, "Permission denied") || strings.Contains(log, "PermissionError")
}

func (r PermissionErrorRule) GenerateScript(log string) (string, bool) {
	p, ok := ExtractPath(log)
	if !ok {
		return "", false
	}
	if r.Tenant != "" {
		return fmt.Sprintf("chown -R %s_user:%s_group %s\nchmod -R 755 %s", r.Tenant, r.Tenant, p, p), true
	}
	return fmt.Sprintf("chmod -R 755 %s", p), true
}

// MissingFileRule repairs "No such file or directory" failures by
// recreating the missing directory structure. The script targets the
// parent directory because the log usually names the file itself.
type MissingFileRule struct{}

func (r MissingFileRule) Name() string { return "missing-file" }

func (r MissingFileRule) Matches(log string) bool {
	return strings.Contains(log, "No such file or directory")
}

func (r MissingFileRule) GenerateScript(log string) (string, bool) {
	p, ok := ExtractPath(log)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("mkdir -p %s", path.Dir(p)), true
}

// CorruptionRule handles corrupted backup entries. The generated script
// quarantines the damaged file so a later restore does not pick it up.
type CorruptionRule struct{}

func (r CorruptionRule) Name() string { return "corruption" }

func (r CorruptionRule) Matches(log string) bool {
	lower := strings.ToLower(log)
	return strings.Contains(lower, "corrupt") ||
		strings.Contains(lower, "bad checksum") ||
		strings.Contains(lower, "crc mismatch")
}

func (r CorruptionRule) GenerateScript(log string) (string, bool) {
	p, ok := ExtractPath(log)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("mv %s %s.quarantine && sha256sum %s.quarantine", p, p, p), true
}
