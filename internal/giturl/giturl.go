// pattern: Functional Core
package giturl

import (
	"net/url"
	"regexp"
	"strings"
)

// Patterns cover the common transport forms for hosted repositories.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://[a-zA-Z0-9.-]+/[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+(?:\.git)?(?:/\S*)?`),
	regexp.MustCompile(`(?i)git@[a-zA-Z0-9.-]+:[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+(?:\.git)?`),
	regexp.MustCompile(`(?i)ssh://git@[a-zA-Z0-9.-]+(?::[0-9]+)?/[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+(?:\.git)?`),
	regexp.MustCompile(`(?i)git://[a-zA-Z0-9.-]+/[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+(?:\.git)?`),
}

var (
	scpLikeRe = regexp.MustCompile(`^git@([^:]+):(.+)$`)
	sshURLRe  = regexp.MustCompile(`^ssh://git@([^:/]+)(?::[0-9]+)?/(.+)$`)
)

// Paths under a repository that point at project pages rather than the
// repository itself.
var excludedPathSegments = []string{
	"/issues/",
	"/pull/",
	"/releases/",
	"/wiki/",
	"/settings/",
	"/actions/",
	"/projects/",
	"/security/",
	"/pulse/",
	"/graphs/",
}

// ExtractURLs finds repository URLs in free-form text, normalized to the
// https form and deduplicated in order of first appearance.
func ExtractURLs(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, pattern := range urlPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			normalized := Normalize(match)
			if normalized == "" || !IsValid(normalized) || seen[normalized] {
				continue
			}
			seen[normalized] = true
			out = append(out, normalized)
		}
	}
	return out
}

// Normalize rewrites any supported transport form to a bare https URL
// without a .git suffix, query, or fragment.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	raw = strings.TrimRight(raw, "/")
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}

	switch {
	case strings.HasPrefix(raw, "git@"):
		if m := scpLikeRe.FindStringSubmatch(raw); m != nil {
			raw = "https://" + m[1] + "/" + strings.TrimSuffix(m[2], ".git")
		}
	case strings.HasPrefix(raw, "ssh://git@"):
		if m := sshURLRe.FindStringSubmatch(raw); m != nil {
			raw = "https://" + m[1] + "/" + strings.TrimSuffix(m[2], ".git")
		}
	case strings.HasPrefix(raw, "git://"):
		raw = "https://" + strings.TrimPrefix(raw, "git://")
		raw = strings.TrimSuffix(raw, ".git")
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		raw = strings.TrimSuffix(raw, ".git")
	}

	return raw
}

// IsValid reports whether a normalized URL plausibly names a repository:
// it needs a host, at least an owner/name path, and must not point at a
// project subpage.
func IsValid(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme == "" || parsed.Host == "" || parsed.Path == "" {
		return false
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 {
		return false
	}

	for _, segment := range excludedPathSegments {
		if strings.Contains(parsed.Path, segment) {
			return false
		}
	}
	return true
}

// RepoName extracts the repository name from a normalized URL.
func RepoName(raw string) string {
	if parsed, err := url.Parse(raw); err == nil {
		parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(parts) >= 2 {
			return parts[len(parts)-1]
		}
	}
	if i := strings.LastIndexByte(raw, '/'); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

// Domain extracts the host from a normalized URL for display.
func Domain(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}
	return parsed.Host
}

// CloneURL returns the form passed to git clone, with the .git suffix
// restored.
func CloneURL(normalized string) string {
	if normalized == "" || strings.HasSuffix(normalized, ".git") {
		return normalized
	}
	return normalized + ".git"
}
