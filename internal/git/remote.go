package git

import (
	"net/url"
	"strings"
)

// WebURL converts a remote URL into the https URL of the hosted repository, e.g.
//
//	git@github.com:owner/repo.git       -> https://github.com/owner/repo
//	ssh://git@github.com/owner/repo.git -> https://github.com/owner/repo
//	https://token@github.com/owner/repo -> https://github.com/owner/repo
//
// Local paths and unparseable URLs yield an empty string.
func WebURL(remote string) string {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return ""
	}

	if isSCPLike(remote) {
		hostPart, path, _ := strings.Cut(remote, ":")
		if at := strings.LastIndex(hostPart, "@"); at >= 0 {
			hostPart = hostPart[at+1:]
		}
		return "https://" + hostPart + "/" + cleanRepoPath(path)
	}

	u, err := url.Parse(remote)
	if err != nil || u.Host == "" {
		return ""
	}
	switch u.Scheme {
	case "http", "https", "ssh", "git", "git+ssh":
	default:
		return ""
	}

	host := u.Hostname()
	if u.Scheme == "http" || u.Scheme == "https" {
		host = u.Host
	}
	return "https://" + host + "/" + cleanRepoPath(u.Path)
}

// isSSHURL checks if a URL is an SSH URL.
// Detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(remote string) bool {
	return strings.HasPrefix(remote, "git@") ||
		strings.HasPrefix(remote, "ssh://") ||
		strings.HasPrefix(remote, "git+ssh://")
}

// isSCPLike matches user@host:path remotes, which have no scheme.
func isSCPLike(remote string) bool {
	if strings.Contains(remote, "://") {
		return false
	}
	colon := strings.Index(remote, ":")
	slash := strings.Index(remote, "/")
	return isSSHURL(remote) || (colon > 0 && (slash < 0 || colon < slash))
}

func cleanRepoPath(path string) string {
	path = strings.Trim(path, "/")
	return strings.TrimSuffix(path, ".git")
}
