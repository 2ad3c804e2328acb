package llms

import (
	"path"
	"regexp"
	"strings"
)

var titleLine = regexp.MustCompile(`(?m)^# .*`)

// JoinURL trims leading and trailing slashes from every part and joins them with "/".
// JoinURL("/", "/") is "/" and JoinURL("https://x.test", "/guide") is "https://x.test/guide".
func JoinURL(parts ...string) string {
	trimmed := make([]string, len(parts))
	for i, p := range parts {
		trimmed[i] = strings.Trim(p, "/")
	}
	return strings.Join(trimmed, "/")
}

// MarkdownPathToRoute strips a .md suffix and ensures a leading slash.
func MarkdownPathToRoute(p string) string {
	route := strings.TrimSuffix(p, ".md")
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}

// ArtifactPath maps a page route to the file path of its markdown mirror:
// "/" becomes "/index.md", "/guide/", "/guide" and "/guide.html" become "/guide.md".
func ArtifactPath(route string) string {
	pathname := strings.TrimSuffix(route, ".html")
	switch {
	case pathname == "/":
		pathname = "/index"
	case strings.HasSuffix(pathname, "/"):
		pathname = pathname[:len(pathname)-1]
	}
	return path.Clean("/" + pathname + ".md")
}

// TitleLine returns the text of the first level one heading, or "".
func TitleLine(markdown string) string {
	match := titleLine.FindString(markdown)
	if match == "" {
		return ""
	}
	return strings.TrimSpace(strings.Replace(match, "#", "", 1))
}
