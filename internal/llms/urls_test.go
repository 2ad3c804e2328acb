package llms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestJoinURL(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"/", "/guide"}, "/guide"},
		{[]string{"/", "/"}, "/"},
		{[]string{"https://x.test", "/"}, "https://x.test/"},
		{[]string{"https://x.test/", "/guide.md"}, "https://x.test/guide.md"},
		{[]string{"https://x.test", "/docs/", "/a/"}, "https://x.test/docs/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinURL(tt.parts...), "JoinURL(%q)", tt.parts)
	}
}

func TestMarkdownPathToRoute(t *testing.T) {
	assert.Equal(t, "/posts/1", MarkdownPathToRoute("posts/1.md"))
	assert.Equal(t, "/posts/1", MarkdownPathToRoute("/posts/1"))
	assert.Equal(t, "/", MarkdownPathToRoute(""))
}

func TestArtifactPath(t *testing.T) {
	tests := map[string]string{
		"/":            "/index.md",
		"/guide/":      "/guide.md",
		"/guide":       "/guide.md",
		"/guide.html":  "/guide.md",
		"/a/b/":        "/a/b.md",
		"/a/b.html":    "/a/b.md",
		"/index.html":  "/index.md",
		"/guide/a.htm": "/guide/a.htm.md",
	}
	for route, want := range tests {
		assert.Equal(t, want, ArtifactPath(route), route)
	}
}

func TestArtifactPath_RouteFormsAgree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		route := "/" + rapid.StringMatching(`[a-z]{1,8}(/[a-z]{1,8}){0,2}`).Draw(t, "route")
		want := ArtifactPath(route)
		if got := ArtifactPath(route + "/"); got != want {
			t.Fatalf("trailing slash: %q != %q", got, want)
		}
		if got := ArtifactPath(route + ".html"); got != want {
			t.Fatalf("html suffix: %q != %q", got, want)
		}
	})
}

func TestTitleLine(t *testing.T) {
	assert.Equal(t, "Home", TitleLine("# Home"))
	assert.Equal(t, "Guide", TitleLine("---\ntitle: x\n---\n\nintro\n#  Guide  \n# Second"))
	assert.Equal(t, "", TitleLine("## Not a title\n#NoSpace"))
	assert.Equal(t, "", TitleLine(""))
}
