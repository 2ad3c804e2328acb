package llms

import "strings"

// ClientPageData is the lightweight per-artifact record exposed to client code.
type ClientPageData struct {
	Path   string `json:"path"`
	URL    string `json:"url"`
	LLMURL string `json:"llmUrl"`
}

// ClientConfig is stored under ThemeConfigKey in the site theme state.
type ClientConfig struct {
	PageData []ClientPageData `json:"pageData"`
}

// ThemeConfigKey is the theme state key holding the ClientConfig.
const ThemeConfigKey = "llmstxt"

// ClientData strips content and frontmatter from artifacts.
func ClientData(artifacts []Artifact) ClientConfig {
	data := make([]ClientPageData, len(artifacts))
	for i, a := range artifacts {
		data[i] = ClientPageData{Path: a.Path, URL: a.URL, LLMURL: a.LLMURL}
	}
	return ClientConfig{PageData: data}
}

// LookupRoute finds the page data for a route path. A trailing slash is ignored.
func LookupRoute(data []ClientPageData, routePath string) (ClientPageData, bool) {
	routePath = strings.TrimSuffix(routePath, "/")
	for _, d := range data {
		if d.URL == routePath {
			return d, true
		}
	}
	return ClientPageData{}, false
}
