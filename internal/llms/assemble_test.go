package llms

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
)

func threePages() []Page {
	return []Page{
		{URL: "/guide", Src: "# Guide"},
		{URL: "/contributors", Src: "# Contributors"},
		{URL: "/", Src: "# Home"},
	}
}

func paths(artifacts []Artifact) []string {
	out := make([]string, len(artifacts))
	for i, a := range artifacts {
		out[i] = a.Path
	}
	return out
}

func TestBuild_EndToEnd(t *testing.T) {
	opts := DefaultOptions()
	opts.Hostname = "https://x.test"

	got, err := Build(context.Background(), threePages(), StaticHost{}, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"/llms.txt", "/index.md", "/contributors.md", "/guide.md", "/llms-full.txt"}, paths(got))

	home := got[1]
	assert.Equal(t, "https://x.test/", home.URL)
	assert.Equal(t, "https://x.test/index.md", home.LLMURL)
	assert.Equal(t, "Home", home.Title)
	assert.Equal(t, "---\nURL: \"https://x.test/\"\nLLMS_URL: \"https://x.test/index.md\"\n---\n\n# Home", home.Content)

	full := got[4]
	assert.Equal(t, "https://x.test/llms-full.txt", full.URL)
	assert.Equal(t, "Home", full.Title)
	assert.Equal(t, strings.Join([]string{got[1].Content, got[2].Content, got[3].Content}, "\n\n"), full.Content)
	assert.Contains(t, full.Content, `URL: "https://x.test/contributors"`)
	v, _ := full.Frontmatter.Get(KeyLLMSURL)
	assert.Equal(t, "https://x.test/llms-full.txt", v)

	index := got[0]
	assert.Equal(t, "Table of contents", index.Title)
	assert.Equal(t, "https://x.test/llms.txt", index.LLMURL)
	assert.Equal(t, "# Table of contents\n\n"+
		"## Web links\n\n"+
		"- [Home](https://x.test/)\n"+
		"- [Contributors](https://x.test/contributors)\n"+
		"- [Guide](https://x.test/guide)\n\n"+
		"## LLMs links\n\n"+
		"- [Home](https://x.test/index.md)\n"+
		"- [Contributors](https://x.test/contributors.md)\n"+
		"- [Guide](https://x.test/guide.md)", index.Content)
}

func TestAssemble_DerivedURLFieldsWin(t *testing.T) {
	fm, err := frontmatter.ParseFields([]byte("title: Guide Page\nURL: nope\ntags: [a]"))
	require.NoError(t, err)
	page := Page{URL: "/guide", Src: "---\ntitle: Guide Page\nURL: nope\ntags: [a]\n---\n# Guide", Frontmatter: fm}

	asm := Assemble([]Page{page}, DefaultOptions())
	rec := asm.Records[0]

	assert.Equal(t, []string{"URL", "LLMS_URL", "title", "tags"}, rec.Frontmatter.Keys())
	assert.Equal(t, "Guide Page", rec.Title)
	assert.Equal(t, "---\nURL: \"/guide\"\nLLMS_URL: \"/guide.md\"\ntitle: \"Guide Page\"\ntags:\n  - \"a\"\n---\n\n# Guide", rec.Content)
	// the page's own fields are untouched
	v, _ := page.Frontmatter.Get("URL")
	assert.Equal(t, "nope", v)
}

func TestAssemble_TitleFallbacks(t *testing.T) {
	layout := frontmatter.NewFields()
	layout.Set("layout", "home")
	layout.Set("title", "")

	asm := Assemble([]Page{
		{URL: "/b", Src: "no heading", Frontmatter: layout},
		{URL: "/a", Src: ""},
	}, DefaultOptions())

	require.Len(t, asm.Records, 2)
	assert.Equal(t, "", asm.Records[0].Title)
	assert.Equal(t, "---\nURL: \"/a\"\nLLMS_URL: \"/a.md\"\n---\n\n", asm.Records[0].Content)
	assert.Equal(t, "home", asm.Records[1].Title)
}

func TestAssemble_Toggles(t *testing.T) {
	base := DefaultOptions()

	noIndex := base
	noIndex.LlmsFile.Enabled = false
	assert.Equal(t, []string{"/index.md", "/contributors.md", "/guide.md", "/llms-full.txt"},
		paths(Assemble(threePages(), noIndex).Artifacts))

	noFull := base
	noFull.LlmsFullFile = false
	assert.Equal(t, []string{"/llms.txt", "/index.md", "/contributors.md", "/guide.md"},
		paths(Assemble(threePages(), noFull).Artifacts))

	noMD := base
	noMD.MDFiles = false
	asm := Assemble(threePages(), noMD)
	assert.Equal(t, []string{"/llms.txt", "/llms-full.txt"}, paths(asm.Artifacts))
	assert.Len(t, asm.Records, 3)
}

func TestBuild_MDFilesOffStillIndexesPages(t *testing.T) {
	opts := DefaultOptions()
	opts.MDFiles = false

	got, err := Build(context.Background(), threePages(), StaticHost{SiteDescription: "My docs  \n"}, opts)
	require.NoError(t, err)
	require.Equal(t, "/llms.txt", got[0].Path)
	assert.Equal(t, "# Table of contents\n\nMy docs\n\n## Web links\n\n- [Home](/)\n- [Contributors](/contributors)\n- [Guide](/guide)", got[0].Content)
}

func TestBuild_IndexWithoutTOCIsEmpty(t *testing.T) {
	opts := DefaultOptions()
	opts.LlmsFile = LlmsFile{Enabled: true, IndexTOC: TOCNone}

	got, err := Build(context.Background(), threePages(), nil, opts)
	require.NoError(t, err)
	assert.Equal(t, "/llms.txt", got[0].Path)
	assert.Empty(t, got[0].Content)
	assert.Empty(t, got[0].Title)
}

func TestBuild_DynamicRoute(t *testing.T) {
	pages := []Page{
		{URL: "/posts/template", Src: "# Post {{ $params.id }}\n\n<!-- @content -->"},
		{URL: "/", Src: "# Home"},
	}
	host := StaticHost{Routes: []DynamicRoute{
		{Route: "/posts/template", Path: "/posts/1", Params: map[string]any{"id": 1}, Content: "Hello"},
	}}

	got, err := Build(context.Background(), pages, host, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, -1, Find(got, "/posts/template.md"))
	i := Find(got, "/posts/1.md")
	require.GreaterOrEqual(t, i, 0)
	assert.Contains(t, got[i].Content, "Hello")
	assert.Equal(t, "Post 1", got[i].Title)
}

func TestAssemble_PerPagePathsAreUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		segs := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[a-z]{1,6}(/[a-z]{1,6})?`).Filter(func(s string) bool { return s != "index" }),
			0, 12, rapid.ID[string],
		).Draw(t, "routes")

		pages := make([]Page, 0, len(segs)+1)
		pages = append(pages, Page{URL: "/", Src: "# Home"})
		for _, s := range segs {
			url := "/" + s
			if rapid.Bool().Draw(t, "html") {
				url += ".html"
			}
			pages = append(pages, Page{URL: url, Src: "body " + s})
		}
		SortDescending(pages)

		asm := Assemble(pages, DefaultOptions())
		perPage := asm.Artifacts[1 : len(asm.Artifacts)-1]
		if len(perPage) != len(pages) {
			t.Fatalf("expected %d per-page artifacts, got %d", len(pages), len(perPage))
		}
		seen := map[string]bool{}
		for _, a := range perPage {
			if seen[a.Path] {
				t.Fatalf("duplicate path %s", a.Path)
			}
			seen[a.Path] = true
		}
	})
}
