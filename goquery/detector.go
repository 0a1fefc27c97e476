// Package goquery selects content fragments from HTML pages using CSS
// selectors, with documentation framework detection for picking a default
// selector.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Framework identifies a documentation generator.
type Framework string

// Framework constants.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// frameworkMarkers lists structural markers per framework, in the order the
// frameworks are checked. VitePress comes before VuePress since it reuses
// some of its predecessor's markup.
var frameworkMarkers = []struct {
	framework Framework
	selectors []string
}{
	{FrameworkDocusaurus, []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container", "[data-rh][data-theme]"}},
	{FrameworkMkDocs, []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"}},
	{FrameworkSphinx, []string{".toctree-wrapper", ".wy-nav-side", ".wy-menu-vertical", ".sphinxsidebar"}},
	{FrameworkVitePress, []string{"#VPContent", ".VPDoc", ".VPDocAsideOutline"}},
	{FrameworkVuePress, []string{".theme-default-content", ".sidebar-links", ".vuepress-navbar"}},
	{FrameworkGitBook, []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"}},
	{FrameworkNextra, []string{".nextra-navbar", ".nextra-sidebar", ".nextra-toc"}},
}

// Detector identifies documentation frameworks from HTML content.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified framework, or
// FrameworkUnknown.
func (d *Detector) Detect(html string) Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return FrameworkUnknown
	}
	return d.detect(doc)
}

func (d *Detector) detect(doc *goquery.Document) Framework {
	// The generator tag is the most reliable signal when present.
	if framework := detectFromMetaGenerator(doc); framework != FrameworkUnknown {
		return framework
	}

	for _, m := range frameworkMarkers {
		for _, sel := range m.selectors {
			if doc.Find(sel).Length() > 0 {
				return m.framework
			}
		}
		if m.framework == FrameworkGitBook && hasGitBookClasses(doc) {
			return FrameworkGitBook
		}
	}
	return FrameworkUnknown
}

func detectFromMetaGenerator(doc *goquery.Document) Framework {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})
	if generator == "" {
		return FrameworkUnknown
	}

	for _, f := range []Framework{
		FrameworkSphinx,
		FrameworkGitBook,
		FrameworkDocusaurus,
		FrameworkMkDocs,
		FrameworkVitePress,
		FrameworkVuePress,
		FrameworkNextra,
	} {
		if strings.Contains(generator, string(f)) {
			return f
		}
	}
	return FrameworkUnknown
}

// hasGitBookClasses reports whether the html element carries at least two
// of the classes GitBook sets on it.
func hasGitBookClasses(doc *goquery.Document) bool {
	class, _ := doc.Find("html").First().Attr("class")
	if class == "" {
		return false
	}

	count := 0
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			count++
		}
	}
	return count >= 2
}

// ContentSelector returns the CSS selector matching the main content of
// pages generated by framework, or "" for FrameworkUnknown.
func ContentSelector(framework Framework) string {
	switch framework {
	case FrameworkDocusaurus:
		return ".theme-doc-markdown"
	case FrameworkMkDocs:
		return ".md-content__inner"
	case FrameworkSphinx:
		return "div[role='main'], div.body"
	case FrameworkVitePress:
		return ".vp-doc"
	case FrameworkVuePress:
		return ".theme-default-content"
	case FrameworkGitBook:
		return "[data-testid='page.contentEditor']"
	case FrameworkNextra:
		return "article"
	}
	return ""
}
