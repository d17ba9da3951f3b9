// Package news defines the core models of the news briefing.
package news

import (
	"slices"
	"strings"
)

// Source is a named feed origin.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Catalog is the immutable set of sources, keywords and trusted source names
// an aggregator works with.
type Catalog struct {
	sources  []Source
	keywords []string
	trusted  map[string]struct{}
	order    []string
}

// NewCatalog builds a Catalog. Sources keep their order; keywords are
// lowercased and blank entries dropped.
func NewCatalog(sources []Source, keywords []string, trusted []string) Catalog {
	c := Catalog{
		sources:  make([]Source, 0, len(sources)),
		keywords: make([]string, 0, len(keywords)),
		trusted:  make(map[string]struct{}, len(trusted)),
	}
	for _, src := range sources {
		name := strings.TrimSpace(src.Name)
		url := strings.TrimSpace(src.URL)
		if name == "" || url == "" {
			continue
		}
		c.sources = append(c.sources, Source{Name: name, URL: url})
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		c.keywords = append(c.keywords, kw)
	}
	for _, name := range trusted {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := c.trusted[name]; dup {
			continue
		}
		c.trusted[name] = struct{}{}
		c.order = append(c.order, name)
	}
	return c
}

// DefaultCatalog returns the built-in cloud-native news sources.
func DefaultCatalog() Catalog {
	return NewCatalog(DefaultSources(), DefaultKeywords(), DefaultTrustedSources())
}

// DefaultSources returns the built-in feed list in display order.
func DefaultSources() []Source {
	return []Source{
		{Name: "Kubernetes", URL: "https://kubernetes.io/feed.xml"},
		{Name: "ArgoCD", URL: "https://blog.argoproj.io/feed"},
		{Name: "AWS", URL: "https://aws.amazon.com/blogs/aws/feed/"},
		{Name: "CNCF", URL: "https://www.cncf.io/feed/"},
		{Name: "The New Stack", URL: "https://thenewstack.io/feed/"},
		{Name: "Hacker News", URL: "https://hnrss.org/frontpage"},
	}
}

// DefaultKeywords returns the built-in relevance keywords.
func DefaultKeywords() []string {
	return []string{
		"kubernetes",
		"k8s",
		"argocd",
		"gitops",
		"sre",
		"devops",
		"platform engineering",
	}
}

// DefaultTrustedSources returns the source names accepted without a keyword match.
func DefaultTrustedSources() []string {
	return []string{"Kubernetes", "CNCF"}
}

// Sources returns a copy of the configured sources.
func (c Catalog) Sources() []Source {
	return slices.Clone(c.sources)
}

// Keywords returns a copy of the lowercased keywords.
func (c Catalog) Keywords() []string {
	return slices.Clone(c.keywords)
}

// TrustedSources returns a copy of the trusted source names.
func (c Catalog) TrustedSources() []string {
	return slices.Clone(c.order)
}

// IsTrusted reports whether every entry of the named source is accepted.
func (c Catalog) IsTrusted(source string) bool {
	_, ok := c.trusted[source]
	return ok
}

// MatchesKeyword reports whether title contains any keyword.
// Matching is plain substring containment, so "sre" also matches "pressure".
func (c Catalog) MatchesKeyword(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsRelevant reports whether an entry titled title from source belongs in the briefing.
func (c Catalog) IsRelevant(source, title string) bool {
	return c.MatchesKeyword(title) || c.IsTrusted(source)
}
