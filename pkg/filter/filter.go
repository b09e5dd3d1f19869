// Package filter narrows the thought collection before it reaches the
// visualization engine: date facets over timestamps and multi-keyword
// content matching. The views themselves never filter.
package filter

import (
	"sort"
	"strings"
	"time"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/thoughtvault/govault/pkg/viz"
)

// Query selects a subset of items. Zero values mean "no constraint":
// Year 0 matches every year, Month 0 every month, empty Keywords all content.
// With keywords present, an item matches when its content contains any of
// them (case-insensitive).
type Query struct {
	Year     int        `json:"year,omitempty"`
	Month    time.Month `json:"month,omitempty"`
	Keywords []string   `json:"keywords,omitempty"`
}

// Apply returns the items matching q, preserving input order so downstream
// hover tie-breaking stays stable.
func Apply(items []viz.Item, q Query) []viz.Item {
	var matcher *keywordMatcher
	if len(q.Keywords) > 0 {
		matcher = newKeywordMatcher(q.Keywords)
	}

	out := make([]viz.Item, 0, len(items))
	for _, it := range items {
		if q.Year != 0 && it.Timestamp.Year() != q.Year {
			continue
		}
		if q.Month != 0 && it.Timestamp.Month() != q.Month {
			continue
		}
		if matcher != nil && !matcher.matches(it.Content) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// keywordMatcher scans content with a single Aho-Corasick automaton over
// all keywords, O(len(content)) per item regardless of keyword count.
type keywordMatcher struct {
	ac ahocorasick.AhoCorasick
}

func newKeywordMatcher(keywords []string) *keywordMatcher {
	patterns := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(strings.ToLower(k))
		if k != "" {
			patterns = append(patterns, k)
		}
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	return &keywordMatcher{ac: builder.Build(patterns)}
}

func (m *keywordMatcher) matches(content string) bool {
	return len(m.ac.FindAll(strings.ToLower(content))) > 0
}

// YearFacet is one year's slice of the collection with per-month counts,
// for the upstream date-facet UI.
type YearFacet struct {
	Year   int                `json:"year"`
	Count  int                `json:"count"`
	Months map[time.Month]int `json:"months"`
}

// Facets summarizes item timestamps by year and month, newest year first.
func Facets(items []viz.Item) []YearFacet {
	byYear := make(map[int]*YearFacet)
	for _, it := range items {
		y := it.Timestamp.Year()
		f, ok := byYear[y]
		if !ok {
			f = &YearFacet{Year: y, Months: make(map[time.Month]int)}
			byYear[y] = f
		}
		f.Count++
		f.Months[it.Timestamp.Month()]++
	}

	out := make([]YearFacet, 0, len(byYear))
	for _, f := range byYear {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}
