// Package filter prunes the canonical graph by ignore patterns.
//
// Filtering runs once per load, after parsing and before layout, in a fixed
// order: topics first (removing edges can orphan nodes), then nodes, then
// nodes left without any edge. Patterns are regular expressions matched
// against the whole unquoted name, so "/t" removes "/t" but not "/t2".
package filter

import (
	"regexp"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
)

// Options configures a Filter.
type Options struct {
	IgnoreNodes       []string `json:"ignore_node_list" toml:"ignore_node_list"`
	IgnoreTopics      []string `json:"ignore_topic_list" toml:"ignore_topic_list"`
	IgnoreUnconnected bool     `json:"ignore_unconnected_nodes" toml:"ignore_unconnected_nodes"`
}

// Result reports how much each step removed.
type Result struct {
	Topics   int // edges removed by topic pattern
	Nodes    int // nodes removed by node pattern
	Isolated int // nodes removed for having no edges
}

// Total returns the number of removed nodes.
func (r Result) Total() int { return r.Nodes + r.Isolated }

// Filter holds compiled ignore patterns.
type Filter struct {
	nodes             []*regexp.Regexp
	topics            []*regexp.Regexp
	ignoreUnconnected bool
}

// New compiles the patterns in opts. An invalid pattern fails with
// ErrCodeInvalidSetting.
func New(opts Options) (*Filter, error) {
	f := &Filter{ignoreUnconnected: opts.IgnoreUnconnected}
	var err error
	if f.nodes, err = compile(opts.IgnoreNodes); err != nil {
		return nil, err
	}
	if f.topics, err = compile(opts.IgnoreTopics); err != nil {
		return nil, err
	}
	return f, nil
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := errors.CompilePattern(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// Apply removes matching topics, matching nodes and then, if configured,
// isolated nodes from g. Applying the same filter twice removes nothing the
// second time.
func (f *Filter) Apply(g *graph.Graph) Result {
	var r Result

	r.Topics = g.RemoveEdges(func(e graph.Edge) bool {
		return matchAny(f.topics, graph.Unquote(e.Label))
	})

	for _, id := range g.NodeIDs() {
		if matchAny(f.nodes, graph.Unquote(id)) {
			g.RemoveNode(id)
			r.Nodes++
		}
	}

	if f.ignoreUnconnected {
		for _, id := range g.Isolates() {
			g.RemoveNode(id)
			r.Isolated++
		}
	}
	return r
}

// MatchNode reports whether a node key matches an ignore pattern.
func (f *Filter) MatchNode(id string) bool { return matchAny(f.nodes, graph.Unquote(id)) }

// MatchTopic reports whether a topic name matches an ignore pattern.
func (f *Filter) MatchTopic(topic string) bool { return matchAny(f.topics, graph.Unquote(topic)) }

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
