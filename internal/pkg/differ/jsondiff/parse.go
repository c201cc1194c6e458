package jsondiff

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// parse decodes a JSON document via yaml.v3 (JSON is valid YAML) into its
// document node, unwrapping the single top-level DocumentNode wrapper yaml.v3
// always produces.
func parse(b []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		return doc.Content[0], nil
	}
	return &doc, nil
}

// canonicalize recursively sorts every mapping node's key/value pairs by key
// text, implementing the IgnoreObjectKeyOrder option.
func canonicalize(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.MappingNode:
		type kv struct{ k, v *yaml.Node }
		pairs := make([]kv, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			pairs = append(pairs, kv{n.Content[i], n.Content[i+1]})
		}
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].k.Value < pairs[j].k.Value })
		content := make([]*yaml.Node, 0, len(n.Content))
		for _, p := range pairs {
			canonicalize(p.v)
			content = append(content, p.k, p.v)
		}
		n.Content = content
	case yaml.SequenceNode:
		for _, c := range n.Content {
			canonicalize(c)
		}
	}
}

func isScalar(n *yaml.Node) bool   { return n == nil || n.Kind == yaml.ScalarNode }
func isMapping(n *yaml.Node) bool  { return n != nil && n.Kind == yaml.MappingNode }
func isSequence(n *yaml.Node) bool { return n != nil && n.Kind == yaml.SequenceNode }

func mapKeys(n *yaml.Node) []string {
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}

func mapValue(n *yaml.Node, key string) (*yaml.Node, bool) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1], true
		}
	}
	return nil, false
}
