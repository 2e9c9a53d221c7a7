package graph

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/golang/snappy"
)

const graphmlNamespace = "http://graphml.graphdrawing.org/xmlns"

// SnappySuffix marks GraphML files stored as snappy framed streams.
const SnappySuffix = ".sz"

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr,omitempty"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID      string  `xml:"id,attr"`
	For     string  `xml:"for,attr"`
	Name    string  `xml:"attr.name,attr"`
	Type    string  `xml:"attr.type,attr"`
	Default *string `xml:"default"`
}

type graphmlGraph struct {
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// xmlChar reports whether r is a Char in the XML 1.0 grammar.
func xmlChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return r >= 0x10000 && r <= utf8.MaxRune
	}
}

// checkXMLText rejects s when encoding/xml would not write it back verbatim.
func checkXMLText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: invalid UTF-8", ErrUnencodable)
	}
	for i, r := range s {
		if !xmlChar(r) {
			return fmt.Errorf("%w: character %U at byte %d", ErrUnencodable, r, i)
		}
	}
	return nil
}

// WriteGraphML encodes g as GraphML with one node key per attribute name.
// is_target is typed boolean, everything else string. Ids and values that
// XML cannot carry unchanged give an error wrapping ErrUnencodable, so a
// written graph always reads back with the same node identities.
func WriteGraphML(w io.Writer, g *Graph) error {
	keyIDs := make(map[string]string)
	doc := graphmlDoc{
		XMLNS: graphmlNamespace,
		Graph: graphmlGraph{EdgeDefault: "undirected"},
	}

	keyFor := func(name string) string {
		if id, ok := keyIDs[name]; ok {
			return id
		}
		id := fmt.Sprintf("d%d", len(keyIDs))
		keyIDs[name] = id
		typ := "string"
		if name == AttrIsTarget {
			typ = "boolean"
		}
		doc.Keys = append(doc.Keys, graphmlKey{ID: id, For: "node", Name: name, Type: typ})
		return id
	}

	for _, id := range g.Nodes() {
		if err := checkXMLText(id); err != nil {
			return fmt.Errorf("node %q: %w", id, err)
		}
		attrs := g.Attributes(id)
		n := graphmlNode{ID: id}
		for _, k := range attrs.Keys() {
			v, _ := attrs.Get(k)
			if err := checkXMLText(k); err != nil {
				return fmt.Errorf("node %q attribute name %q: %w", id, k, err)
			}
			if err := checkXMLText(v); err != nil {
				return fmt.Errorf("node %q attribute %s: %w", id, k, err)
			}
			n.Data = append(n.Data, graphmlData{Key: keyFor(k), Value: v})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, n)
	}
	for _, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{Source: e.From, Target: e.To})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graphml: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ReadGraphML decodes a GraphML document. Edges are read as undirected
// whatever edgedefault says; edges naming undeclared nodes add them.
// Key defaults apply to nodes that omit the key.
func ReadGraphML(r io.Reader) (*Graph, error) {
	var doc graphmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graphml: %w", err)
	}

	names := make(map[string]string, len(doc.Keys))
	var defaults []graphmlKey
	for _, k := range doc.Keys {
		if k.For != "node" && k.For != "all" {
			continue
		}
		names[k.ID] = k.Name
		if k.Default != nil {
			defaults = append(defaults, k)
		}
	}

	g := New()
	for _, n := range doc.Graph.Nodes {
		attrs := g.AddNode(n.ID)
		seen := make(map[string]bool, len(n.Data))
		for _, d := range n.Data {
			name, ok := names[d.Key]
			if !ok {
				continue
			}
			seen[d.Key] = true
			attrs.Set(name, d.Value)
		}
		for _, k := range defaults {
			if !seen[k.ID] {
				attrs.Set(k.Name, *k.Default)
			}
		}
	}
	for _, e := range doc.Graph.Edges {
		g.AddEdge(e.Source, e.Target)
	}
	return g, nil
}

// WriteGraphMLFile writes g to path, creating parent directories. Paths
// ending in ".sz" are snappy-compressed.
func WriteGraphMLFile(path string, g *Graph) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if strings.HasSuffix(path, SnappySuffix) {
		sw := snappy.NewBufferedWriter(f)
		if err := WriteGraphML(sw, g); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return sw.Close()
	}

	bw := bufio.NewWriter(f)
	if err := WriteGraphML(bw, g); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return bw.Flush()
}

// ReadGraphMLFile reads a graph written by WriteGraphMLFile or any GraphML
// producer.
func ReadGraphMLFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, SnappySuffix) {
		r = snappy.NewReader(f)
	}

	g, err := ReadGraphML(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}
