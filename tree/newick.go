package tree

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/soniakeys/graph"

	"github.com/zwets/sans/color"
)

type newickParser struct {
	rem   string
	tok   string
	t     *SplitTree
	names map[string]int
}

// ParseNewick parses Newick format into a SplitTree over numTaxa inputs,
// resolving leaf names through the same NameMap used at emission time.
// Each internal node's Taxa is reconstructed as the union of its
// children's, so a parsed tree can be compared, split for split, against
// one built by refinement.
//
// Argument s must have a terminating semicolon.  There can be nothing
// but whitespace following the semicolon.
func ParseNewick(s string, numTaxa int, names NameMap) (*SplitTree, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("tree: no data")
	}
	last := len(s) - 1
	if s[last] != ';' {
		return nil, errors.New("tree: string not terminated with ;")
	}
	full, err := color.Full(numTaxa)
	if err != nil {
		return nil, errors.Wrap(err, "tree: ParseNewick")
	}
	// The serialised tree starts at the star; recreate the artificial
	// root above it.
	t := &SplitTree{NumTaxa: numTaxa, Root: 0}
	t.Nodes = []SplitNode{{Taxa: full}}
	t.Tree.AdjacencyList = graph.AdjacencyList{nil}

	rev := make(map[string]int, numTaxa)
	for i := 0; i < numTaxa; i++ {
		rev[names.Name(i)] = i
	}
	p := &newickParser{rem: s[:last], t: t, names: rev}
	p.gettok()
	top := p.addChild(t.Root)
	if err := p.parseSubtree(top); err != nil {
		return nil, err
	}
	if p.rem > "" {
		if len(p.rem) > 30 {
			p.rem = p.rem[:27] + "..."
		}
		return nil, errors.New("tree: unparsed text follows complete tree: " + p.rem)
	}
	if _, err := p.resolveTaxa(top); err != nil {
		return nil, err
	}
	return t, nil
}

// addChild appends a fresh node under parent and returns its index.
func (p *newickParser) addChild(parent graph.NI) graph.NI {
	n := graph.NI(len(p.t.Nodes))
	p.t.Nodes = append(p.t.Nodes, SplitNode{})
	p.t.Tree.AdjacencyList = append(p.t.Tree.AdjacencyList, nil)
	p.t.Tree.AdjacencyList[parent] = append(p.t.Tree.AdjacencyList[parent], n)
	return n
}

func (p *newickParser) gettok() {
	if p.rem == "" {
		p.tok = ""
		return
	}
	switch p.rem[0] {
	case '(', ')', ',':
		p.tok = string(p.rem[0])
		p.rem = strings.TrimSpace(p.rem[1:])
		return
	}
	if x := strings.IndexAny(p.rem, "(),"); x > 0 {
		p.tok = strings.TrimSpace(p.rem[:x])
		p.rem = p.rem[x:]
	} else {
		p.tok = p.rem
		p.rem = ""
	}
}

func (p *newickParser) parseSubtree(n graph.NI) (err error) {
	if p.tok == "(" {
		// internal node
		return p.parseSet(n)
	}
	// leaf node
	if p.tok != ")" && p.tok != "," {
		err = p.nameWeight(n)
	}
	return
}

// add name and weight to node
func (p *newickParser) nameWeight(n graph.NI) (err error) {
	nd := &p.t.Nodes[n]
	tok := p.tok
	if w := strings.Index(tok, ":"); w >= 0 {
		if nd.Weight, err = strconv.ParseFloat(tok[w+1:], 64); err != nil {
			return err
		}
		nd.HasWeight = true
		tok = tok[:w]
	}
	nd.Name = tok
	p.gettok() // get token after name:weight
	return nil
}

func (p *newickParser) parseSet(n graph.NI) error {
	p.gettok() // get token after (
	for {
		cn := p.addChild(n)
		if err := p.parseSubtree(cn); err != nil {
			return err
		}
		if p.tok != "," {
			break
		}
		p.gettok()
	}
	if p.tok != ")" {
		return errors.New("tree: expected )")
	}
	p.gettok()
	switch p.tok {
	case ")", ",", "(":
		return nil
	}
	return p.nameWeight(n)
}

// resolveTaxa fills in Taxa bottom-up: a leaf's from its name, an
// internal node's as the union of its children's.
func (p *newickParser) resolveTaxa(n graph.NI) (color.Set, error) {
	t := p.t
	to := t.Tree.AdjacencyList[n]
	if len(to) == 0 {
		i, ok := p.names[t.Nodes[n].Name]
		if !ok {
			return nil, errors.Errorf("tree: unknown leaf name %q", t.Nodes[n].Name)
		}
		s, err := color.New(t.NumTaxa)
		if err != nil {
			return nil, err
		}
		s = s.Set(i)
		t.Nodes[n].Taxa = s
		return s, nil
	}
	acc, err := color.New(t.NumTaxa)
	if err != nil {
		return nil, err
	}
	for _, ch := range to {
		ct, err := p.resolveTaxa(ch)
		if err != nil {
			return nil, err
		}
		acc = acc.Union(ct)
	}
	t.Nodes[n].Taxa = acc
	return acc, nil
}
