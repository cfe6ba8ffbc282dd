package hufftree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Dump writes a programmer-readable debugging dump of the Tree's current
// state to the given writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	fmt.Fprintf(&buf, "\tLeafCount() = %d\n", len(t.nodes))
	fmt.Fprintf(&buf, "\tCoding() = %t\n", t.coding)
	for _, item := range t.leaves() {
		fmt.Fprintf(&buf, "\tDecode(%s) = %d\n", item.hc, item.symbol)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (t *Tree) DebugString() string {
	var buf strings.Builder
	_, _ = t.Dump(&buf)
	return buf.String()
}

// GoString returns a Go expression that rebuilds this Tree.
func (t *Tree) GoString() string {
	var buf strings.Builder
	buf.WriteString("NewTree(Bootstrap{")
	for i, r := range t.bootstrap {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "{%d,%d}", r.Start, r.Size)
	}
	fmt.Fprintf(&buf, "}, %t)", t.coding)
	return buf.String()
}

// String returns a short description of this Tree.
func (t *Tree) String() string {
	if t.numSymbols == 0 {
		return "(empty Huffman tree)"
	}
	return fmt.Sprintf("(Huffman tree with %d symbols, with coded lengths of %d .. %d bits)", t.numSymbols, t.minSize, t.maxSize)
}

var (
	_ fmt.Stringer   = (*Tree)(nil)
	_ fmt.GoStringer = (*Tree)(nil)
)

type treeJSON struct {
	Bootstrap Bootstrap `json:"bootstrap"`
	Coding    bool      `json:"coding,omitempty"`
}

// MarshalJSON encodes the Tree as its bootstrap and coding flag.
func (t *Tree) MarshalJSON() ([]byte, error) {
	b := t.bootstrap
	if b == nil {
		b = Bootstrap{}
	}
	return json.Marshal(treeJSON{Bootstrap: b, Coding: t.coding})
}

// UnmarshalJSON rebuilds the Tree from the form written by MarshalJSON.  The
// bootstrap must pass Bootstrap.Validate, except that an empty table is
// accepted.
func (t *Tree) UnmarshalJSON(raw []byte) error {
	var tj treeJSON
	if err := json.Unmarshal(raw, &tj); err != nil {
		return errors.Wrap(err, "Huffman tree")
	}
	if err := tj.Bootstrap.Validate(); err != nil && !errors.Is(err, ErrEmptyTable) {
		return err
	}
	t.Init(tj.Bootstrap, tj.Coding)
	return nil
}

type leafItem struct {
	hc     Code
	symbol Symbol
}

// leaves returns every symbol in the tree with its code, shortest codes
// first.
func (t *Tree) leaves() []leafItem {
	list := make([]leafItem, 0, t.numSymbols)
	for index := range t.nodes {
		if n := &t.nodes[index]; n.kind == nodeSymbol {
			list = append(list, leafItem{pathCode(index), n.symbol})
		}
	}

	// Order by size, then by the canonical codeword.
	slices.SortFunc(list, func(a, b leafItem) bool {
		if a.hc.Size != b.hc.Size {
			return a.hc.Size < b.hc.Size
		}
		return a.hc.Reversed().Bits < b.hc.Reversed().Bits
	})
	return list
}

// pathCode returns the bits that lead from the root to index.
func pathCode(index int) Code {
	var reversed Code
	for index > 0 {
		parent := (index - 1) / 2
		reversed = reversed.Append(uint(index-1) & 1)
		index = parent
	}
	return reversed.Reversed()
}
