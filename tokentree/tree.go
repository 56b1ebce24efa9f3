package tokentree

import "iter"

type node struct {
	tok         Token
	left, right *node
}

// Tree is an ordered token store keyed by start time. The zero value is an
// empty tree ready for use. A Tree is not safe for concurrent use.
type Tree struct {
	root *node
	size int
}

// New returns an empty tree.
func New() *Tree { return &Tree{} }

// FromTokens builds a tree by inserting tokens in the given order.
func FromTokens(tokens []Token) *Tree {
	t := New()
	for _, tok := range tokens {
		t.InsertToken(tok)
	}
	return t
}

// Insert adds a token keyed by start.
func (t *Tree) Insert(start, end float64, speaker, text string) {
	t.InsertToken(Token{Start: start, End: end, Speaker: speaker, Text: text})
}

// InsertToken adds tok keyed by tok.Start.
func (t *Tree) InsertToken(tok Token) {
	slot := &t.root
	for *slot != nil {
		if tok.Start <= (*slot).tok.Start {
			slot = &(*slot).left
		} else {
			slot = &(*slot).right
		}
	}
	*slot = &node{tok: tok}
	t.size++
}

// find returns the slot holding the first node reached with the exact key,
// or nil when the key is absent.
func (t *Tree) find(start float64) **node {
	slot := &t.root
	for *slot != nil {
		switch n := *slot; {
		case start == n.tok.Start:
			return slot
		case start < n.tok.Start:
			slot = &n.left
		default:
			slot = &n.right
		}
	}
	return nil
}

// Search returns the token stored at start.
func (t *Tree) Search(start float64) (Token, bool) {
	slot := t.find(start)
	if slot == nil {
		return Token{}, false
	}
	return (*slot).tok, true
}

// Delete removes the token stored at start. A missing key is a no-op and
// reports false.
func (t *Tree) Delete(start float64) bool {
	slot := t.find(start)
	if slot == nil {
		return false
	}
	n := *slot
	switch {
	case n.left == nil:
		*slot = n.right
	case n.right == nil:
		*slot = n.left
	default:
		succSlot := &n.right
		for (*succSlot).left != nil {
			succSlot = &(*succSlot).left
		}
		succ := *succSlot
		*succSlot = succ.right
		succ.left, succ.right = n.left, n.right
		*slot = succ
	}
	n.left, n.right = nil, nil
	t.size--
	return true
}

// ReplaceText substitutes the text of the token stored at start in place.
func (t *Tree) ReplaceText(start float64, text string) bool {
	slot := t.find(start)
	if slot == nil {
		return false
	}
	(*slot).tok.Text = text
	return true
}

// Len returns the number of stored tokens.
func (t *Tree) Len() int { return t.size }

// All yields tokens in order. The sequence can be ranged over any number of
// times and stops early when the loop breaks.
func (t *Tree) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		var stack []*node
		cur := t.root
		for cur != nil || len(stack) > 0 {
			for cur != nil {
				stack = append(stack, cur)
				cur = cur.left
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cur.tok) {
				return
			}
			cur = cur.right
		}
	}
}

// InOrder returns all tokens in non-decreasing start order.
func (t *Tree) InOrder() []Token {
	out := make([]Token, 0, t.size)
	for tok := range t.All() {
		out = append(out, tok)
	}
	return out
}

// Clone returns a deep copy sharing no nodes with t.
func (t *Tree) Clone() *Tree {
	return &Tree{root: cloneNode(t.root), size: t.size}
}

func cloneNode(n *node) *node {
	if n == nil {
		return nil
	}
	return &node{tok: n.tok, left: cloneNode(n.left), right: cloneNode(n.right)}
}
