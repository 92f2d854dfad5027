// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

package textmatch

// automaton is an Aho-Corasick matcher over folded runes. It finds every
// keyword occurrence in O(n + m + z) instead of scanning once per keyword.
// It is built once and read-only afterwards.
type automaton struct {
	root     *acNode
	patterns [][]rune
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices of patterns ending here, including via failure links
}

type acMatch struct {
	pattern int
	start   int // rune offset
	end     int // rune offset, exclusive
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

func newAutomaton(patterns []string) *automaton {
	ac := &automaton{root: newACNode()}
	for _, p := range patterns {
		runes := []rune(Fold(p))
		if len(runes) == 0 {
			continue
		}
		ac.insert(len(ac.patterns), runes)
		ac.patterns = append(ac.patterns, runes)
	}
	ac.buildFailureLinks()
	return ac
}

func (ac *automaton) insert(index int, pattern []rune) {
	node := ac.root
	for _, ch := range pattern {
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// buildFailureLinks links every node to its longest proper suffix in the trie (BFS).
func (ac *automaton) buildFailureLinks() {
	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = ac.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// scan calls fn for each match in text (already folded runes) until fn
// returns false.
func (ac *automaton) scan(text []rune, fn func(acMatch) bool) {
	if len(ac.patterns) == 0 {
		return
	}

	node := ac.root
	for i, ch := range text {
		for node != ac.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}

		for _, idx := range node.output {
			m := acMatch{pattern: idx, start: i - len(ac.patterns[idx]) + 1, end: i + 1}
			if !fn(m) {
				return
			}
		}
	}
}
