/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"fmt"
	"strings"
)

// Parser turns normalized script lines into a node sequence.
//
// Strict rejects lines that look like directives but match none of the
// recognized prefixes; the default keeps the historical behavior of reading
// them as dialogue. Cast, when non-empty, is the set of speaker names a
// strict parse accepts ("Player" is always accepted).
type Parser struct {
	Strict bool
	Cast   map[string]bool
}

// Parse runs a lenient parse over normalized lines.
func Parse(lines []string) ([]Node, error) {
	p := Parser{}
	return p.Parse(lines)
}

// Parse consumes the whole line sequence and returns the node sequence.
// Any structural or cardinality error aborts the parse; there is no partial
// result.
func (p *Parser) Parse(lines []string) ([]Node, error) {
	return p.region(lines, 0, len(lines))
}

// region parses lines[lo:hi]. All sub-region boundaries are computed here as
// indices into the one shared line slice, so the off-by-one adjustments
// around directive lines live in a single place.
func (p *Parser) region(lines []string, lo, hi int) ([]Node, error) {
	var nodes []Node
	i := lo
	for i < hi {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "("):
			if !strings.HasSuffix(line, ")") {
				return nil, fmt.Errorf("comment %q does not end with )", line)
			}
			nodes = append(nodes, Comment{Text: line[1 : len(line)-1]})
			i++

		case strings.HasPrefix(line, "{"):
			if !strings.HasSuffix(line, "}") {
				return nil, fmt.Errorf("action %q does not end with }", line)
			}
			nodes = append(nodes, Action{Text: line[1 : len(line)-1]})
			i++

		case IsPlainIf(line):
			rel, err := FindFirstUnmatched(lines[i+1:hi], "else", IsPlainIf)
			if err != nil {
				return nil, err
			}
			elseAt := i + 1 + rel
			rel, err = FindFirstUnmatched(lines[i+1:hi], "merge if", IsPlainIf)
			if err != nil {
				return nil, err
			}
			mergeAt := i + 1 + rel
			thenNodes, err := p.region(lines, i+1, elseAt)
			if err != nil {
				return nil, err
			}
			elseNodes, err := p.region(lines, elseAt+1, mergeAt)
			if err != nil {
				return nil, err
			}
			cond := foldQuotes(strings.TrimSpace(strings.ReplaceAll(line, "*", "")))
			nodes = append(nodes, IfElse{Condition: cond, Then: thenNodes, Else: elseNodes})
			i = mergeAt + 1

		case IsIfOptionOne(line):
			rel, err := FindFirstUnmatched(lines[i+1:hi], "merge option", IsIfOptionOne)
			if err != nil {
				return nil, err
			}
			mergeAt := i + 1 + rel
			bodies, err := p.arms(lines, i, mergeAt)
			if err != nil {
				return nil, err
			}
			b, err := NewBranch(bodies)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, b)
			i = mergeAt + 1

		case IsChoice(line):
			rel, err := FindFirstUnmatched(lines[i+1:hi], "end choice", IsChoice)
			if err != nil {
				return nil, err
			}
			endAt := i + 1 + rel
			texts := make([]string, 0, endAt-i-1)
			for _, opt := range lines[i+1 : endAt] {
				// The option text is everything after the last directive marker.
				texts = append(texts, opt[strings.LastIndex(opt, "*")+1:])
			}
			c, err := NewChoice(texts)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, c)
			i = endAt + 1

		default:
			s, err := p.screen(line)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, s)
			i++
		}
	}
	return nodes, nil
}

// arms splits the branch region lines[lo:hi] (starting at its "*if option 1"
// line, ending just before "*merge option") into one parsed body per arm.
func (p *Parser) arms(lines []string, lo, hi int) ([][]Node, error) {
	var bodies [][]Node
	for lo < hi {
		if !IsAnyIfOption(lines[lo]) {
			return nil, fmt.Errorf("branch arm must open with *if option, got %q", lines[lo])
		}
		rel, err := FindFirstUnmatched(lines[lo+1:hi], "end if option", IsAnyIfOption)
		if err != nil {
			return nil, err
		}
		endAt := lo + 1 + rel
		body, err := p.region(lines, lo+1, endAt)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
		lo = endAt + 1
	}
	return bodies, nil
}

// screen reads a dialogue line. "Speaker: text" is spoken; anything else is
// the player's unspoken thought.
func (p *Parser) screen(line string) (Screen, error) {
	if p.Strict && strings.HasPrefix(line, "*") {
		return Screen{}, fmt.Errorf("unrecognized directive %q", line)
	}
	if colon := strings.Index(line, ":"); colon >= 0 {
		name := line[:colon]
		if p.Strict && len(p.Cast) > 0 && name != "Player" && !p.Cast[name] {
			return Screen{}, fmt.Errorf("unknown speaker %q", name)
		}
		text := strings.TrimSpace(line[colon+1:])
		return NewScreen(NewCharacter(name), Speaking, WrapRows(text))
	}
	return NewScreen(Player, Thinking, WrapRows(line))
}

// foldQuotes undoes the normalizer's typographic-quote escapes inside
// condition expressions, which are engine code rather than string literals.
func foldQuotes(s string) string {
	s = strings.ReplaceAll(s, `"+'"`, `"`)
	return strings.ReplaceAll(s, `"'+"`, `"`)
}
