/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "fmt"

// Limits imposed by the target engine's dialogue window and choice UI.
const (
	// MaxRowChars is the widest text row the dialogue box can show without
	// running offscreen.
	MaxRowChars = 85
	// MaxScreenRows is the tallest a single dialogue screen can be.
	MaxScreenRows = 4
	// MinOptions and MaxOptions bound how many options a choice or branch
	// can carry.
	MinOptions = 2
	MaxOptions = 4
)

// PlayerName is the canonical identity of the player character in generated
// code. Scripts refer to the player as "Player"; the engine resolves the real
// name at runtime from this global.
const PlayerName = "global.name"

// Character names a speaker. The reserved script name "Player" is
// canonicalized to PlayerName so the player speaking by name can be told
// apart from unattributed narration.
type Character struct {
	Name string
}

// Player is the canonical player identity.
var Player = Character{Name: PlayerName}

// NewCharacter builds a Character, canonicalizing the reserved player name.
func NewCharacter(name string) Character {
	if name == "Player" {
		return Player
	}
	return Character{Name: name}
}

// TextMode distinguishes spoken dialogue from the player's unspoken thought.
type TextMode int

const (
	Speaking TextMode = iota
	Thinking
)

// Node is one typed element of a parsed script. The variant set is closed:
// Comment, Action, Screen, IfElse, Choice and Branch are the only
// implementations, and lowering matches over them exhaustively.
type Node interface {
	node()
}

// Comment is an author note carried into the generated code verbatim.
type Comment struct {
	Text string
}

// Action marks a point where hand-written game logic must be filled in.
type Action struct {
	Text string
}

// Screen is one dialogue box: a speaker, a mode, and up to MaxScreenRows
// rows of at most MaxRowChars characters each.
type Screen struct {
	Speaker Character
	Mode    TextMode
	Rows    []string
}

// IfElse is a two-way conditional; both sides advance the step counter in
// lockstep after lowering.
type IfElse struct {
	Condition string
	Then      []Node
	Else      []Node
}

// Option is one selectable line of a Choice, addressed by a 1-based ordinal.
type Option struct {
	Text    string
	Ordinal int
}

// Choice presents MinOptions..MaxOptions selectable options to the player.
type Choice struct {
	Options []Option
}

// Arm is one branch of a multi-way Branch, addressed by a 1-based ordinal.
type Arm struct {
	Ordinal int
	Body    []Node
}

// Branch runs one of MinOptions..MaxOptions arms depending on the option the
// player picked in the preceding Choice.
type Branch struct {
	Arms []Arm
}

func (Comment) node() {}
func (Action) node()  {}
func (Screen) node()  {}
func (IfElse) node()  {}
func (Choice) node()  {}
func (Branch) node()  {}

// NewScreen builds a Screen, rejecting more rows than the dialogue box fits.
func NewScreen(speaker Character, mode TextMode, rows []string) (Screen, error) {
	if len(rows) > MaxScreenRows {
		return Screen{}, fmt.Errorf("dialogue needs %d rows, box fits %d: %q", len(rows), MaxScreenRows, rows)
	}
	return Screen{Speaker: speaker, Mode: mode, Rows: rows}, nil
}

// NewChoice builds a Choice from option texts, dropping empty ones and
// enforcing the 2..4 cardinality of the choice UI.
func NewChoice(texts []string) (Choice, error) {
	var opts []Option
	for _, t := range texts {
		if t == "" {
			continue
		}
		opts = append(opts, Option{Text: t, Ordinal: len(opts) + 1})
	}
	if len(opts) < MinOptions || len(opts) > MaxOptions {
		return Choice{}, fmt.Errorf("choice has %d options, want %d..%d", len(opts), MinOptions, MaxOptions)
	}
	return Choice{Options: opts}, nil
}

// NewBranch builds a Branch from per-arm node sequences, numbering arms from 1.
func NewBranch(bodies [][]Node) (Branch, error) {
	if len(bodies) < MinOptions || len(bodies) > MaxOptions {
		return Branch{}, fmt.Errorf("branch has %d arms, want %d..%d", len(bodies), MinOptions, MaxOptions)
	}
	arms := make([]Arm, 0, len(bodies))
	for i, b := range bodies {
		arms = append(arms, Arm{Ordinal: i + 1, Body: b})
	}
	return Branch{Arms: arms}, nil
}
