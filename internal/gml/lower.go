/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gml

import (
	"fmt"

	"stepcase/internal/script"
)

// Options names the engine objects and coordinates the generated code refers
// to. Defaults match the host game's room layout.
type Options struct {
	// ChoiceObject is the selectable object instantiated per option.
	ChoiceObject string `yaml:"choice_object"`
	// PointerObject is the selection indicator hidden while a choice is up.
	PointerObject string `yaml:"pointer_object"`
	// OriginX and OriginY position the first option; later options stack
	// below it.
	OriginX int `yaml:"origin_x"`
	OriginY int `yaml:"origin_y"`
	// RowSpacing is the vertical distance between dialogue rows.
	RowSpacing int `yaml:"row_spacing"`
}

// DefaultOptions returns the host game's object names and coordinates.
func DefaultOptions() Options {
	return Options{
		ChoiceObject:  "obj_choice",
		PointerObject: "vicky_arrow_d",
		OriginX:       650,
		OriginY:       620,
		RowSpacing:    40,
	}
}

// Lower flattens a node sequence into the step bodies it executes as.
func Lower(nodes []script.Node, opts Options) ([]StepBody, error) {
	var steps []StepBody
	for _, n := range nodes {
		s, err := lowerNode(n, opts)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s...)
	}
	return steps, nil
}

// lowerNode maps one node to its ordered step bodies. The match is
// exhaustive over the closed node set; a new node kind fails here until its
// lowering is written.
func lowerNode(n script.Node, opts Options) ([]StepBody, error) {
	switch v := n.(type) {
	case script.Comment:
		return lowerComment(v), nil
	case script.Action:
		return lowerAction(v), nil
	case script.Screen:
		return lowerScreen(v, opts), nil
	case script.IfElse:
		return lowerIfElse(v, opts)
	case script.Choice:
		return lowerChoice(v, opts), nil
	case script.Branch:
		return lowerBranch(v, opts)
	default:
		return nil, fmt.Errorf("no lowering for node type %T", n)
	}
}

func lowerComment(c script.Comment) []StepBody {
	return []StepBody{{Text: fmt.Sprintf("//%s;\n step += 1;", c.Text)}}
}

// lowerAction reserves three steps: the marker, then two blank cases for the
// hand-written follow-up logic the marker calls for.
func lowerAction(a script.Action) []StepBody {
	return []StepBody{
		{Text: fmt.Sprintf("//TODO: %s;\n", a.Text)},
		{Text: "//This case intentionally left blank;"},
		{Text: "//This case intentionally left blank 2;"},
	}
}

func lowerScreen(s script.Screen, opts Options) []StepBody {
	announce := ""
	if s.Mode == script.Speaking {
		name := s.Speaker.Name
		if name == script.PlayerName {
			name = "You"
		}
		announce = fmt.Sprintf("announce(\"%s\");", name)
	}
	// Row text goes into the literal verbatim: the normalizer already turned
	// typographic quotes into the engine's own escape idiom.
	draws := make([]string, 0, len(s.Rows))
	for i, row := range s.Rows {
		draws = append(draws, fmt.Sprintf("draw_text(x, y + %d, \"%s\");", opts.RowSpacing*i, row))
	}
	return []StepBody{{Text: indentJoin(announce, indentJoin(draws...))}}
}

func lowerIfElse(n script.IfElse, opts Options) ([]StepBody, error) {
	thenSteps, err := Lower(n.Then, opts)
	if err != nil {
		return nil, err
	}
	elseSteps, err := Lower(n.Else, opts)
	if err != nil {
		return nil, err
	}
	thenSteps, elseSteps = padToMatch(thenSteps, elseSteps)

	out := make([]StepBody, 0, len(thenSteps))
	for i := range thenSteps {
		wrappedThen := wrapBody(n.Condition, thenSteps[i])
		wrappedElse := wrapBody("else", elseSteps[i])
		out = append(out, wrappedThen.Append(wrappedElse))
	}
	return out, nil
}

// padToMatch right-pads the shorter step sequence with no-op filler so both
// sides of a conditional advance the step counter in lockstep.
func padToMatch(left, right []StepBody) ([]StepBody, []StepBody) {
	for len(left) < len(right) {
		left = append(left, fillerStep())
	}
	for len(right) < len(left) {
		right = append(right, fillerStep())
	}
	return left, right
}

// wrapBody encloses a step body in a guard header and braces.
func wrapBody(header string, body StepBody) StepBody {
	return StepBody{Text: header + "\n{\n" + body.Text + "\n}"}
}

// lowerChoice emits 2 + n steps: setup, redraw, then one deactivate step per
// option. Selecting option k jumps the counter by n + 1 - k so every option
// lands on the same resuming step.
func lowerChoice(c script.Choice, opts Options) []StepBody {
	n := len(c.Options)
	spacing := 60
	if n == script.MaxOptions {
		spacing = 40
	}

	label := func(o script.Option) string {
		return fmt.Sprintf("draw_text(x, y + %d, \"Option %d: %s\");", spacing*(o.Ordinal-1), o.Ordinal, o.Text)
	}
	create := func(o script.Option) string {
		header := fmt.Sprintf("option1 = instance_create(%d, %d, %s);", opts.OriginX, opts.OriginY, opts.ChoiceObject)
		if o.Ordinal > 1 {
			header = fmt.Sprintf("option%d = instance_create(option1.x, option1.y + %d, %s);",
				o.Ordinal, spacing*(o.Ordinal-1), opts.ChoiceObject)
		}
		return indentJoin(header, fmt.Sprintf("option%d.amount = %d;", o.Ordinal, o.Ordinal))
	}

	var labels, creates []string
	for _, o := range c.Options {
		labels = append(labels, label(o))
		creates = append(creates, create(o))
	}

	setupParts := append(append(append([]string{}, labels...),
		fmt.Sprintf("%s.visible = false;", opts.PointerObject)), creates...)
	setupParts = append(setupParts, "step += 1;")

	steps := []StepBody{
		{Text: indentJoin(setupParts...)},
		{Text: indentJoin(labels...)},
	}
	for _, o := range c.Options {
		steps = append(steps, StepBody{Text: indentJoin(
			fmt.Sprintf("instance_deactivate_object(%s);", opts.ChoiceObject),
			fmt.Sprintf("option = %d;", o.Ordinal),
			fmt.Sprintf("%s.visible = true;", opts.PointerObject),
			fmt.Sprintf("step += %d;", n+1-o.Ordinal),
		)})
	}
	return steps
}

// lowerBranch lowers every arm, pads all arms to the longest, wraps each step
// in its arm's guard, and transposes so one output step carries the guarded
// code of every arm at that position.
func lowerBranch(b script.Branch, opts Options) ([]StepBody, error) {
	if len(b.Arms) == 0 {
		return nil, fmt.Errorf("branch has no arms")
	}
	armSteps := make([][]StepBody, 0, len(b.Arms))
	maxLen := 0
	for _, arm := range b.Arms {
		steps, err := Lower(arm.Body, opts)
		if err != nil {
			return nil, err
		}
		if len(steps) > maxLen {
			maxLen = len(steps)
		}
		armSteps = append(armSteps, steps)
	}
	if maxLen == 0 {
		return nil, fmt.Errorf("branch with %d arms lowers to no steps", len(b.Arms))
	}

	for i, steps := range armSteps {
		for len(steps) < maxLen {
			steps = append(steps, fillerStep())
		}
		header := fmt.Sprintf("if option = %d", b.Arms[i].Ordinal)
		for j, s := range steps {
			steps[j] = wrapBody(header, s)
		}
		armSteps[i] = steps
	}

	// Transpose: row i of the output combines step i of every arm.
	out := make([]StepBody, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		var row StepBody
		for _, steps := range armSteps {
			row = row.Append(steps[i])
		}
		out = append(out, row)
	}
	return out, nil
}
