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
	"strings"
	"testing"

	"stepcase/internal/script"
)

func mustLower(t *testing.T, n script.Node) []StepBody {
	t.Helper()
	steps, err := lowerNode(n, DefaultOptions())
	if err != nil {
		t.Fatalf("lowering failed: %v", err)
	}
	return steps
}

func TestLowerComment(t *testing.T) {
	steps := mustLower(t, script.Comment{Text: "scene starts"})
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].Text != "//scene starts;\n step += 1;" {
		t.Fatalf("unexpected body: %q", steps[0].Text)
	}
}

func TestLowerActionReservesThreeSteps(t *testing.T) {
	steps := mustLower(t, script.Action{Text: "fade the lights"})
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	if !strings.Contains(steps[0].Text, "//TODO: fade the lights;") {
		t.Fatalf("missing marker: %q", steps[0].Text)
	}
	for _, s := range steps[1:] {
		if !strings.Contains(s.Text, "intentionally left blank") {
			t.Fatalf("expected blank placeholder, got %q", s.Text)
		}
	}
}

func TestLowerScreenSpeaking(t *testing.T) {
	s, err := script.NewScreen(script.NewCharacter("Vicky"), script.Speaking, []string{"Hi", "there"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	steps := mustLower(t, s)
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	body := steps[0].Text
	if !strings.Contains(body, `announce("Vicky");`) {
		t.Fatalf("missing announce: %q", body)
	}
	if !strings.Contains(body, `draw_text(x, y + 0, "Hi");`) {
		t.Fatalf("missing first row: %q", body)
	}
	if !strings.Contains(body, `draw_text(x, y + 40, "there");`) {
		t.Fatalf("missing offset second row: %q", body)
	}
}

func TestLowerScreenThinkingSuppressesAnnounce(t *testing.T) {
	s, _ := script.NewScreen(script.Player, script.Thinking, []string{"hmm"})
	body := mustLower(t, s)[0].Text
	if strings.Contains(body, "announce") {
		t.Fatalf("thinking screen must not announce: %q", body)
	}
}

func TestLowerScreenPlayerSpeaksAsYou(t *testing.T) {
	s, _ := script.NewScreen(script.NewCharacter("Player"), script.Speaking, []string{"hello"})
	body := mustLower(t, s)[0].Text
	if !strings.Contains(body, `announce("You");`) {
		t.Fatalf("expected the player announced as You: %q", body)
	}
}

func TestLowerIfElsePadsShorterBranch(t *testing.T) {
	then := []script.Node{script.Comment{Text: "short"}}
	els := []script.Node{script.Comment{Text: "long 1"}, script.Comment{Text: "long 2"}}
	steps := mustLower(t, script.IfElse{Condition: "if global.x", Then: then, Else: els})
	if len(steps) != 2 {
		t.Fatalf("expected 2 combined steps, got %d", len(steps))
	}
	// Step 2's then side is a guarded no-op filler.
	if !strings.Contains(steps[1].Text, "if global.x\n{\nstep += 1;\n}") {
		t.Fatalf("expected filler in then side: %q", steps[1].Text)
	}
	if !strings.Contains(steps[1].Text, "long 2") {
		t.Fatalf("expected real else body: %q", steps[1].Text)
	}
	for _, s := range steps {
		if !strings.Contains(s.Text, "if global.x") || !strings.Contains(s.Text, "else") {
			t.Fatalf("each step must carry both sides: %q", s.Text)
		}
	}
}

func TestLowerChoiceArityAndJumps(t *testing.T) {
	for _, n := range []int{2, 3, 4} {
		texts := make([]string, n)
		for i := range texts {
			texts[i] = fmt.Sprintf("option text %d", i+1)
		}
		c, err := script.NewChoice(texts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		steps := mustLower(t, c)
		if len(steps) != 2+n {
			t.Fatalf("%d options: expected %d steps, got %d", n, 2+n, len(steps))
		}
		for k := 1; k <= n; k++ {
			deact := steps[1+k].Text
			want := fmt.Sprintf("step += %d;", n+1-k)
			if !strings.Contains(deact, want) {
				t.Fatalf("option %d of %d: expected jump %q in %q", k, n, want, deact)
			}
			if !strings.Contains(deact, "instance_deactivate_object(obj_choice);") {
				t.Fatalf("missing deactivate: %q", deact)
			}
		}
	}
}

func TestLowerChoiceSetup(t *testing.T) {
	c, _ := script.NewChoice([]string{"left", "right", "stay"})
	steps := mustLower(t, c)
	setup := steps[0].Text
	if !strings.Contains(setup, `draw_text(x, y + 0, "Option 1: left");`) {
		t.Fatalf("missing first label: %q", setup)
	}
	// Three options use the wide 60px spacing.
	if !strings.Contains(setup, `draw_text(x, y + 120, "Option 3: stay");`) {
		t.Fatalf("missing spaced third label: %q", setup)
	}
	if !strings.Contains(setup, "option1 = instance_create(650, 620, obj_choice);") {
		t.Fatalf("missing first instance: %q", setup)
	}
	if !strings.Contains(setup, "option2 = instance_create(option1.x, option1.y + 60, obj_choice);") {
		t.Fatalf("missing stacked instance: %q", setup)
	}
	if !strings.Contains(setup, "vicky_arrow_d.visible = false;") {
		t.Fatalf("pointer not hidden: %q", setup)
	}
	if !strings.HasSuffix(setup, "step += 1;") {
		t.Fatalf("setup must advance the step: %q", setup)
	}
	// The redraw step repeats the labels only.
	if strings.Contains(steps[1].Text, "instance_create") {
		t.Fatalf("redraw step must not recreate instances: %q", steps[1].Text)
	}
}

func TestLowerChoiceFourOptionsUseTightSpacing(t *testing.T) {
	c, _ := script.NewChoice([]string{"a", "b", "c", "d"})
	setup := mustLower(t, c)[0].Text
	if !strings.Contains(setup, `draw_text(x, y + 120, "Option 4: d");`) {
		t.Fatalf("expected 40px spacing for 4 options: %q", setup)
	}
}

func TestLowerBranchTransposesAndPads(t *testing.T) {
	b, err := script.NewBranch([][]script.Node{
		{script.Comment{Text: "one"}},
		{script.Action{Text: "do it"}}, // 3 steps
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	steps := mustLower(t, b)
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps (longest arm), got %d", len(steps))
	}
	for i, s := range steps {
		if !strings.Contains(s.Text, "if option = 1") || !strings.Contains(s.Text, "if option = 2") {
			t.Fatalf("step %d must guard every arm: %q", i+1, s.Text)
		}
	}
	// Arm 1 ran out of steps after the first; the rest is filler.
	if !strings.Contains(steps[1].Text, "if option = 1\n{\nstep += 1;\n}") {
		t.Fatalf("expected filler for shorter arm: %q", steps[1].Text)
	}
}

func TestLowerBranchAllEmptyArmsFails(t *testing.T) {
	b, err := script.NewBranch([][]script.Node{{}, {}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := lowerNode(b, DefaultOptions()); err == nil {
		t.Fatalf("expected error for a branch with only empty arms")
	}
	// One non-empty arm is enough; the other pads with filler.
	b, _ = script.NewBranch([][]script.Node{{script.Comment{Text: "x"}}, {}})
	steps, err := lowerNode(b, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
}

func TestLowerSequenceFlattens(t *testing.T) {
	nodes := []script.Node{
		script.Comment{Text: "a"},
		script.Action{Text: "b"},
		script.Comment{Text: "c"},
	}
	steps, err := Lower(nodes, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(steps))
	}
}
