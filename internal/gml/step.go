/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gml lowers parsed script nodes into the step-dispatch code the
// target engine executes: a flat, 1-indexed sequence of case blocks, each
// advancing a global step counter.
package gml

import "strings"

// StepBody is one unit of generated code: everything the dispatcher runs
// while the step counter sits on one value. Bodies combine under Append into
// a single step; the zero value is the identity.
type StepBody struct {
	Text string
}

// Append joins two bodies into one step, newline-separated.
func (s StepBody) Append(other StepBody) StepBody {
	switch {
	case s.Text == "":
		return other
	case other.Text == "":
		return s
	default:
		return StepBody{Text: s.Text + "\n" + other.Text}
	}
}

// fillerStep is the no-op body used to pad shorter branches so every control
// path advances the step counter the same number of times.
func fillerStep() StepBody {
	return StepBody{Text: "step += 1;"}
}

// indentJoin joins the non-empty parts with a newline and tab, the layout
// unit of a generated case block.
func indentJoin(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\t")
}
