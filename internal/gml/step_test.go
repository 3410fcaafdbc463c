/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gml

import "testing"

func TestStepBodyAppend(t *testing.T) {
	a := StepBody{Text: "a;"}
	b := StepBody{Text: "b;"}
	if got := a.Append(b).Text; got != "a;\nb;" {
		t.Fatalf("unexpected join: %q", got)
	}
	// Empty body is the identity on both sides.
	if got := (StepBody{}).Append(a); got != a {
		t.Fatalf("left identity broken: %+v", got)
	}
	if got := a.Append(StepBody{}); got != a {
		t.Fatalf("right identity broken: %+v", got)
	}
	// Associativity.
	c := StepBody{Text: "c;"}
	if a.Append(b).Append(c) != a.Append(b.Append(c)) {
		t.Fatalf("append is not associative")
	}
}

func TestIndentJoinSkipsEmptyParts(t *testing.T) {
	if got := indentJoin("", "x;", "  ", "y;"); got != "x;\n\ty;" {
		t.Fatalf("unexpected join: %q", got)
	}
}
