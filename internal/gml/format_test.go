/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gml

import (
	"strings"
	"testing"
)

func TestBeautifyIndentsBraces(t *testing.T) {
	src := "if global.x\n{\nannounce(\"A\");\n}\nelse\n{\nstep += 1;\n}"
	want := "if global.x\n{\n\tannounce(\"A\");\n}\nelse\n{\n\tstep += 1;\n}\n"
	if got := Beautify(src); got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
}

func TestBeautifySplitsStatements(t *testing.T) {
	got := Beautify("a; b;\tc;")
	if got != "a;\nb;\nc;\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestBeautifyBlankLineAfterBreak(t *testing.T) {
	got := Beautify("\ncase 1:\n\ta;\n\tbreak;\ncase 2:\n\tb;\n\tbreak;")
	if !strings.Contains(got, "break;\n\ncase 2:") {
		t.Fatalf("expected blank line after break: %q", got)
	}
}

func TestBeautifyLeavesStringLiteralsAlone(t *testing.T) {
	src := `draw_text(x, y + 0, "half; a {brace} and more");`
	got := Beautify(src)
	if got != src+"\n" {
		t.Fatalf("string literal mangled: %q", got)
	}
}
