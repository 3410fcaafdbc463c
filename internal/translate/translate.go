/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package translate wires the translation pipeline end to end: raw script
// text in, formatted step-dispatch code out. One synchronous pass, no state
// shared between runs, and no partial output on error.
package translate

import (
	"log/slog"
	"strings"

	"stepcase/internal/gml"
	applog "stepcase/internal/log"
	"stepcase/internal/script"
)

// Options configures one translation run.
type Options struct {
	// Codegen names the engine objects the generated code drives.
	Codegen gml.Options
	// Strict rejects unrecognized *-directives and, with a Cast, unknown
	// speakers, instead of reading them as dialogue.
	Strict bool
	// Cast is the set of speaker names a strict run accepts.
	Cast map[string]bool
}

// Result carries the generated code and run statistics.
type Result struct {
	Output string
	Lines  int // normalized input lines
	Nodes  int // top-level script nodes
	Steps  int // generated steps
}

// Run translates a whole script. Errors are fatal for the run: a structural
// mismatch, cardinality violation, or oversized dialogue aborts with no
// output.
func Run(input string, opts Options) (Result, error) {
	l := applog.WithComponent("translate")

	lines := script.Normalize(strings.Split(input, "\n"))
	l.Debug("normalized", slog.Int("lines", len(lines)))

	p := script.Parser{Strict: opts.Strict, Cast: opts.Cast}
	nodes, err := p.Parse(lines)
	if err != nil {
		return Result{}, err
	}
	l.Debug("parsed", slog.Int("nodes", len(nodes)))

	cg := opts.Codegen
	if cg == (gml.Options{}) {
		cg = gml.DefaultOptions()
	}
	steps, err := gml.Lower(nodes, cg)
	if err != nil {
		return Result{}, err
	}
	l.Debug("lowered", slog.Int("steps", len(steps)))

	out := gml.Beautify(gml.Emit(steps))
	return Result{Output: out, Lines: len(lines), Nodes: len(nodes), Steps: len(steps)}, nil
}
