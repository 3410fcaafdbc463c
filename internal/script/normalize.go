/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "strings"

// EndIfOption is the synthetic marker that closes a branch arm. Authors may
// omit it before a sibling arm or the final merge; Normalize fills it in.
const EndIfOption = "*end if option*"

// Normalize cleans raw script lines into the form the parser expects:
// whitespace is stripped, blank lines are dropped, typographic punctuation is
// replaced with escapes the target engine's string literals accept, directive
// keyword casing is canonicalized, and implicit arm closers are inserted.
// It never fails; one forward pass over the input.
func Normalize(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		l := strings.TrimSpace(raw)
		if l == "" {
			continue
		}

		// Typographic quotes become string-literal concatenations the
		// engine accepts; apostrophes and ellipses become plain ASCII.
		l = strings.ReplaceAll(l, "“", `"+'"`)
		l = strings.ReplaceAll(l, "”", `"'+"`)
		l = strings.ReplaceAll(l, "’", "'")
		l = strings.ReplaceAll(l, "…", "...")

		// Directive keywords are matched case-sensitively downstream.
		l = strings.ReplaceAll(l, "*If", "*if")
		l = strings.ReplaceAll(l, "*Choice", "*choice")
		l = strings.ReplaceAll(l, "*Option", "*option")
		l = strings.ReplaceAll(l, "*if Option", "*if option")

		// A later arm or the merge implicitly closes the previous arm.
		// Authors may spell the closer without the trailing star, so
		// dedup on the prefix rather than the synthetic form.
		if isLaterIfOption(l) || strings.HasPrefix(l, "*merge option") {
			if len(out) == 0 || !strings.HasPrefix(out[len(out)-1], "*end if option") {
				out = append(out, EndIfOption)
			}
		}
		out = append(out, l)
	}
	return out
}

// isLaterIfOption reports whether the line opens a branch arm other than the
// first one.
func isLaterIfOption(line string) bool {
	return strings.HasPrefix(line, "*if option") && !strings.HasPrefix(line, "*if option 1")
}
