/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gml

import "strings"

// Beautify reformats emitted step code for human readers: one statement per
// line, braces on their own lines, indentation tracking brace depth, and a
// blank line after each break. It is purely cosmetic; the emitter's output is
// already structurally valid. Double-quoted literals pass through untouched.
func Beautify(src string) string {
	lines := splitStatements(src)

	var b strings.Builder
	depth := 0
	for _, line := range lines {
		if line == "}" && depth > 0 {
			depth--
		}
		b.WriteString(strings.Repeat("\t", depth))
		b.WriteString(line)
		b.WriteString("\n")
		if line == "{" {
			depth++
		}
		if line == "break;" {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// splitStatements cuts the source into one statement, brace, or header per
// entry, ignoring structure inside string literals.
func splitStatements(src string) []string {
	var lines []string
	var cur strings.Builder
	inString := false

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}

	for _, r := range src {
		if inString {
			cur.WriteRune(r)
			if r == '"' {
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
			cur.WriteRune(r)
		case '{', '}':
			flush()
			lines = append(lines, string(r))
		case ';':
			cur.WriteRune(r)
			flush()
		case '\n':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return lines
}
