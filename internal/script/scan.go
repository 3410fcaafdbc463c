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

// Opener reports whether a line opens a nesting level during a scan. The
// parser only ever uses the fixed predicates below, so the matching rules at
// each call site stay auditable.
type Opener func(line string) bool

// IsPlainIf matches a conditional open that is not a branch arm.
func IsPlainIf(line string) bool {
	return strings.HasPrefix(line, "*if") && !strings.HasPrefix(line, "*if option")
}

// IsIfOptionOne matches only the first arm of a branch, which is the line
// that opens the whole construct.
func IsIfOptionOne(line string) bool {
	return strings.HasPrefix(line, "*if option 1")
}

// IsAnyIfOption matches any branch arm open.
func IsAnyIfOption(line string) bool {
	return strings.HasPrefix(line, "*if option")
}

// IsChoice matches a choice open, nested ones included.
func IsChoice(line string) bool {
	return strings.HasPrefix(line, "*choice")
}

// UnmatchedError reports that a scan ran out of input before finding a
// terminator at the current nesting depth. It carries the search token and
// the full scanned region so the author can locate the broken construct.
type UnmatchedError struct {
	Search string
	Lines  []string
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("*%s not found; scanned %d lines:\n%s", e.Search, len(e.Lines), strings.Join(e.Lines, "\n"))
}

// FindFirstUnmatched returns the index of the first line starting with
// "*"+search that closes a nesting level opened before the scan began.
// Lines matched by opens raise the nesting level; closing lines lower it;
// the first line that drives the level negative is the answer. If the level
// never goes negative the construct is unterminated and an *UnmatchedError
// is returned.
func FindFirstUnmatched(lines []string, search string, opens Opener) (int, error) {
	closing := "*" + search
	depth := 0
	for i, line := range lines {
		if opens(line) {
			depth++
		} else if strings.HasPrefix(line, closing) {
			depth--
		}
		if depth < 0 {
			return i, nil
		}
	}
	return 0, &UnmatchedError{Search: search, Lines: lines}
}
