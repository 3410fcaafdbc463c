/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "strings"

// WrapRows greedily splits text into rows of at most MaxRowChars characters,
// breaking at the last space at or before the limit so no word is ever split.
// A single word longer than the limit is cut at the limit rather than looping.
// When every word fits the limit, joining the rows back with single spaces
// reproduces the input.
func WrapRows(text string) []string {
	runes := []rune(text)
	if len(runes) <= MaxRowChars {
		return []string{text}
	}
	prefix := string(runes[:MaxRowChars])
	cut := strings.LastIndex(prefix, " ")
	if cut < 0 {
		return append([]string{prefix}, WrapRows(text[len(prefix):])...)
	}
	return append([]string{text[:cut]}, WrapRows(text[cut+1:])...)
}
