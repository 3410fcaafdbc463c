/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"strings"
	"testing"
)

func TestWrapRowsShortLineUntouched(t *testing.T) {
	rows := WrapRows("Hello there")
	if len(rows) != 1 || rows[0] != "Hello there" {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestWrapRowsPreservesWords(t *testing.T) {
	words := make([]string, 12)
	for i := range words {
		words[i] = "abcdefghij"
	}
	text := strings.Join(words, " ") // 131 chars
	rows := WrapRows(text)
	if len(rows) < 2 {
		t.Fatalf("expected wrapping, got %q", rows)
	}
	for _, r := range rows {
		if len([]rune(r)) > MaxRowChars {
			t.Fatalf("row too long (%d): %q", len(r), r)
		}
		for _, w := range strings.Fields(r) {
			if w != "abcdefghij" {
				t.Fatalf("word split across rows: %q", w)
			}
		}
	}
	if got := strings.Join(rows, " "); got != text {
		t.Fatalf("rejoin mismatch:\n got %q\nwant %q", got, text)
	}
}

func TestWrapRowsIdempotent(t *testing.T) {
	text := strings.Repeat("word ", 30) + "end"
	rows := WrapRows(text)
	for _, r := range rows {
		again := WrapRows(r)
		if len(again) != 1 || again[0] != r {
			t.Fatalf("wrapping a wrapped row changed it: %q -> %q", r, again)
		}
	}
}

func TestWrapRowsOverlongWordHardSplit(t *testing.T) {
	text := strings.Repeat("a", 90)
	rows := WrapRows(text)
	if len(rows) != 2 || rows[0] != strings.Repeat("a", 85) || rows[1] != strings.Repeat("a", 5) {
		t.Fatalf("unexpected rows: %q", rows)
	}
}
