/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseValidManifest(t *testing.T) {
	data := []byte(`{"cast":[{"name":"Vicky","aliases":["V"]},{"name":"Bob"}]}`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := c.Names()
	for _, want := range []string{"Vicky", "V", "Bob"} {
		if !names[want] {
			t.Fatalf("missing name %q in %v", want, names)
		}
	}
}

func TestParseRejectsMissingName(t *testing.T) {
	if _, err := Parse([]byte(`{"cast":[{"aliases":["V"]}]}`)); err == nil {
		t.Fatalf("expected schema violation for missing name")
	}
}

func TestParseRejectsEmptyCast(t *testing.T) {
	if _, err := Parse([]byte(`{"cast":[]}`)); err == nil {
		t.Fatalf("expected schema violation for empty cast")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte(`{"cast":[{"name":"A"}],"extra":true}`)); err == nil {
		t.Fatalf("expected schema violation for unknown field")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"cast":`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cast.json")
	if err := os.WriteFile(path, []byte(`{"cast":[{"name":"Vicky"}]}`), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Members) != 1 || c.Members[0].Name != "Vicky" {
		t.Fatalf("unexpected cast: %+v", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
