/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package manifest reads the optional cast manifest: a JSON file declaring
// the characters a script may attribute dialogue to. Strict translations use
// it to catch misspelled speaker names before they turn into announce calls.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema the manifest file must satisfy.
const castSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["cast"],
	"properties": {
		"cast": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"aliases": {"type": "array", "items": {"type": "string", "minLength": 1}}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`

// Member is one declared character.
type Member struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// Cast is the declared character roster of a script.
type Cast struct {
	Members []Member `json:"cast"`
}

// Load reads and validates a cast manifest file.
func Load(path string) (*Cast, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse validates manifest bytes against the schema and decodes them.
func Parse(data []byte) (*Cast, error) {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(castSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("manifest is invalid: %s", strings.Join(msgs, "; "))
	}
	var c Cast
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &c, nil
}

// Names returns the set of accepted speaker names, aliases included.
func (c *Cast) Names() map[string]bool {
	out := make(map[string]bool, len(c.Members))
	for _, m := range c.Members {
		out[m.Name] = true
		for _, a := range m.Aliases {
			out[a] = true
		}
	}
	return out
}
