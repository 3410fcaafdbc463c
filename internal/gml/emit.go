/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gml

import (
	"fmt"
	"strings"
)

// Emit numbers the step bodies sequentially from 1 and renders each as a
// case block with a terminating break. Purely sequential; no merging or
// reordering.
func Emit(steps []StepBody) string {
	var b strings.Builder
	for i, s := range steps {
		b.WriteString(indentJoin(fmt.Sprintf("\ncase %d:", i+1), s.Text, "break;"))
	}
	return b.String()
}
