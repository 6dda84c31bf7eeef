// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"sort"

	"github.com/poiesic/lifepilot/core"
)

// DefaultContextItems is the default cap on selected context memories.
const DefaultContextItems = 3

// SelectContext picks up to maxItems prior memory texts most relevant to the
// record, scored by token overlap between the record's text fields and each
// memory's stored text.
//
// Zero-score memories are discarded. The sort is stable, so equally scored
// memories keep their input order. A record with no tokenizable text yields
// an empty result; that is a valid, silent outcome, not an error.
func SelectContext(record core.Record, memories []*core.StoredMemory, maxItems int) []string {
	if maxItems <= 0 {
		maxItems = DefaultContextItems
	}

	recordTokens := make(map[string]struct{})
	for _, key := range core.TextFieldPriority {
		for _, token := range Tokenize(record[key]) {
			recordTokens[token] = struct{}{}
		}
	}
	if len(recordTokens) == 0 {
		return nil
	}

	type scored struct {
		score int
		text  string
	}
	var candidates []scored
	for _, memory := range memories {
		if memory == nil || memory.Text == "" {
			continue
		}
		score := 0
		for token := range TokenSet(memory.Text) {
			if _, ok := recordTokens[token]; ok {
				score++
			}
		}
		candidates = append(candidates, scored{score: score, text: memory.Text})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	out := make([]string, 0, maxItems)
	for _, c := range candidates {
		if c.score == 0 {
			break
		}
		out = append(out, c.text)
		if len(out) == maxItems {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
