// Package search provides lexical relevance scoring over stored memories.
//
// Two consumers use it:
//   - the ingestion pipeline selects a handful of prior memories as few-shot
//     context for enrichment (token-overlap scoring)
//   - the agent's search_memories tool ranks memories against a free-text
//     query (Jaro-Winkler similarity)
//
// Scoring is deterministic: the same inputs always produce the same output
// order, and ties keep their prior relative order.
package search
