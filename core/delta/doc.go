// Package delta interprets filtered nucmer delta files.
//
// A delta file lists, per reference/query sequence pair, a header line
//
//	>REF QUERY REF_LEN QUERY_LEN
//
// followed by alignment blocks. Each block starts with a seven-field
// coordinate line
//
//	R_START R_END Q_START Q_END ERRORS SIM_ERRORS STOPS
//
// and continues with one-field indel offset lines ending in 0. The query
// names are numeric fragment ids, so every coordinate line becomes one
// Match for that fragment.
package delta
