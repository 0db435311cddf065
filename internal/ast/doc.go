// Package ast describes the tree produced by the parser: a Program holding
// component declarations, each with its parameters and a body of calls.
//
// Every node records the 1-based line/column of the tokens it was built from,
// so tools can point back at the source without keeping the token stream.
// Nodes are plain values and serialise to JSON, YAML and msgpack as is.
package ast
