// Package header parses the text prologue of an OOMMF OMF file.
//
// The prologue is read line by line up to and including the first line containing
// "Begin: Data". Every line is trimmed and then checked against a small set of rules:
//
//   - a line containing one of the recognized keys (xbase, ybase, zbase, xstepsize, ystepsize,
//     zstepsize, xnodes, ynodes, znodes, valuemultiplier) stores its third whitespace token as
//     that key's value; a later line for the same key overwrites the earlier one
//   - "Total simulation time", "Iteration:", "Stage:" and "MIF source file" lines populate
//     Metadata on a best-effort basis
//
// The parser does not validate node counts. Fields.Nodes reports missing or invalid
// dimensions when a grid is about to be allocated.
package header
