// Package analysis wires the moment pipeline together: binarize, keep the
// largest connected region, compute its moments and derive its shape.
//
// All parameters travel in an explicit Options value; nothing is kept in
// package state, so separate runs cannot influence each other.
package analysis
