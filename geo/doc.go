// Package geo holds the pure helpers the scenes are positioned with:
// geographic to Cartesian conversion and the procedural placeholder
// texture used when the earth texture cannot be fetched.
package geo
