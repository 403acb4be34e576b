// Package plugins groups hazard-class modules that extend the core inventory
// with additional schema fragments and validation rules. Each plugin lives in
// its own subpackage and is installed explicitly by the embedding
// application.
package plugins
