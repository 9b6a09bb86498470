// Package manifest defines the record that describes how chunks are ordered and verified,
// together with the naming conventions and digest helpers shared by the splitter and joiner.
package manifest
