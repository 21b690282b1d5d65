// Package checker classifies and repairs the layout of an inZOI mod.
//
// GlobChecker is the generic root-level rule engine: entries at the top of
// a mod are unfolded, accepted, deleted or moved according to glob tables.
// Checker layers the content category rules on top of it: misplaced
// BlueClient wrappers, loose engine packages, 3D printer models, AI
// motions, sites and appearances, and content identifier folders parked
// under the wrong root.
//
// Both operate on a types.Tree and never touch the real filesystem.
package checker
