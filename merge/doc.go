// Package merge implements the Concourse pipeline merge engine: the
// unique-merge primitive, the handle analyzer, the optional deep job
// merger, and the three-layer pipeline driver that orchestrates them in
// the fixed order resource types -> resources -> jobs.
//
// Unlike a merge engine built around an explicit, caller-chosen collision
// strategy, this engine's collision behavior is fixed: left always wins
// ties, and the only configurable extension points are deep mode, the
// rename template, and an observer hook, none of which change what gets
// merged, only how a rename is spelled or reported.
package merge
