// Command cellar manages a catalogue of Windows games launched through
// CrossOver bottles: listing, editing, launching with playtime tracking,
// and bulk import with metadata matching.
package main
