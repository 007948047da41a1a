// Package bottles enumerates the CrossOver runtime environments available
// for launching instances.
package bottles
