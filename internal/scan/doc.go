// Package scan discovers batch-import candidates under a library root.
package scan
