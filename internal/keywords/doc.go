// Package keywords derives metadata search terms from executable paths.
package keywords
