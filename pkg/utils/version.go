// Package utils holds small helpers shared by factboard packages that do not
// warrant a package of their own.
package utils

// Build metadata, overridden with -ldflags at release time.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)
