package version

// Package is the import path of the project.
var Package = "github.com/coreemu/coretk"

// Version indicates which version of the binary is running. It is set at
// build time with -ldflags "-X github.com/coreemu/coretk/version.Version=...".
var Version = "v0.1.0+unknown"

// Revision is the VCS revision the binary was built from, if known.
var Revision = ""
