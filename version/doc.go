// Package version reports convokit build information.
//
// Version, commit, branch and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/convokit/version.Version=1.0.0" ./cmd/convokit
//
// Unset values fall back to the module build info embedded by the Go
// toolchain.
package version
