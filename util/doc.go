// Package util provides small generic helpers shared by the convokit
// packages: slice utilities and the rounding and robust-statistics
// functions the detectors rely on.
package util
