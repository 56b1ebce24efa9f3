// Package errors provides the unified error type used across convokit.
//
// Every failure that leaves a package boundary is an *AppError carrying a
// machine-readable ErrorCode, a human-readable message, the HTTP status the
// API surface should answer with, and optional structured details.
package errors
