// Package options holds the validated, immutable request options for one fetchquest invocation.
package options
