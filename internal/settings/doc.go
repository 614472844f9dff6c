// Package settings defines the runtime settings resolved during startup.
// A Settings value is constructed once by the bootstrap join and treated as
// immutable afterwards; loaders contribute Patch values holding only the
// fields they recognized in their source.
package settings
