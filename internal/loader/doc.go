// Package loader implements startup configuration loaders. A loader makes
// exactly one attempt to retrieve the runtime configuration document and
// resolves exactly once: with the document's recognized fields, with the
// configured fallback values when the document does not exist, or with an
// error for every other failure.
package loader
