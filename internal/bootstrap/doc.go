// Package bootstrap joins the startup configuration loaders. Run blocks the
// caller until every registered loader has resolved, then folds their
// contributions into the single immutable settings value the rest of the
// process is built from. A failing loader fails the whole startup.
package bootstrap
