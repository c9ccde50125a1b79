// Package assets locates precomputed chart files across candidate directories.
//
// The upstream charting pipeline saves exports to a handful of conventional
// locations ("Figs", "Time Series", "Maps", or the working directory), and
// notebooks are not consistent about which one. The Resolver encodes that
// reality: a requested path is checked directly, then its bare filename is
// probed against an ordered fallback list. A miss is a normal outcome, not an
// exception.
package assets
