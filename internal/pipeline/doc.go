// Package pipeline implements the chart embedding transform stages:
// animation-parameter rewriting, fixed-dimension stripping, responsive CSS
// construction and injection, and fragment wrapping.
//
// Every stage operates on an in-memory copy of the export and is designed to
// fail soft: a stage that cannot apply leaves its input untouched rather than
// erroring, because a chart with the wrong animation speed or a fixed width
// still renders, while a failed page does not.
package pipeline
