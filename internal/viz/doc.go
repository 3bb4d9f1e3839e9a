// Package viz renders catapult results for the terminal.
//
// Static output ([RenderReport], [RenderSummary], [RangeCurve]) is used by
// the CLI commands. [Tuner] is a Bubble Tea program for adjusting pull and
// launch angle interactively.
//
// # Key Bindings
//
//	up/k, down/j   select parameter
//	left/h         decrease selected parameter
//	right/l        increase selected parameter
//	r              reset to the starting configuration
//	q, ctrl+c      quit
package viz
