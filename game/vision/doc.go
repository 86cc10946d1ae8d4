// Package vision defines the boundary between the bot core and its
// perception/actuation collaborators.
//
// The core never interprets pixels and never decides screen coordinates: a
// Classifier turns a stabilized frame into an Observation (board plus
// per-cell confidence), and an Executor maps the solver's logical cell pair
// to whatever physical action plays it. Both are supplied from outside; the
// engine and runner only consume their already-materialized outputs.
//
// The geometry helpers translate logical cells to screen-space rectangles
// within a configured board region of interest. They exist for Executor
// implementations that drive a real screen; nothing in the core calls them.
package vision
