// Package model defines the scoring object hierarchy for a tennis match.
//
// The hierarchy is a strict tree rooted at Match:
//
//	Match -> Set -> Game | TiebreakGame -> Point -> Stroke
//
// Every node implements Unit and carries a Kind tag. Standard and tiebreak
// games share the Game struct and are told apart by GameKind; rally and
// simple points share the Point struct and are told apart by PointDetail.
// Code that needs to treat variants differently switches on the tag instead
// of inspecting concrete types.
//
// # Ownership
//
// Each unit exclusively owns its children. A Match is the only entry point
// into the tree and nothing in it outlives the Match.
//
// # Status
//
// Status is monotonic: NOT_STARTED -> IN_PROGRESS -> COMPLETE. The Mark*
// methods never move a unit backwards.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent mutation. Callers must
// serialise all writes to a single Match.
package model
