// Package patrol simulates a single agent walking a grid.Grid and answers
// questions about its route.
//
// What:
//
//   - Step: the agent state machine. From a State (position + facing) it
//     looks one cell ahead: outside the grid → Exited; an Obstacle → turn
//     90° clockwise in place; anything else → move there.
//   - Trace / CountVisited: run Step from the agent tile until the agent
//     leaves, collecting every position it occupies.
//   - HasCycle: run Step while recording (position, facing) pairs; a repeated
//     pair means the agent will walk the same loop forever.
//   - LoopObstructions / CountLoopObstructions: for every cell of the traced
//     route except the start, add one Obstacle there and ask HasCycle whether
//     the agent is now trapped.
//
// The grid is never modified. The agent's location lives only in State; the
// agent tile is read once to find the start and is walkable afterwards.
//
// Why restrict obstruction candidates to the traced route: an obstacle on a
// cell the agent never reaches cannot change its route, and the start cell is
// excluded because blocking it would replace the agent itself.
//
// Options:
//
//   - WithContext: cancellation for long searches.
//   - WithWorkers: size of the obstruction-search worker pool
//     (default runtime.GOMAXPROCS(0)).
//   - WithStepLimit: ceiling on Step calls per run (default W×H×4, the number
//     of distinct states); exceeding it returns ErrStepLimit.
//   - WithOnStep: hook observing each transition of Trace and HasCycle.
//   - WithLogger: debug logging of run summaries.
//
// Complexity:
//
//   - Step:                   O(1).
//   - Trace, HasCycle:        O(W×H×4) time, O(W×H) bits memory.
//   - LoopObstructions:       O(P × W×H×4) time for a route of P cells,
//     spread over the worker pool; O(workers × W×H) memory.
package patrol
