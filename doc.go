// Package patrol is a small toolkit for simulating a patrolling guard on a
// bounded tile map, and for finding every single obstacle that would trap
// the guard in an endless loop.
//
// 🚀 What is in the box?
//
//   - point/  : generic 2-D point with vector addition and box checks
//   - grid/   : immutable tile map: parsing, bounds, agent lookup, rendering
//   - patrol/ : step machine, path tracer, cycle detector, obstruction search
//   - logging/: structured logging over bolt
//   - config/ : YAML, .env and environment configuration
//   - cli/    : the cobra command tree behind cmd/patrol
//
// ✨ Rules of the walk
//
//   - The guard moves one cell in its facing direction.
//   - An obstacle ahead turns it 90° clockwise in place.
//   - A step past the edge ends the walk.
//
// Quick example:
//
//	g, _ := grid.Parse("....#.....\n....^....#")
//	n, _ := patrol.CountVisited(g)   // distinct cells the guard occupies
//	k, _ := patrol.CountLoopObstructions(g, patrol.WithWorkers(4))
//
// Map alphabet:
//
//	.  floor       #  obstacle
//	^  guard up    >  guard right
//	v  guard down  <  guard left
//
// See examples/ for a runnable walkthrough and cmd/patrol for the CLI.
package patrol
