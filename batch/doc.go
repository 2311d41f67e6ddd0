// SPDX-License-Identifier: MIT

// Package batch decomposes many masses in parallel and ranks the
// candidates of each mass by mass error.
//
// Run fans the queries out over a bounded errgroup. A single decomposition
// is never interrupted; cancellation is observed between queries, so Run
// returns promptly after ctx is done with ctx.Err().
//
// Results keep the input order regardless of completion order.
package batch
