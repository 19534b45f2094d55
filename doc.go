// Package cotengo searches for low-cost contraction orders of tensor
// networks, so that exponentially-sized subproblems (e.g. maximum
// independent set instances encoded as tensor networks) stay inside a
// bounded working-memory budget.
//
// 🚀 What is cotengo?
//
//	A deterministic, library-only toolkit that brings together:
//		• Expression model: tagged-union contraction trees + complexity scoring
//		• Index graphs: co-occurrence graphs with explicit vertex numbering
//		• Tree decomposition: elimination-order bags bounding peak memory
//		• Contraction-tree assembly: balanced binary trees from grouped orders
//		• Order remapping: reuse of orders across sliced/relabeled graphs
//		• Refinement: budget-driven rounds over a stochastic reorderer,
//		  with one escalated retry on stagnation
//
// ✨ Why choose cotengo?
//
//   - Reproducible – every random choice flows from an explicit seed
//   - Strict sentinels – no panics on user input, no logging, errors as data
//   - Exact by construction – reordering moves pairwise association only,
//     never the summation set, so results stay numerically identical
//   - Extensible – the reordering primitive is an interface; anneal ships
//     the default temperature-scheduled local search
//
// Package map:
//
//	expr/       — expression sum type, incidence, sizes, complexity, order extraction
//	indexgraph/ — index co-occurrence graph, density classifier, order remapper
//	treedecomp/ — elimination-order tree decomposition, max-bag query
//	contree/    — contraction-tree assembler + expression materializer
//	refine/     — refinement round loop (budget, escalation)
//	anneal/     — default simulated-annealing reorderer (parallel trials)
//
// Typical flow:
//
//	expression → indexgraph.Build + expr.ExtractOrder
//	           → treedecomp.Decompose (structural memory bound)
//	           ⟷ refine.Refine (search, via anneal or a custom Reorderer)
//	           → contree.Assemble/Express (materialize the chosen order)
//	           → handed to your contraction executor.
package cotengo
