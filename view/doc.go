package view

// The view assembler. Each view is a named, fixed query shape: a plan
// built once per run, executed against a store snapshot, projected into a
// typed output row. Builders are pure functions of the store; running one
// twice over the same store yields identical rows in identical order.
