package plan

// The following documentation describes how a view query is mapped onto an
// executable pipeline over the entity store.
//
// A built plan contains up to 4 phases, executed sequentially by the exec
// package. The schema is fixed (the nine Olist relations), so the planner
// does no symbol resolution; its job is cardinality/optionality checking
// and join ordering.
//
// 1) Scan
//    The target relation (orders) is walked in load order. The scan filter,
//    if any, is applied here, *before* any join. This ordering is load
//    bearing: the delivered-orders filter has to remove an order before an
//    inner join to reviews or items gets a chance to decide its fate, or a
//    non-delivered order without a review would be dropped for the wrong
//    reason and the diagnostics would lie.
//
// 2) Join
//    Each join step attaches one relation to the row in flight. Steps are
//    ordered by key provenance: a step can only run once the relation that
//    carries its lookup key has been joined (order_items before products,
//    customers before customer-side geolocation, ...). One-to-many steps
//    fan the row out, one per match; to-one steps are plain lookups. Outer
//    steps keep the row with a nil right side on a miss, inner steps drop
//    the row.
//
// 3) GroupBy
//    Collapses the fan-out back to one row per target key, in first-seen
//    key order. Columns the query assumes single-valued per group are
//    checked; a conflict takes the first-encountered value and counts an
//    integrity warning rather than failing, since the source data does not
//    actually guarantee the 1:1 shapes it implies.
//
// 4) Agg
//    Per-group accumulators (distinct item count, sums, null-ignoring
//    average). Runs fused with the group-by walk; there is no separate
//    having/sort phase because the three shipped views never need one.
//
// Plans are pure descriptions: building one performs no I/O and reads no
// records, so a configuration error always surfaces before the first row.
