package exec

const maxWarningSamples = 8

// RunStats collects the non-fatal diagnostics of one view run. Integrity
// issues never abort anything; they are counted here and reported after
// the run, output still produced for every surviving row.
type RunStats struct {
	RowsScanned       int // target rows surviving the scan filter
	RowsExpanded      int // rows out of the last join stage
	Groups            int // groups emitted, zero for ungrouped views
	IntegrityWarnings int
	WarningSamples    []string // capped, identifiers only
}

func (self *RunStats) warn(sample string) {
	self.IntegrityWarnings++
	if len(self.WarningSamples) < maxWarningSamples {
		self.WarningSamples = append(self.WarningSamples, sample)
	}
}
