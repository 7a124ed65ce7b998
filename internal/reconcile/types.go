package reconcile

import "kursnet-xml-tool/internal/domain"

// Result is the minimal update set between the loaded catalog and the
// working set.
type Result struct {
	// Changed holds new records and records that differ from their original,
	// in working-set order.
	Changed []*domain.CourseRecord
	// New counts the records in Changed that had no original.
	New int
	// DeletedIDs is the removal log, duplicates included.
	DeletedIDs []string
}

// Empty reports whether there is nothing to deliver.
func (r Result) Empty() bool {
	return len(r.Changed) == 0 && len(r.DeletedIDs) == 0
}
