// Package grouping links scheduled course instances to their master records.
package grouping

import "kursnet-xml-tool/internal/domain"

// Group partitions records into master records with their instances.
// Groups follow the order parents appear in; children keep their relative
// input order. Instances whose parent id is not among the parents are left
// out of every group; see Orphans.
func Group(records []*domain.CourseRecord) []domain.Group {
	var parents []*domain.CourseRecord
	children := map[string][]*domain.CourseRecord{}

	for _, r := range records {
		if pid := r.ParentID(); pid != "" {
			children[pid] = append(children[pid], r)
			continue
		}
		parents = append(parents, r)
	}

	groups := make([]domain.Group, 0, len(parents))
	for _, p := range parents {
		groups = append(groups, domain.Group{
			Parent:   p,
			Children: children[p.ProductID()],
		})
	}
	return groups
}

// Orphans returns the instances whose referenced parent is not in records,
// in input order.
func Orphans(records []*domain.CourseRecord) []*domain.CourseRecord {
	parentIDs := map[string]bool{}
	for _, r := range records {
		if r.IsParent() {
			parentIDs[r.ProductID()] = true
		}
	}

	var out []*domain.CourseRecord
	for _, r := range records {
		if pid := r.ParentID(); pid != "" && !parentIDs[pid] {
			out = append(out, r)
		}
	}
	return out
}
