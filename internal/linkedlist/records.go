package linkedlist

import "listeditor/internal/domain"

// SetNodesByJSON replaces the whole list with nodes rebuilt from bulk-load
// records.
//
// A record's successor is the first entry of its connectedNodesIds naming
// another record, or none if that entry is the TAIL marker. Without an
// explicit match the next record in the slice is used, then TAIL. Nodes are
// ordered by walking successors from each record nothing points at, so the
// adjacency in the input decides the order rather than slice position. Cycles
// and branches are broken by visiting every record once; adjacency is then
// rewritten from the final order. Missing, duplicate or reserved (HEAD, TAIL)
// ids are replaced with generated ones. A record carrying the HEAD value is a
// *domain.ValidationError and leaves the list unchanged.
func (l *List) SetNodesByJSON(records []domain.Record) error {
	if len(records) == 0 {
		return domain.NewValidationError("records", "At least one node is required")
	}
	for _, r := range records {
		if err := checkValue(r.Value.Value.String()); err != nil {
			return err
		}
	}

	ids, taken := l.recordIDs(records)
	order := walkOrder(successors(records, ids))

	// HEAD keeps its id across reloads unless a record claims it
	headID := l.Head().ID
	if _, clash := taken[headID]; clash {
		headID = l.freshID(taken)
	}

	nodes := make([]domain.ListNode, 0, len(records)+1)
	nodes = append(nodes, domain.NewListNode(headID, domain.HeadValue, domain.TailMarker))
	for _, i := range order {
		nodes = append(nodes, domain.NewListNode(ids[i], records[i].Value.Value.String(), ""))
	}

	return l.updateNodes(l.chain(nodes))
}

// Records returns the list in bulk-load form, HEAD excluded
func (l *List) Records() []domain.Record {
	nodes := l.Nodes()
	records := make([]domain.Record, 0, len(nodes)-1)
	for _, n := range nodes[1:] {
		records = append(records, domain.RecordFromNode(n))
	}
	return records
}

// recordIDs returns the id each record will carry and the set of all of
// them. Only ids that survive are addressable by other records' adjacency.
func (l *List) recordIDs(records []domain.Record) ([]string, map[string]struct{}) {
	taken := make(map[string]struct{}, len(records)+1)
	for _, r := range records {
		taken[r.ID] = struct{}{}
	}

	ids := make([]string, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		id := r.ID
		if _, dup := seen[id]; dup || reservedID(id) {
			id = l.freshID(taken)
		}
		seen[id] = struct{}{}
		ids[i] = id
	}
	return ids, taken
}

// successors maps each record index to the index of its successor, or -1
func successors(records []domain.Record, ids []string) []int {
	index := make(map[string]int, len(records))
	for i, r := range records {
		// a regenerated id is not something the input could refer to
		if ids[i] == r.ID {
			index[r.ID] = i
		}
	}

	next := make([]int, len(records))
	for i, r := range records {
		next[i] = fallbackSuccessor(i, len(records))
		for _, target := range r.ConnectedNodesIDs {
			if target == domain.TailMarker {
				next[i] = -1
				break
			}
			if j, ok := index[target]; ok && j != i {
				next[i] = j
				break
			}
		}
	}
	return next
}

func fallbackSuccessor(i, n int) int {
	if i+1 < n {
		return i + 1
	}
	return -1
}

// walkOrder visits every index once, following next from each index that
// nothing points at, then from any index left over (cycles), in slice order
func walkOrder(next []int) []int {
	pointedAt := make([]bool, len(next))
	for _, j := range next {
		if j >= 0 {
			pointedAt[j] = true
		}
	}

	visited := make([]bool, len(next))
	order := make([]int, 0, len(next))
	walk := func(start int) {
		for i := start; i >= 0 && !visited[i]; i = next[i] {
			visited[i] = true
			order = append(order, i)
		}
	}

	for i := range next {
		if !pointedAt[i] {
			walk(i)
		}
	}
	for i := range next {
		walk(i)
	}
	return order
}
