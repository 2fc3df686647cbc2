package prefs

import (
	"sort"
	"strconv"
)

// encodeIDs renders ids as the string set the store persists.
func encodeIDs(ids []int64) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[strconv.FormatInt(id, 10)] = struct{}{}
	}
	return set
}

// decodeIDs parses persisted members back into ids, skipping entries that
// do not parse (a foreign writer may have polluted the set). Output is
// sorted so projections are stable across reads.
func decodeIDs(members []string) []int64 {
	out := make([]int64, 0, len(members))
	for _, m := range members {
		if id, err := strconv.ParseInt(m, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func lastNotifiedKey(id int64) string {
	return lastNotifiedPrefix + strconv.FormatInt(id, 10)
}
