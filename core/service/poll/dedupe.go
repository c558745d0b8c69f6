// Package poll orchestrates per-user inbox polling.
package poll

// Dedupe returns the candidates not present in seen, preserving candidate
// order and collapsing repeats within the batch itself. Message ids are
// user-scoped upstream, so no cross-user collision is possible here.
func Dedupe(seen map[string]struct{}, candidates []string) []string {
	out := make([]string, 0, len(candidates))
	emitted := make(map[string]struct{}, len(candidates))
	for _, id := range candidates {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		if _, ok := emitted[id]; ok {
			continue
		}
		emitted[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
