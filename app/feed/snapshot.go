package feed

// CloneSnapshot returns a shallow copy of s. Items are value types, so the
// copy can be handed out without aliasing the original backing array.
func CloneSnapshot(s Snapshot) Snapshot {
	if s == nil {
		return Snapshot{}
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// SameOrder reports whether a and b have the same length and the same items
// in the same positions, compared by URL. Translated snapshots keep the URL
// of the item they were derived from, so this holds across translation.
func SameOrder(a, b Snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].URL != b[i].URL {
			return false
		}
	}
	return true
}
