package playback

// Pure track-resolution policy. These functions take the relevant
// session fields and return a catalog index, so the skip and
// end-of-track logic is unit-testable without a live widget. randIdx
// picks a uniform random index in [0, n); the pick may land on the
// current track, there is no history exclusion.

// nextIndex resolves a manual skip forward (also the RepeatAll catalog
// fallback at end of track). Returns -1 for a no-op.
//
//   - no current track: start at catalog index 0
//   - mid-catalog: index+1
//   - at the last entry: shuffle picks a random entry, RepeatAll wraps
//     to 0, otherwise stay put
func nextIndex(index, n int, shuffle bool, mode RepeatMode, randIdx func(int) int) int {
	if n == 0 {
		return -1
	}
	if index < 0 {
		return 0
	}
	if index >= n-1 {
		switch {
		case shuffle:
			return randIdx(n)
		case mode == RepeatAll:
			return 0
		default:
			return -1
		}
	}
	return index + 1
}

// prevIndex resolves a skip backward once the restart threshold has
// been ruled out by the caller. Returns -1 for a no-op.
func prevIndex(index, n int, shuffle bool, mode RepeatMode, randIdx func(int) int) int {
	if n == 0 {
		return -1
	}
	if index > 0 {
		return index - 1
	}
	if shuffle {
		return randIdx(n)
	}
	if mode == RepeatAll && index == 0 {
		return n - 1
	}
	return -1
}

// restartThresholdSeconds: "previous" restarts the current track
// instead of changing tracks when the playhead is past this point.
const restartThresholdSeconds = 3.0
