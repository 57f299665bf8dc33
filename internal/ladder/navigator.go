package ladder

// Next returns the rung after focused. ok is false when focused is the last
// rung (or out of range), in which case no focus transfer should happen.
func Next(focused, n int) (target int, ok bool) {
	return step(focused, n, 1)
}

// Previous returns the rung before focused. ok is false at the first rung.
func Previous(focused, n int) (target int, ok bool) {
	return step(focused, n, -1)
}

func step(focused, n, delta int) (int, bool) {
	if focused < 0 || focused >= n {
		return focused, false
	}
	target := focused + delta
	if target < 0 || target >= n {
		return focused, false
	}
	return target, true
}
