package ocr

// Search evaluates every candidate in order and returns the best eligible result.
// evaluate reports whether a result may compete at all; better(a, b) reports
// whether a strictly beats b. Ties keep the earlier candidate. found is false
// when nothing was eligible.
func Search[C, R any](candidates []C, evaluate func(C) (R, bool), better func(a, b R) bool) (best R, found bool) {
	for _, c := range candidates {
		r, ok := evaluate(c)
		if !ok {
			continue
		}
		if !found || better(r, best) {
			best, found = r, true
		}
	}
	return best, found
}
