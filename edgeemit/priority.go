package edgeemit

import "github.com/fib-lab/opendrive-importer/model"

// computePriority resolves per-side right-of-way priority from a road's
// signals: type 301/306 (priority road) => 2, type 205 (yield/stop)
// => 0, otherwise the default of 1. A signal with orientation > 0 sets the
// right side's priority; orientation < 0 sets the left side's.
func computePriority(signals []model.Signal) (right, left int) {
	right, left = 1, 1
	for _, sig := range signals {
		var val int
		switch sig.Type {
		case "301", "306":
			val = 2
		case "205":
			val = 0
		default:
			continue
		}
		if sig.Orientation > 0 {
			right = val
		} else if sig.Orientation < 0 {
			left = val
		}
	}
	return
}
