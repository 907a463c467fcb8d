// internal/dataset/split.go
package dataset

import "math/rand"

// Split shuffles entries deterministically with the given seed and cuts them
// at the training fraction. The same seed and input order always produce the
// same split, so evaluation runs see a stable test set.
func Split(entries []Entry, trainFraction float64, seed int64) (train, test []Entry) {
	if trainFraction < 0 {
		trainFraction = 0
	}
	if trainFraction > 1 {
		trainFraction = 1
	}

	shuffled := make([]Entry, len(entries))
	copy(shuffled, entries)

	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(float64(len(shuffled)) * trainFraction)
	return shuffled[:cut], shuffled[cut:]
}
