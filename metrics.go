package gridsearch

import "math"

// Confusion holds the four cells of a binary confusion matrix.
type Confusion struct {
	TN, FP, FN, TP int
}

// ConfusionMatrix tallies predictions against truth. Labels are 0/1 and
// both slices must have the same length.
func ConfusionMatrix(truth, predicted []int) Confusion {
	var c Confusion
	for i, t := range truth {
		switch {
		case t == 0 && predicted[i] == 0:
			c.TN++
		case t == 0 && predicted[i] == 1:
			c.FP++
		case t == 1 && predicted[i] == 0:
			c.FN++
		default:
			c.TP++
		}
	}
	return c
}

// Metrics holds the four derived classification-quality scores.
type Metrics struct {
	Accuracy    float64
	Sensitivity float64
	Specificity float64
	MCC         float64
}

// Metrics derives accuracy, sensitivity, specificity, and the Matthews
// correlation coefficient from the confusion matrix. The arithmetic is
// unguarded: a zero cell sum propagates NaN through the affected score.
func (c Confusion) Metrics() Metrics {
	tn := float64(c.TN)
	fp := float64(c.FP)
	fn := float64(c.FN)
	tp := float64(c.TP)

	return Metrics{
		Accuracy:    (tn + tp) / (tn + tp + fp + fn),
		Sensitivity: tp / (tp + fn),
		Specificity: tn / (tn + fp),
		MCC:         (tp*tn - fp*fn) / math.Sqrt((tp+fp)*(tp+fn)*(tn+fp)*(tn+fn)),
	}
}
