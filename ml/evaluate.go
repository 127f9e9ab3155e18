package ml

import "math/rand"

type Metrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64
}

// SplitDataset shuffles data with rnd and holds out testRatio of it.
func SplitDataset(data Dataset, testRatio float64, rnd *rand.Rand) (train, test Dataset) {
	if testRatio <= 0 || testRatio >= 1 {
		testRatio = 0.2
	}
	indices := rnd.Perm(len(data.Features))
	split := int(float64(len(indices)) * (1 - testRatio))
	for i, idx := range indices {
		if i < split {
			train.Features = append(train.Features, data.Features[idx])
			train.Labels = append(train.Labels, data.Labels[idx])
		} else {
			test.Features = append(test.Features, data.Features[idx])
			test.Labels = append(test.Labels, data.Labels[idx])
		}
	}
	return train, test
}

// Evaluate scores model on test, treating positive as the positive class.
func Evaluate(model Classifier, test Dataset, positive int) (Metrics, error) {
	if len(test.Features) == 0 {
		return Metrics{}, nil
	}
	proba, err := model.PredictProba(test.Features)
	if err != nil {
		return Metrics{}, err
	}

	var correct, truePositive, predictedPositive, actualPositive int
	for i, dist := range proba {
		label, _ := argmax(dist)
		if label == test.Labels[i] {
			correct++
		}
		if label == positive {
			predictedPositive++
		}
		if test.Labels[i] == positive {
			actualPositive++
			if label == positive {
				truePositive++
			}
		}
	}

	var m Metrics
	m.Accuracy = float64(correct) / float64(len(proba))
	if predictedPositive > 0 {
		m.Precision = float64(truePositive) / float64(predictedPositive)
	}
	if actualPositive > 0 {
		m.Recall = float64(truePositive) / float64(actualPositive)
	}
	return m, nil
}
