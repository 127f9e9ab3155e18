package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

type DecisionTree struct {
	nodes       []TreeNode
	maxDepth    int
	maxFeatures int
	rnd         *rand.Rand
	nFeatures   int
	nClasses    int
}

type TreeNode struct {
	FeatureIdx   int       `json:"feature_idx"`
	Threshold    float64   `json:"threshold"`
	LeftChild    int       `json:"left_child"`
	RightChild   int       `json:"right_child"`
	Distribution []float64 `json:"distribution,omitempty"`
	IsLeaf       bool      `json:"is_leaf"`
}

// NewDecisionTree returns an untrained CART tree. maxDepth <= 0 grows the tree
// until leaves are pure; maxFeatures <= 0 considers every feature at each split.
// rnd is only used when maxFeatures limits the candidates.
func NewDecisionTree(maxDepth, maxFeatures int, rnd *rand.Rand) *DecisionTree {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	return &DecisionTree{
		maxDepth:    maxDepth,
		maxFeatures: maxFeatures,
		rnd:         rnd,
	}
}

func (dt *DecisionTree) Train(features [][]float64, labels []int) error {
	nFeatures, nClasses, err := checkTrainingSet(features, labels)
	if err != nil {
		return err
	}
	indices := make([]int, len(features))
	for i := range indices {
		indices[i] = i
	}
	dt.fit(features, labels, indices, nFeatures, nClasses)
	return nil
}

// PredictRow returns the class distribution of the leaf reached by row.
func (dt *DecisionTree) PredictRow(row []float64) ([]float64, error) {
	if len(dt.nodes) == 0 {
		return nil, ErrNotTrained
	}
	if len(row) != dt.nFeatures {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFeatureMismatch, len(row), dt.nFeatures)
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.Distribution, nil
		}
		if row[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx <= 0 || idx >= len(dt.nodes) {
			return nil, errors.New("invalid tree state")
		}
	}
}

// Predict returns the most likely class and its probability.
func (dt *DecisionTree) Predict(row []float64) (int, float64, error) {
	dist, err := dt.PredictRow(row)
	if err != nil {
		return 0, 0, err
	}
	label, confidence := argmax(dist)
	return label, confidence, nil
}

func (dt *DecisionTree) PredictProba(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		dist, err := dt.PredictRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = append([]float64(nil), dist...)
	}
	return out, nil
}

func (dt *DecisionTree) NFeatures() int { return dt.nFeatures }

func (dt *DecisionTree) NClasses() int { return dt.nClasses }

// Depth is the number of edges on the longest root-to-leaf path.
func (dt *DecisionTree) Depth() int {
	if len(dt.nodes) == 0 {
		return 0
	}
	var walk func(idx int) int
	walk = func(idx int) int {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return 0
		}
		return 1 + max(walk(node.LeftChild), walk(node.RightChild))
	}
	return walk(0)
}

// fit grows the tree over features[indices]. Indices may repeat, which is how
// bootstrap samples are weighted.
func (dt *DecisionTree) fit(features [][]float64, labels []int, indices []int, nFeatures, nClasses int) {
	dt.nFeatures = nFeatures
	dt.nClasses = nClasses
	dt.nodes = dt.nodes[:0]
	b := &treeBuilder{
		tree:     dt,
		features: features,
		labels:   labels,
		order:    make([]int, nFeatures),
	}
	for i := range b.order {
		b.order[i] = i
	}
	b.build(indices, 0)
}

type treeBuilder struct {
	tree     *DecisionTree
	features [][]float64
	labels   []int
	order    []int
}

func (b *treeBuilder) build(indices []int, depth int) int {
	dt := b.tree
	idx := len(dt.nodes)
	dt.nodes = append(dt.nodes, TreeNode{})

	counts := b.classCounts(indices)
	if len(indices) < 2 || isPure(counts) || (dt.maxDepth > 0 && depth >= dt.maxDepth) {
		dt.nodes[idx] = leafNode(counts, len(indices))
		return idx
	}

	feature, threshold, ok := b.bestSplit(indices, counts)
	if !ok {
		dt.nodes[idx] = leafNode(counts, len(indices))
		return idx
	}

	left, right := b.partition(indices, feature, threshold)
	node := TreeNode{
		FeatureIdx: feature,
		Threshold:  threshold,
	}
	node.LeftChild = b.build(left, depth+1)
	node.RightChild = b.build(right, depth+1)
	dt.nodes[idx] = node
	return idx
}

// bestSplit keeps drawing candidate features past maxFeatures until at least
// one of them yields a valid partition.
func (b *treeBuilder) bestSplit(indices []int, counts []int) (int, float64, bool) {
	dt := b.tree
	limit := len(b.order)
	if dt.maxFeatures > 0 && dt.maxFeatures < limit {
		limit = dt.maxFeatures
		dt.rnd.Shuffle(len(b.order), func(i, j int) {
			b.order[i], b.order[j] = b.order[j], b.order[i]
		})
	}

	bestFeature := -1
	bestThreshold := 0.0
	bestImpurity := math.MaxFloat64

	sorted := make([]int, len(indices))
	for visited, featureIdx := range b.order {
		if visited >= limit && bestFeature != -1 {
			break
		}
		copy(sorted, indices)
		sort.Slice(sorted, func(i, j int) bool {
			return b.features[sorted[i]][featureIdx] < b.features[sorted[j]][featureIdx]
		})

		leftCounts := make([]int, len(counts))
		rightCounts := append([]int(nil), counts...)
		total := len(sorted)
		for i := 0; i < total-1; i++ {
			label := b.labels[sorted[i]]
			leftCounts[label]++
			rightCounts[label]--

			current := b.features[sorted[i]][featureIdx]
			next := b.features[sorted[i+1]][featureIdx]
			if next <= current {
				continue
			}
			nLeft := i + 1
			impurity := weightedGini(leftCounts, nLeft, rightCounts, total-nLeft)
			if impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = featureIdx
				bestThreshold = current + (next-current)/2
				if bestThreshold == next {
					bestThreshold = current
				}
			}
		}
	}
	if bestFeature == -1 {
		return -1, 0, false
	}
	return bestFeature, bestThreshold, true
}

func (b *treeBuilder) partition(indices []int, featureIdx int, threshold float64) ([]int, []int) {
	left := make([]int, 0, len(indices))
	right := make([]int, 0, len(indices))
	for _, i := range indices {
		if b.features[i][featureIdx] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

func (b *treeBuilder) classCounts(indices []int) []int {
	counts := make([]int, b.tree.nClasses)
	for _, i := range indices {
		counts[b.labels[i]]++
	}
	return counts
}

func leafNode(counts []int, n int) TreeNode {
	dist := make([]float64, len(counts))
	if n > 0 {
		for i, c := range counts {
			dist[i] = float64(c) / float64(n)
		}
	}
	return TreeNode{
		FeatureIdx:   -1,
		LeftChild:    -1,
		RightChild:   -1,
		Distribution: dist,
		IsLeaf:       true,
	}
}

func weightedGini(leftCounts []int, nLeft int, rightCounts []int, nRight int) float64 {
	total := float64(nLeft + nRight)
	return (float64(nLeft)/total)*gini(leftCounts, nLeft) + (float64(nRight)/total)*gini(rightCounts, nRight)
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		impurity -= p * p
	}
	return impurity
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func argmax(dist []float64) (int, float64) {
	best := 0
	for i, p := range dist {
		if p > dist[best] {
			best = i
		}
	}
	if len(dist) == 0 {
		return 0, 0
	}
	return best, dist[best]
}

func checkTrainingSet(features [][]float64, labels []int) (int, int, error) {
	if len(features) == 0 || len(labels) == 0 {
		return 0, 0, errors.New("features or labels empty")
	}
	if len(features) != len(labels) {
		return 0, 0, errors.New("features and labels size mismatch")
	}
	nFeatures := len(features[0])
	if nFeatures == 0 {
		return 0, 0, errors.New("rows must have at least one feature")
	}
	for i, row := range features {
		if len(row) != nFeatures {
			return 0, 0, fmt.Errorf("row %d has %d features, want %d", i, len(row), nFeatures)
		}
	}
	maxLabel := 0
	for _, label := range labels {
		if label < 0 {
			return 0, 0, fmt.Errorf("negative label %d", label)
		}
		if label > maxLabel {
			maxLabel = label
		}
	}
	nClasses := maxLabel + 1
	if nClasses < 2 {
		nClasses = 2
	}
	return nFeatures, nClasses, nil
}
