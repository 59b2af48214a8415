// GameScout - Steam Library Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamescout

package predictor

import (
	"math/rand"
	"sort"
)

// TreeNode is one node of a regression tree, stored in a flat slice so the
// tree serializes cleanly with gob. Leaf nodes carry the predicted value;
// internal nodes route on Feature <= Threshold.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      int32
	Right     int32
	Value     float64
	Leaf      bool
}

// RegressionTree is a single CART regression tree.
type RegressionTree struct {
	Nodes []TreeNode
}

// Predict walks the tree for one feature vector.
func (t *RegressionTree) Predict(values []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}

	idx := int32(0)
	for {
		node := &t.Nodes[idx]
		if node.Leaf {
			return node.Value
		}
		if node.Feature < len(values) && values[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// maxSplitCandidates caps how many thresholds are evaluated per feature.
// Beyond this, thresholds are drawn from evenly spaced quantiles.
const maxSplitCandidates = 16

// treeBuilder grows one tree on a bootstrap sample.
type treeBuilder struct {
	features [][]float64
	targets  []float64

	maxDepth   int
	minLeaf    int
	subsetSize int
	rng        *rand.Rand

	nodes []TreeNode

	// importance accumulates sample-weighted variance reduction per
	// feature across all splits in this tree.
	importance []float64
}

// grow builds the tree over the given sample indices and returns it.
// b.nodes is scratch space reused across trees; the returned tree gets
// its own copy so later trees cannot overwrite it.
func (b *treeBuilder) grow(indices []int) RegressionTree {
	b.nodes = b.nodes[:0]
	b.buildNode(indices, 0)

	nodes := make([]TreeNode, len(b.nodes))
	copy(nodes, b.nodes)
	return RegressionTree{Nodes: nodes}
}

// buildNode recursively partitions indices and returns the node index.
func (b *treeBuilder) buildNode(indices []int, depth int) int32 {
	mean, variance := meanVariance(b.targets, indices)

	nodeIdx := int32(len(b.nodes))
	if depth >= b.maxDepth || len(indices) < 2*b.minLeaf || variance == 0 {
		b.nodes = append(b.nodes, TreeNode{Leaf: true, Value: mean})
		return nodeIdx
	}

	feature, threshold, gain := b.bestSplit(indices, variance)
	if feature < 0 {
		b.nodes = append(b.nodes, TreeNode{Leaf: true, Value: mean})
		return nodeIdx
	}

	left := make([]int, 0, len(indices))
	right := make([]int, 0, len(indices))
	for _, i := range indices {
		if b.features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.minLeaf || len(right) < b.minLeaf {
		b.nodes = append(b.nodes, TreeNode{Leaf: true, Value: mean})
		return nodeIdx
	}

	b.importance[feature] += gain * float64(len(indices))

	// Reserve the node before recursing so children land after it.
	b.nodes = append(b.nodes, TreeNode{Feature: feature, Threshold: threshold})
	leftIdx := b.buildNode(left, depth+1)
	rightIdx := b.buildNode(right, depth+1)
	b.nodes[nodeIdx].Left = leftIdx
	b.nodes[nodeIdx].Right = rightIdx

	return nodeIdx
}

// bestSplit searches a random feature subset for the split with the best
// variance reduction. Returns feature -1 when no split improves.
func (b *treeBuilder) bestSplit(indices []int, parentVariance float64) (int, float64, float64) {
	total := float64(len(indices))
	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	for _, feature := range b.sampleFeatures() {
		for _, threshold := range b.candidateThresholds(indices, feature) {
			var leftN, rightN float64
			var leftSum, leftSq, rightSum, rightSq float64

			for _, i := range indices {
				t := b.targets[i]
				if b.features[i][feature] <= threshold {
					leftN++
					leftSum += t
					leftSq += t * t
				} else {
					rightN++
					rightSum += t
					rightSq += t * t
				}
			}
			if leftN < float64(b.minLeaf) || rightN < float64(b.minLeaf) {
				continue
			}

			leftVar := leftSq/leftN - (leftSum/leftN)*(leftSum/leftN)
			rightVar := rightSq/rightN - (rightSum/rightN)*(rightSum/rightN)
			gain := parentVariance - (leftN/total)*leftVar - (rightN/total)*rightVar

			if gain > bestGain {
				bestFeature = feature
				bestThreshold = threshold
				bestGain = gain
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

// sampleFeatures draws the random feature subset for one split search.
func (b *treeBuilder) sampleFeatures() []int {
	total := len(b.features[0])
	k := b.subsetSize
	if k >= total {
		k = total
	}

	perm := b.rng.Perm(total)
	return perm[:k]
}

// candidateThresholds returns up to maxSplitCandidates thresholds for a
// feature, taken at midpoints between adjacent distinct sorted values.
func (b *treeBuilder) candidateThresholds(indices []int, feature int) []float64 {
	values := make([]float64, 0, len(indices))
	for _, i := range indices {
		values = append(values, b.features[i][feature])
	}
	sort.Float64s(values)

	distinct := values[:1]
	for _, v := range values[1:] {
		if v != distinct[len(distinct)-1] {
			distinct = append(distinct, v)
		}
	}
	if len(distinct) < 2 {
		return nil
	}

	midpoints := make([]float64, 0, len(distinct)-1)
	for i := 0; i+1 < len(distinct); i++ {
		midpoints = append(midpoints, (distinct[i]+distinct[i+1])/2)
	}
	if len(midpoints) <= maxSplitCandidates {
		return midpoints
	}

	// Evenly spaced quantiles over the midpoints.
	sampled := make([]float64, 0, maxSplitCandidates)
	step := float64(len(midpoints)) / float64(maxSplitCandidates)
	for i := 0; i < maxSplitCandidates; i++ {
		sampled = append(sampled, midpoints[int(float64(i)*step)])
	}
	return sampled
}

// meanVariance computes the target mean and population variance over a
// subset of sample indices.
func meanVariance(targets []float64, indices []int) (float64, float64) {
	if len(indices) == 0 {
		return 0, 0
	}

	var sum, sq float64
	for _, i := range indices {
		sum += targets[i]
		sq += targets[i] * targets[i]
	}
	n := float64(len(indices))
	mean := sum / n
	variance := sq/n - mean*mean
	if variance < 0 {
		variance = 0 // Numeric jitter on constant targets
	}
	return mean, variance
}
