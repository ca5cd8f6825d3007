package forecast

import "math/rand"

// treeNode is one node of a CART tree grown over binary one-hot features.
// A split sends rows with feature==1 right and feature==0 left, so no
// threshold needs to be stored.
type treeNode struct {
	feature int
	left    *treeNode
	right   *treeNode
	leaf    bool
	value   []float64 // regression: per-target means; classification: class votes
	class   int
}

type treeConfig struct {
	maxDepth   int
	minSamples int
	mtry       int
}

func (n *treeNode) predict(features []float64) *treeNode {
	node := n
	for !node.leaf {
		if features[node.feature] > 0.5 {
			node = node.right
		} else {
			node = node.left
		}
	}
	return node
}

// candidateFeatures draws mtry distinct feature indices for split selection
func candidateFeatures(rng *rand.Rand, total, mtry int) []int {
	if mtry >= total {
		all := make([]int, total)
		for i := range all {
			all[i] = i
		}
		return all
	}

	perm := rng.Perm(total)
	return perm[:mtry]
}

// ---- regression ----

// targetMeans computes the per-target mean over the given rows
func targetMeans(targets [][]float64, idx []int) []float64 {
	if len(idx) == 0 {
		return nil
	}
	width := len(targets[idx[0]])
	means := make([]float64, width)
	for _, i := range idx {
		for t, v := range targets[i] {
			means[t] += v
		}
	}
	for t := range means {
		means[t] /= float64(len(idx))
	}
	return means
}

// sumSquaredError totals, across all targets, the squared deviation from the
// group mean. Lower is better; the split criterion is SSE reduction.
func sumSquaredError(targets [][]float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	width := len(targets[idx[0]])
	sums := make([]float64, width)
	sumSquares := make([]float64, width)
	for _, i := range idx {
		for t, v := range targets[i] {
			sums[t] += v
			sumSquares[t] += v * v
		}
	}

	n := float64(len(idx))
	sse := 0.0
	for t := 0; t < width; t++ {
		sse += sumSquares[t] - sums[t]*sums[t]/n
	}
	return sse
}

func buildRegressionTree(features [][]float64, targets [][]float64, idx []int, depth int, cfg treeConfig, rng *rand.Rand) *treeNode {
	if depth >= cfg.maxDepth || len(idx) < cfg.minSamples {
		return &treeNode{leaf: true, value: targetMeans(targets, idx)}
	}

	parentSSE := sumSquaredError(targets, idx)
	if parentSSE == 0 {
		return &treeNode{leaf: true, value: targetMeans(targets, idx)}
	}

	bestFeature := -1
	bestScore := 0.0
	var bestLeft, bestRight []int

	for _, f := range candidateFeatures(rng, len(features[idx[0]]), cfg.mtry) {
		var left, right []int
		for _, i := range idx {
			if features[i][f] > 0.5 {
				right = append(right, i)
			} else {
				left = append(left, i)
			}
		}
		if len(left) == 0 || len(right) == 0 {
			continue
		}

		reduction := parentSSE - sumSquaredError(targets, left) - sumSquaredError(targets, right)
		if reduction > bestScore {
			bestFeature, bestScore = f, reduction
			bestLeft, bestRight = left, right
		}
	}

	if bestFeature < 0 {
		return &treeNode{leaf: true, value: targetMeans(targets, idx)}
	}

	return &treeNode{
		feature: bestFeature,
		left:    buildRegressionTree(features, targets, bestLeft, depth+1, cfg, rng),
		right:   buildRegressionTree(features, targets, bestRight, depth+1, cfg, rng),
	}
}

// ---- classification ----

func classCounts(labels []int, idx []int, numClasses int) []float64 {
	counts := make([]float64, numClasses)
	for _, i := range idx {
		counts[labels[i]]++
	}
	return counts
}

// giniImpurity over the class distribution of the given rows
func giniImpurity(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	gini := 1.0
	for _, c := range counts {
		p := c / n
		gini -= p * p
	}
	return gini
}

// majorityClass returns the most voted class; ties resolve to the lowest
// class index, which maps to the alphabetically-first label
func majorityClass(counts []float64) int {
	best := 0
	for class, c := range counts {
		if c > counts[best] {
			best = class
		}
	}
	return best
}

func buildClassificationTree(features [][]float64, labels []int, idx []int, numClasses, depth int, cfg treeConfig, rng *rand.Rand) *treeNode {
	counts := classCounts(labels, idx, numClasses)

	if depth >= cfg.maxDepth || len(idx) < cfg.minSamples || giniImpurity(counts, float64(len(idx))) == 0 {
		return &treeNode{leaf: true, value: counts, class: majorityClass(counts)}
	}

	parentGini := giniImpurity(counts, float64(len(idx)))
	bestFeature := -1
	bestScore := 0.0
	var bestLeft, bestRight []int

	for _, f := range candidateFeatures(rng, len(features[idx[0]]), cfg.mtry) {
		var left, right []int
		for _, i := range idx {
			if features[i][f] > 0.5 {
				right = append(right, i)
			} else {
				left = append(left, i)
			}
		}
		if len(left) == 0 || len(right) == 0 {
			continue
		}

		n := float64(len(idx))
		leftGini := giniImpurity(classCounts(labels, left, numClasses), float64(len(left)))
		rightGini := giniImpurity(classCounts(labels, right, numClasses), float64(len(right)))
		gain := parentGini - (float64(len(left))/n)*leftGini - (float64(len(right))/n)*rightGini
		if gain > bestScore {
			bestFeature, bestScore = f, gain
			bestLeft, bestRight = left, right
		}
	}

	if bestFeature < 0 {
		return &treeNode{leaf: true, value: counts, class: majorityClass(counts)}
	}

	return &treeNode{
		feature: bestFeature,
		left:    buildClassificationTree(features, labels, bestLeft, numClasses, depth+1, cfg, rng),
		right:   buildClassificationTree(features, labels, bestRight, numClasses, depth+1, cfg, rng),
	}
}
