package forecast

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
)

// ForestConfig controls ensemble training. The seed fixes every random
// decision (bootstrap draws, feature subsets) so identical inputs always
// produce identical forests.
type ForestConfig struct {
	Trees      int
	Seed       int64
	MaxDepth   int
	MinSamples int
}

// DefaultForestConfig mirrors the classic 100-tree ensemble defaults
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:      100,
		Seed:       42,
		MaxDepth:   16,
		MinSamples: 2,
	}
}

// bootstrapSample draws n row indices with replacement
func bootstrapSample(rng *rand.Rand, n int) []int {
	sample := make([]int, n)
	for i := range sample {
		sample[i] = rng.Intn(n)
	}
	return sample
}

// fitTrees grows count trees in parallel across available cores. Each tree
// derives its own generator from the base seed and its index, so the result
// is independent of goroutine scheduling.
func fitTrees(count int, build func(treeIdx int, rng *rand.Rand) *treeNode, seed int64) []*treeNode {
	trees := make([]*treeNode, count)

	workers := runtime.NumCPU()
	if workers > count {
		workers = count
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				rng := rand.New(rand.NewSource(seed + int64(t)))
				trees[t] = build(t, rng)
			}
		}()
	}
	for t := 0; t < count; t++ {
		jobs <- t
	}
	close(jobs)
	wg.Wait()

	return trees
}

// regressionForest predicts all numeric targets jointly: every tree is grown
// against the combined SSE of the full target vector, so correlated outputs
// share structure.
type regressionForest struct {
	trees   []*treeNode
	targets int
}

func fitRegressionForest(features [][]float64, targets [][]float64, cfg ForestConfig) *regressionForest {
	n := len(features)
	p := len(features[0])
	treeCfg := treeConfig{
		maxDepth:   cfg.MaxDepth,
		minSamples: cfg.MinSamples,
		mtry:       maxInt(1, p/3),
	}

	trees := fitTrees(cfg.Trees, func(_ int, rng *rand.Rand) *treeNode {
		return buildRegressionTree(features, targets, bootstrapSample(rng, n), 0, treeCfg, rng)
	}, cfg.Seed)

	return &regressionForest{trees: trees, targets: len(targets[0])}
}

// predict averages the per-tree leaf means
func (f *regressionForest) predict(features []float64) []float64 {
	out := make([]float64, f.targets)
	for _, tree := range f.trees {
		leaf := tree.predict(features)
		for t, v := range leaf.value {
			out[t] += v
		}
	}
	for t := range out {
		out[t] /= float64(len(f.trees))
	}
	return out
}

// classificationForest predicts a single label by majority vote
type classificationForest struct {
	trees      []*treeNode
	numClasses int
}

func fitClassificationForest(features [][]float64, labels []int, numClasses int, cfg ForestConfig) *classificationForest {
	n := len(features)
	p := len(features[0])
	treeCfg := treeConfig{
		maxDepth:   cfg.MaxDepth,
		minSamples: cfg.MinSamples,
		mtry:       maxInt(1, int(math.Sqrt(float64(p)))),
	}

	// Offset the seed stream so the classifier does not reuse the
	// regressor's bootstrap draws.
	trees := fitTrees(cfg.Trees, func(_ int, rng *rand.Rand) *treeNode {
		return buildClassificationTree(features, labels, bootstrapSample(rng, n), numClasses, 0, treeCfg, rng)
	}, cfg.Seed+int64(cfg.Trees))

	return &classificationForest{trees: trees, numClasses: numClasses}
}

// predict returns the majority-voted class index
func (f *classificationForest) predict(features []float64) int {
	votes := make([]float64, f.numClasses)
	for _, tree := range f.trees {
		votes[tree.predict(features).class]++
	}
	return majorityClass(votes)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
