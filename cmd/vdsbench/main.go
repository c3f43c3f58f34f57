// Command vdsbench exercises the vds-common tree strategies: bench times
// bulk operations, soak runs a randomized operation mix and verifies the
// structural invariants after every batch.
package main

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/amardeepsingh/vds-common/tree"
)

var log = slog.Default().With("system", "vdsbench")

func main() {
	app := &cli.App{
		Name:  "vdsbench",
		Usage: "exercise and soak-verify the vds-common tree strategies",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Value: 100000, Usage: "number of keys per run"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "rng seed"},
			&cli.Float64Flag{Name: "alpha", Value: tree.DefaultAlpha, Usage: "scapegoat weight-balance factor"},
			&cli.StringFlag{Name: "mode", Value: "all", Usage: "unbalanced, scapegoat, avl, or all"},
		},
		Commands: []*cli.Command{
			{
				Name:   "bench",
				Usage:  "time bulk insert, lookup, and remove per strategy",
				Action: runBench,
			},
			{
				Name:   "soak",
				Usage:  "randomized operation mix with invariant verification",
				Action: runSoak,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func selectedModes(s string) ([]tree.Mode, error) {
	switch s {
	case "all":
		return []tree.Mode{tree.Unbalanced, tree.Scapegoat, tree.AVL}, nil
	case "unbalanced":
		return []tree.Mode{tree.Unbalanced}, nil
	case "scapegoat":
		return []tree.Mode{tree.Scapegoat}, nil
	case "avl":
		return []tree.Mode{tree.AVL}, nil
	}
	return nil, fmt.Errorf("unknown mode %q", s)
}

func newTree(mode tree.Mode, alpha float64) (tree.Tree[int, int], error) {
	if mode == tree.Scapegoat {
		return tree.NewScapegoat[int, int](cmp.Compare[int], alpha)
	}
	return tree.New[int, int](mode, cmp.Compare[int])
}

func runBench(c *cli.Context) error {
	modes, err := selectedModes(c.String("mode"))
	if err != nil {
		return err
	}
	n := c.Int("n")
	rng := rand.New(rand.NewSource(c.Int64("seed")))
	keys := rng.Perm(n)

	for _, mode := range modes {
		tr, err := newTree(mode, c.Float64("alpha"))
		if err != nil {
			return err
		}
		start := time.Now()
		for _, k := range keys {
			if err := tr.Insert(k, k); err != nil {
				return err
			}
		}
		insert := time.Since(start)

		start = time.Now()
		for _, k := range keys {
			if _, _, err := tr.TryGet(k); err != nil {
				return err
			}
		}
		lookup := time.Since(start)

		start = time.Now()
		for _, k := range keys {
			if _, err := tr.Remove(k); err != nil {
				return err
			}
		}
		remove := time.Since(start)

		log.Info("bench",
			"mode", mode.String(),
			"n", n,
			"insert", insert,
			"lookup", lookup,
			"remove", remove,
		)
	}
	return nil
}

func runSoak(c *cli.Context) error {
	modes, err := selectedModes(c.String("mode"))
	if err != nil {
		return err
	}
	n := c.Int("n")
	alpha := c.Float64("alpha")
	rng := rand.New(rand.NewSource(c.Int64("seed")))

	for _, mode := range modes {
		tr, err := newTree(mode, alpha)
		if err != nil {
			return err
		}
		ref := map[int]int{}
		const batch = 1000
		for done := 0; done < n; done += batch {
			for i := 0; i < batch; i++ {
				k := rng.Intn(n)
				if rng.Intn(3) == 0 {
					removed, err := tr.Remove(k)
					if err != nil {
						return err
					}
					_, inRef := ref[k]
					if removed != inRef {
						return fmt.Errorf("%s: removal of %d disagrees with reference", mode, k)
					}
					delete(ref, k)
				} else {
					v := rng.Int()
					if err := tr.Insert(k, v); err != nil {
						return err
					}
					ref[k] = v
				}
			}
			if err := verify(tr, ref, mode, alpha); err != nil {
				return err
			}
		}
		log.Info("soak passed", "mode", mode.String(), "ops", n, "final_size", tr.Size())
	}
	return nil
}

// verify checks the ordering invariant, size consistency, agreement with
// the reference map, and the per-strategy balance bounds.
func verify(tr tree.Tree[int, int], ref map[int]int, mode tree.Mode, alpha float64) error {
	if tr.Size() != len(ref) {
		return fmt.Errorf("%s: size %d, reference holds %d", mode, tr.Size(), len(ref))
	}
	count := 0
	last := math.MinInt
	for n := range tr.Nodes() {
		k := n.Key()
		if k <= last && count > 0 {
			return fmt.Errorf("%s: keys out of order: %d after %d", mode, k, last)
		}
		if want, ok := ref[k]; !ok || want != n.Value() {
			return fmt.Errorf("%s: entry %d disagrees with reference", mode, k)
		}
		last = k
		count++
	}
	if count != tr.Size() {
		return fmt.Errorf("%s: walk yielded %d entries, size is %d", mode, count, tr.Size())
	}

	root := findRoot(tr)
	if root == nil {
		return nil // empty tree, nothing structural to check
	}
	depth := maxDepth(root)
	switch mode {
	case tree.AVL:
		if bound := int(1.45*math.Log2(float64(count+2))) + 2; depth > bound {
			return fmt.Errorf("avl: depth %d exceeds bound %d at size %d", depth, bound, count)
		}
	case tree.Scapegoat:
		// maxSize never exceeds size/alpha between rebuilds, so the depth
		// bound log_{1/alpha}(maxSize)+1 relaxes to log_{1/alpha}(size)+2.
		bound := int(math.Log(float64(count+1))/math.Log(1/alpha)) + 3
		if depth > bound {
			return fmt.Errorf("scapegoat: depth %d exceeds bound %d at size %d", depth, bound, count)
		}
	}
	return nil
}

// findRoot recovers the root from the node walk: the root is the one
// node that is nobody's child.
func findRoot(tr tree.Tree[int, int]) *tree.Node[int, int] {
	children := make(map[*tree.Node[int, int]]struct{})
	var all []*tree.Node[int, int]
	for n := range tr.Nodes() {
		all = append(all, n)
		if n.Left() != nil {
			children[n.Left()] = struct{}{}
		}
		if n.Right() != nil {
			children[n.Right()] = struct{}{}
		}
	}
	for _, n := range all {
		if _, ok := children[n]; !ok {
			return n
		}
	}
	return nil
}

func maxDepth(n *tree.Node[int, int]) int {
	if n == nil {
		return 0
	}
	return 1 + max(maxDepth(n.Left()), maxDepth(n.Right()))
}
