package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/haze/section"
)

// errVerify reports failed property checks.
var errVerify = errors.New("verification failed")

// verifyReport counts property checks over sampled sections.
type verifyReport struct {
	Sections    int
	Doorways    int
	Rotations   int
	Asymmetric  int
	Unstable    int
	FirstFailed string
}

func (r verifyReport) failures() int { return r.Asymmetric + r.Unstable }

func newVerifyCmd(a *app) *cobra.Command {
	var (
		samples int
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check doorway symmetry and rotation invariance on random sections",
		Long: `verify samples random sections of the configured labyrinth and checks
that walking through any doorway and back returns to the same section, and
that every rotation of a section has the same identity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if samples < 1 {
				return fmt.Errorf("%w: --samples must be >= 1 (got %d)", errUsage, samples)
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Explore.Seed = seed
			}
			sp, err := a.cfg.Space()
			if err != nil {
				return err
			}
			rng, used := a.cfg.Rand()
			a.log.Info("haze verify", slog.Int("samples", samples), slog.Int64("seed", used))

			rep, err := verifySpace(sp, func() (section.Section, error) { return sp.RandomOrigin(rng) }, samples)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "checked %d sections, %d doorways, %d rotations: %d asymmetric, %d unstable\n",
				rep.Sections, rep.Doorways, rep.Rotations, rep.Asymmetric, rep.Unstable)
			if rep.failures() > 0 {
				return fmt.Errorf("%w: first failure at %s", errVerify, rep.FirstFailed)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&samples, "samples", "s", 10_000, "number of random sections to check")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")

	return cmd
}

// verifySpace checks n sections produced by next.
func verifySpace(sp *section.Space, next func() (section.Section, error), n int) (verifyReport, error) {
	var rep verifyReport
	fail := func(format string, args ...any) {
		if rep.FirstFailed == "" {
			rep.FirstFailed = fmt.Sprintf(format, args...)
		}
	}

	for i := 0; i < n; i++ {
		s, err := next()
		if err != nil {
			return rep, err
		}
		rep.Sections++

		for door := 0; door < sp.Size(); door++ {
			rep.Doorways++
			nb, err := sp.NeighborThrough(s, door)
			if err != nil {
				return rep, err
			}
			back, err := sp.NeighborThrough(nb, door)
			if err != nil {
				return rep, err
			}
			if !back.Equal(s) {
				rep.Asymmetric++
				fail("section %v doorway %d returns to %v", s, door, back)
			}
		}

		for k := 1; k < sp.Size(); k++ {
			rep.Rotations++
			rot, err := sp.FromRing(s.Ring().Rotate(k))
			if err != nil {
				return rep, err
			}
			if rot.Key() != s.Key() || !rot.Same(s) {
				rep.Unstable++
				fail("section %v rotated by %d has a different identity", s, k)
			}
		}
	}

	return rep, nil
}
