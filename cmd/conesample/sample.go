package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/sqlite-cone/sky"
)

type sampleOptions struct {
	ra, dec     string
	minCount    int
	startRadius float64
	step        float64
}

func newSampleCmd(root *rootOptions) *cobra.Command {
	opts := &sampleOptions{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample the stars around one position and print them as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(root)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("min-count") {
				a.cfg.Sampler.MinCount = opts.minCount
			}
			if flags.Changed("start-radius") {
				a.cfg.Sampler.StartRadius = opts.startRadius
			}
			if flags.Changed("step") {
				a.cfg.Sampler.Step = opts.step
			}
			err = runSample(cmd, a, opts)
			if ferr := a.flushMetrics(); err == nil {
				err = ferr
			}
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.ra, "ra", "", "right ascension in degrees, [0, 360)")
	flags.StringVar(&opts.dec, "dec", "", "declination in degrees, [-90, 90)")
	flags.IntVar(&opts.minCount, "min-count", 0, "target number of stars")
	flags.Float64Var(&opts.startRadius, "start-radius", 0, "initial radius in degrees")
	flags.Float64Var(&opts.step, "step", 0, "radius increment in degrees")
	_ = cmd.MarkFlagRequired("ra")
	_ = cmd.MarkFlagRequired("dec")
	return cmd
}

func runSample(cmd *cobra.Command, a *app, opts *sampleOptions) error {
	center, err := sky.ParseCoordinate(opts.ra, opts.dec)
	if err != nil {
		return err
	}
	smp, closeCatalog, err := a.openSampler()
	if err != nil {
		return err
	}
	defer closeCatalog()

	s := a.cfg.Sampler
	res, err := smp.Sample(cmd.Context(), center, s.MinCount, s.StartRadius, s.Step)
	if err != nil {
		return err
	}
	if err := writeStars(cmd.OutOrStdout(), res.Stars); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	return nil
}
