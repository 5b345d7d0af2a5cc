package main

import (
	"fmt"
	"strconv"

	"lintang/bearmaps/pkg/util"

	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route <src_lon> <src_lat> <dst_lon> <dst_lat>",
	Short: "print turn-by-turn directions antara 2 koordinat",
	Args:  cobra.ExactArgs(4),
	RunE:  runRoute,
}

func runRoute(cmd *cobra.Command, args []string) error {
	coords := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
		coords = append(coords, v)
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, err := newNavigationService(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	res, err := svc.ShortestPath(cmd.Context(), coords[0], coords[1], coords[2], coords[3])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !res.Found {
		fmt.Fprintln(out, "no route found")
		return nil
	}
	for i, m := range res.Directions {
		fmt.Fprintf(out, "%d. %s\n", i+1, m)
	}
	fmt.Fprintf(out, "total: %.3f miles, %d vertices\n", util.RoundFloat(res.Distance, 3), len(res.Route))
	return nil
}
