package core

import (
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
)

// Summary renders the aligned per-cell accuracy table printed after a
// sweep. Mean convergence ticks only count converged trials; cells where
// a scheme never converged show n/a.
func Summary(cells []Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%6s  %5s  %10s  %10s  %10s  %10s\n",
		"x", "p", "node acc", "edge acc", "node conv", "edge conv")
	for _, c := range cells {
		fmt.Fprintf(&b, "%6d  %5.2f  %10.3f  %10.3f  %10s  %10s\n",
			c.X, c.P, c.NodeAcc, c.EdgeAcc,
			formatMeanTick(c.NodeMeanTick, c.NodeConverged),
			formatMeanTick(c.EdgeMeanTick, c.EdgeConverged))
	}
	return b.String()
}

func formatMeanTick(mean float64, converged int) string {
	if converged == 0 {
		return "n/a"
	}
	return strconv.FormatFloat(mean, 'f', 1, 64)
}

// WriteCSV writes one row per grid cell for downstream plotting.
func WriteCSV(csvPath string, cells []Stats) error {
	if dir := path.Dir(csvPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"x", "p", "trials",
		"node_accuracy", "edge_accuracy",
		"node_converged", "edge_converged",
		"node_mean_ticks", "edge_mean_ticks",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, c := range cells {
		row := []string{
			strconv.Itoa(c.X),
			strconv.FormatFloat(c.P, 'f', -1, 64),
			strconv.Itoa(c.Trials),
			strconv.FormatFloat(c.NodeAcc, 'f', 4, 64),
			strconv.FormatFloat(c.EdgeAcc, 'f', 4, 64),
			strconv.Itoa(c.NodeConverged),
			strconv.Itoa(c.EdgeConverged),
			csvMeanTick(c.NodeMeanTick, c.NodeConverged),
			csvMeanTick(c.EdgeMeanTick, c.EdgeConverged),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvMeanTick(mean float64, converged int) string {
	if converged == 0 {
		return ""
	}
	return strconv.FormatFloat(mean, 'f', 2, 64)
}
