// Command tabular-bench measures read and write throughput of the CSV
// engine on synthetic data.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tabular-dev/tabular/pkg/csv"
	"github.com/tabular-dev/tabular/pkg/frame"
	stringpool "github.com/tabular-dev/tabular/pkg/strings"
)

var (
	rows       = flag.Int("rows", 1_000_000, "Number of rows in the synthetic table")
	iterations = flag.Int("count", 3, "Number of iterations per direction")
	threads    = flag.Int("threads", 0, "Parse/serialize tasks (0 = one per CPU)")
	verbose    = flag.Bool("v", false, "Print per-iteration timings")
)

func main() {
	flag.Parse()

	tbl, err := buildTable(*rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build table: %v\n", err)
		os.Exit(1)
	}

	data, err := csv.Write(tbl, csv.WriteOptions{Threads: *threads})
	if err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("dataset: %d rows, %d columns, %.1f MB\n",
		tbl.NumRows(), tbl.NumCols(), float64(len(data))/(1<<20))

	writeBest := runIterations("write", func() error {
		_, err := csv.Write(tbl, csv.WriteOptions{Threads: *threads})
		return err
	})
	readBest := runIterations("read", func() error {
		_, err := csv.Read(data, csv.ReadOptions{Threads: *threads})
		return err
	})

	mb := float64(len(data)) / (1 << 20)
	fmt.Printf("write: best %v (%.1f MB/s)\n", writeBest, mb/writeBest.Seconds())
	fmt.Printf("read:  best %v (%.1f MB/s)\n", readBest, mb/readBest.Seconds())
}

func runIterations(name string, fn func() error) time.Duration {
	best := time.Duration(0)
	for i := 0; i < *iterations; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			fmt.Fprintf(os.Stderr, "%s failed: %v\n", name, err)
			os.Exit(1)
		}
		elapsed := time.Since(start)
		if *verbose {
			fmt.Printf("  %s iteration %d: %v\n", name, i+1, elapsed)
		}
		if best == 0 || elapsed < best {
			best = elapsed
		}
	}
	return best
}

func buildTable(n int) (*frame.Table, error) {
	ids := frame.EmptyInt64Column("id", n)
	flags := frame.EmptyBoolColumn("flag", n)
	values := frame.EmptyFloat64Column("value", n)
	labels := frame.EmptyStringColumn("label", n, n*8)

	for i := 0; i < n; i++ {
		ids.Append(int64(i))
		flags.Append(i%3 == 0)
		if i%17 == 0 {
			values.AppendNA()
		} else {
			values.Append(float64(i) * 0.25)
		}
		labels.Append(stringpool.Sprintf("item-%d", i%1000))
	}

	return frame.NewTable(ids, flags, values, labels)
}
