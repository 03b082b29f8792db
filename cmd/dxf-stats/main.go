// Command dxf-stats collects entity statistics from DXF files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"github.com/wholder/DXFReader/dxf"
)

var workers = flag.Int("j", 4, "Number of files parsed concurrently")

// FileStats holds the parse results for one DXF file.
type FileStats struct {
	Name   string
	Shapes int
	Counts map[string]int
	Units  string
	Width  float64
	Height float64
	Error  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <dir>\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	dir := flag.Arg(0)
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !info.IsDir() && ext == ".dxf" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		pterm.Error.Printf("walking directory: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		pterm.Error.Println("no .dxf files found under", dir)
		os.Exit(1)
	}
	sort.Strings(files)

	pterm.Info.Printf("Parsing %d DXF files\n", len(files))

	stats := make([]FileStats, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				stats[i] = collect(files[i])
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	printReport(stats)
}

// collect parses one file with every entity filter enabled.
func collect(path string) FileStats {
	st := FileStats{Name: filepath.Base(path)}
	p := dxf.NewParser()
	p.DrawText = true
	p.DrawMText = true
	p.DrawDimen = true
	shapes, err := p.ParseFile(path, 0, 0)
	if err != nil {
		st.Error = err.Error()
		return st
	}
	st.Shapes = len(shapes)
	st.Counts = p.CountByType()
	st.Units = p.Units()
	st.Width = p.Bounds().Width()
	st.Height = p.Bounds().Height()
	return st
}

// printReport renders the per-file rows and a type summary.
func printReport(stats []FileStats) {
	var okCount int
	total := make(map[string]int)

	pterm.Printf("%-32s %8s %12s %20s\n", "File", "Shapes", "Units", "Bounds (in)")
	for _, st := range stats {
		if st.Error != "" {
			pterm.Error.Printf("%-32s %s\n", st.Name, st.Error)
			continue
		}
		okCount++
		pterm.Printf("%-32s %8d %12s %9.3f x %8.3f\n",
			st.Name, st.Shapes, st.Units, st.Width, st.Height)
		for t, n := range st.Counts {
			total[t] += n
		}
	}

	types := make([]string, 0, len(total))
	for t := range total {
		types = append(types, t)
	}
	sort.Strings(types)
	pterm.Println()
	pterm.Info.Println("Entity totals")
	for _, t := range types {
		pterm.Printf("  %-11s %d\n", t, total[t])
	}
	pterm.Info.Printf("%d/%d files parsed successfully\n", okCount, len(stats))
}
