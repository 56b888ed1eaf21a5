package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arloliu/omf/csvmeta"
)

// Ext is the input file extension picked up by Plan.
const Ext = ".omf"

// Job is one input file and the CSV record paired with it.
type Job struct {
	// Index is the position of the file in name order.
	Index  int
	Input  string
	Energy csvmeta.Record
}

// Base returns the input file name without directory and extension.
func (j Job) Base() string {
	name := filepath.Base(j.Input)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Plan lists the *.omf files of dir in name order and pairs file i with row i of table.
//
// With a table only the first min(rows, files) files are planned; skipped reports how many
// files had no row. Without a table (nil) every file is planned with an empty record.
func Plan(dir string, table *csvmeta.Table) (jobs []Job, skipped int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("list input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	n := len(files)
	if table != nil {
		n = min(n, table.Len())
	}

	jobs = make([]Job, 0, n)
	for i := range n {
		job := Job{Index: i, Input: filepath.Join(dir, files[i])}
		if table != nil {
			job.Energy, err = table.Row(i)
			if err != nil {
				return nil, 0, err
			}
		}
		jobs = append(jobs, job)
	}

	return jobs, len(files) - n, nil
}
