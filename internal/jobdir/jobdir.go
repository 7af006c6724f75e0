// Package jobdir enumerates pending solver jobs from the job directory.
//
// The naming convention is owned by the solver's input protocol:
// q<id>_input.txt is the command script fed to the solver, and the solver
// is instructed inside it to dump q<id>_result.json next to it. This
// package only parses names; file contents are opaque.
package jobdir

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/me/solvebatch/pkg/model"
)

const (
	inputSuffix  = "_input.txt"
	resultSuffix = "_result.json"
)

var inputName = regexp.MustCompile(`^q(\d+)_input\.txt$`)

// Scan enumerates jobs in dir, ordered numerically by id. Plain filename
// sort would run job 10 before job 2; the dedicated parse-and-sort step
// here closes that gap.
//
// Filenames that do not match the convention are ignored. Ids that parse
// to zero or repeat (q7 vs q007) are skipped with a warning; neither case
// fails the scan.
func Scan(dir string, logger *slog.Logger) ([]model.JobSpec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read job dir %s: %w", dir, err)
	}

	seen := make(map[int]string)
	var specs []model.JobSpec
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		m := inputName.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil || id <= 0 {
			logger.Warn("skipping malformed job filename", "name", name)
			continue
		}
		if prev, ok := seen[id]; ok {
			logger.Warn("skipping duplicate job id", "id", id, "name", name, "kept", prev)
			continue
		}
		seen[id] = name
		specs = append(specs, model.JobSpec{
			ID:         id,
			InputPath:  filepath.Join(dir, name),
			ResultPath: filepath.Join(dir, strings.TrimSuffix(name, inputSuffix)+resultSuffix),
		})
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs, nil
}

// Spec builds the JobSpec for one id by convention, without touching the
// filesystem. Used by the retry path, where the id list is operator input.
func Spec(dir string, id int) model.JobSpec {
	return model.JobSpec{
		ID:         id,
		InputPath:  filepath.Join(dir, fmt.Sprintf("q%d%s", id, inputSuffix)),
		ResultPath: filepath.Join(dir, fmt.Sprintf("q%d%s", id, resultSuffix)),
	}
}

// Specs builds JobSpecs for an explicit id list, preserving the given
// order.
func Specs(dir string, ids []int) []model.JobSpec {
	specs := make([]model.JobSpec, 0, len(ids))
	for _, id := range ids {
		specs = append(specs, Spec(dir, id))
	}
	return specs
}
