package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so bound variables and
// Changed state do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns its stdout.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is execCmd that fails the test on error.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out)
	}
	return out
}

// isolate points HOME at a temp dir and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, body string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

const peopleCSV = "name,age,team\nAlice,30,red\nBob,,red\nAlice,30,red\nCara,41,blue\n"

func TestCLI_SampleProfileClean(t *testing.T) {
	home := isolate(t)
	data := filepath.Join(home, "employees.csv")
	out := runCmd(t, "sample", "--rows", "200", "--seed", "3", "-o", data)
	if !strings.Contains(out, "Wrote 200 rows") {
		t.Fatalf("unexpected sample output: %s", out)
	}

	out = runCmd(t, "profile", data, "--json")
	var p struct {
		Summary struct {
			TotalRows    int `json:"totalRows"`
			TotalColumns int `json:"totalColumns"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("profile json: %v\n%s", err, out)
	}
	if p.Summary.TotalRows != 200 || p.Summary.TotalColumns != 8 {
		t.Fatalf("unexpected summary: %+v", p.Summary)
	}

	outDir := filepath.Join(home, "out")
	out = runCmd(t, "clean", data, "--out-dir", outDir, "--chunked", "--outliers", "cap")
	if !strings.Contains(out, "✓ Cleaned employees") {
		t.Fatalf("unexpected clean output: %s", out)
	}
	for _, name := range []string{"employees_cleaned.csv", "employees_cleaning_log.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestCLI_CleanFlagsOverrideConfig(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, filepath.Join(home, "people.csv"), peopleCSV)
	runCmd(t, "config", "set", "handle_duplicates", "keep")

	outDir := filepath.Join(home, "out")
	runCmd(t, "clean", data, "--out-dir", outDir, "--format", "json", "--missing", "drop")
	raw, err := os.ReadFile(filepath.Join(outDir, "people_cleaned.json"))
	if err != nil {
		t.Fatalf("read cleaned: %v", err)
	}
	var rows []map[string]string
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatalf("cleaned json: %v", err)
	}
	// duplicates kept from config, Bob dropped by the flag
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %v", len(rows), rows)
	}

	if _, err := execCmd(t, "clean", data, "--out-dir", outDir, "--missing", "guess"); err == nil {
		t.Fatalf("expected invalid --missing to fail")
	}
	if _, err := execCmd(t, "clean", data, "--out-dir", outDir, "--format", "xml"); err == nil {
		t.Fatalf("expected invalid --format to fail")
	}
}

func TestCLI_ProfileBatchCollisionSuffix(t *testing.T) {
	home := isolate(t)
	csv := "col1,col2\nA,1\nB,2\nC,3\n"
	writeFile(t, filepath.Join(home, "d1", "metrics.csv"), csv)
	writeFile(t, filepath.Join(home, "d2", "metrics.csv"), csv)

	outDir := filepath.Join(home, "reports")
	runCmd(t, "profile-batch", filepath.Join(home, "d*", "metrics.csv"), "--out-dir", outDir)

	b1 := filepath.Join(outDir, "metrics.profile.md")
	b2 := filepath.Join(outDir, "metrics__2.profile.md")
	for _, p := range []string{b1, b2} {
		body, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("missing report %s: %v", p, err)
		}
		if !strings.Contains(string(body), "[DATASET SUMMARY]") {
			t.Fatalf("expected summary section in %s", p)
		}
	}

	if _, err := execCmd(t, "profile-batch", filepath.Join(home, "none", "*.csv")); err == nil {
		t.Fatalf("expected error when nothing matches")
	}
}

func TestCLI_ProfileEnhancedToFile(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, filepath.Join(home, "people.csv"), peopleCSV)
	report := filepath.Join(home, "people.md")
	runCmd(t, "profile", data, "--enhanced", "--duplicates", "-o", report)
	body, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(body), "[DUPLICATE ROWS]") {
		t.Fatalf("expected duplicate listing:\n%s", body)
	}
}

func TestCLI_BiasOutliersRecommend(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, filepath.Join(home, "people.csv"), peopleCSV)

	out := runCmd(t, "bias", data, "--column", "team")
	if !strings.Contains(out, "Column: team") {
		t.Fatalf("unexpected bias output: %s", out)
	}
	out = runCmd(t, "bias", data, "--json")
	var rep struct {
		Results []struct {
			Column string `json:"column"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("bias json: %v\n%s", err, out)
	}
	found := false
	for _, r := range rep.Results {
		found = found || r.Column == "team"
	}
	if !found {
		t.Fatalf("expected team in bias report: %+v", rep)
	}
	if _, err := execCmd(t, "bias", data, "--column", "nope"); err == nil {
		t.Fatalf("expected unknown column to fail")
	}

	out = runCmd(t, "outliers", data, "--column", "age")
	if !strings.Contains(out, "Column: age") {
		t.Fatalf("unexpected outliers output: %s", out)
	}
	if _, err := execCmd(t, "outliers", data); err == nil {
		t.Fatalf("expected --column to be required")
	}

	out = runCmd(t, "recommend", data, "--json")
	var recs []map[string]any
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("recommend json: %v\n%s", err, out)
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolate(t)
	runCmd(t, "config", "set", "chunk_size", "2000")
	raw, err := os.ReadFile(filepath.Join(home, ".datacleaner", "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(raw), "chunk_size: 2000") {
		t.Fatalf("expected chunk_size in config:\n%s", raw)
	}
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "chunk_size: 2000") {
		t.Fatalf("expected persisted value in show output:\n%s", out)
	}
	if _, err := execCmd(t, "config", "set", "chunk_size", "many"); err == nil {
		t.Fatalf("expected invalid int to fail")
	}
	if _, err := execCmd(t, "config", "set", "handle_outliers", "explode"); err == nil {
		t.Fatalf("expected invalid enum to fail")
	}
}

func TestCLI_SchemaFlagUsage(t *testing.T) {
	fl := cleanCmd.Flags().Lookup("schema")
	if fl == nil {
		t.Fatalf("missing --schema flag")
	}
	if !strings.Contains(fl.Usage, "canonicalize numeric values") || strings.Contains(fl.Usage, "column type") {
		t.Fatalf("unexpected --schema usage: %q", fl.Usage)
	}
}
