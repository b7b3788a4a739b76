package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fixture is a small raw export: semicolon-delimited, CRLF line endings,
// comma decimal marks, blank identifiers, and a non-ASCII name.
const fixture = "/ID;Name;Year Published;Rating Average;Complexity Average;Mechanics;Domains\r\n" +
	"3;Catán™;2015;7,0;2,3;Dice Rolling, Hand Management;Family Games\r\n" +
	"7;Azul;2016;7,5;1,8;Hand Management;Family Games\r\n" +
	";Brass;2017;6,0;3,9;Hand Management;Strategy Games\r\n" +
	"2;Root;2018;8,0;3,7;Dice Rolling;Strategy Games\r\n" +
	";Gloom;;;;;\r\n"

// runCmd executes the root command with args and returns captured stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	// Reset sticky state that may persist across invocations
	cleanOutputPath = ""
	cleanReportPath = ""
	flagDelimiter = ""
	if f := cleanCmd.Flags(); f != nil {
		for _, name := range []string{"output", "report"} {
			if fl := f.Lookup(name); fl != nil {
				_ = fl.Value.Set("")
				fl.Changed = false
			}
		}
	}
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return buf.String()
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.csv")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCLI_AuditCountsEmptyCells(t *testing.T) {
	path := writeFixture(t)
	out := runCmd(t, "audit", path, ";")
	for _, want := range []string{
		"/ID: 2",
		"Name: 0",
		"Year Published: 1",
		"Rating Average: 1",
		"Mechanics: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("audit output missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_CleanNormalizesAndSynthesizesIDs(t *testing.T) {
	path := writeFixture(t)
	outPath := filepath.Join(t.TempDir(), "cleaned.tsv")
	repPath := filepath.Join(t.TempDir(), "report.yaml")
	runCmd(t, "clean", path, "--output", outPath, "--report", repPath)

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read cleaned output: %v", err)
	}
	out := string(b)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header + 5 records, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "/ID\tName\tYear Published\tRating Average\tComplexity Average\tMechanics\tDomains" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	// Max existing ID is 7, so the two blanks become 8 and 9 in row order.
	if !strings.HasPrefix(lines[3], "8\t") || !strings.HasPrefix(lines[5], "9\t") {
		t.Fatalf("synthesized identifiers wrong:\n%s", out)
	}
	if strings.Contains(out, "7,0") || !strings.Contains(out, "7.0") {
		t.Fatalf("decimal marks not normalized:\n%s", out)
	}
	if strings.Contains(out, ";") {
		t.Fatalf("input delimiter survived:\n%s", out)
	}
	if strings.Contains(out, "™") || strings.Contains(out, "á") {
		t.Fatalf("non-ASCII bytes survived:\n%s", out)
	}
	if !strings.Contains(out, "Catn") {
		t.Fatalf("non-ASCII bytes must be deleted, not replaced:\n%s", out)
	}
	// Mechanics keeps its intra-cell commas: only designated numeric columns
	// get the decimal-mark substitution.
	if !strings.Contains(out, "Dice Rolling, Hand Management") {
		t.Fatalf("multi-valued cell damaged:\n%s", out)
	}

	rep, err := os.ReadFile(repPath)
	if err != nil {
		t.Fatalf("read run report: %v", err)
	}
	for _, want := range []string{"run_id:", "seed: 8", "value: \"8\"", "value: \"9\""} {
		if !strings.Contains(string(rep), want) {
			t.Errorf("run report missing %q:\n%s", want, rep)
		}
	}
}

func TestCLI_AnalyzeRendersFixedReport(t *testing.T) {
	path := writeFixture(t)
	out := runCmd(t, "analyze", path)
	if !strings.Contains(out, "The most popular game mechanics is Hand Management found in 3 games") {
		t.Errorf("mechanics line wrong:\n%s", out)
	}
	if !strings.Contains(out, "The most style of game is Family Games found in 2 games") {
		t.Errorf("domains line wrong:\n%s", out)
	}
	// The four complete rows give the year/rating worked example: 0.227.
	if !strings.Contains(out, "the year of publication and the average rating is 0.227") {
		t.Errorf("year/rating correlation wrong:\n%s", out)
	}
	if !strings.Contains(out, "the complexity of a game and its average rating is ") {
		t.Errorf("complexity/rating line missing:\n%s", out)
	}
}

func TestCLI_MissingColumnListsAllNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("/ID;Name\n1;a\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"analyze", path})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected analyze to fail on missing columns")
	}
	for _, name := range []string{"Rating Average", "Complexity Average", "Year Published", "Mechanics", "Domains"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error must list %q, got: %v", name, err)
		}
	}
}

func TestCLI_MissingIDColumnStillListsAllNames(t *testing.T) {
	// The identifier pre-pass must not short-circuit resolution: a header
	// missing /ID alongside other required columns reports all of them.
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "Name;Year Published;Complexity Average;Domains\na;2015;2.3;Family Games\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"analyze", path})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected analyze to fail on missing columns")
	}
	for _, name := range []string{"/ID", "Rating Average", "Mechanics"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error must list %q, got: %v", name, err)
		}
	}
}

func TestCLI_AnalyzeCountsTokensPostASCIIStrip(t *testing.T) {
	// Tokens count under the same spelling a re-analysis of the cleaned
	// output would see.
	path := filepath.Join(t.TempDir(), "games.csv")
	content := "/ID;Name;Year Published;Rating Average;Complexity Average;Mechanics;Domains\n" +
		"1;a;2015;7,0;2,3;Catán Placement;Family Games\n" +
		"2;b;2016;7,5;1,8;Catán Placement;Family Games\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	out := runCmd(t, "analyze", path)
	if !strings.Contains(out, "The most popular game mechanics is Catn Placement found in 2 games") {
		t.Fatalf("accented tokens must count under their stripped spelling:\n%s", out)
	}
}

func TestCLI_UnreadableSourceFails(t *testing.T) {
	rootCmd.SetArgs([]string{"audit", filepath.Join(t.TempDir(), "missing.csv")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing source file")
	}
}

func TestCLI_ReAuditOfCleanedOutputShowsNoBlankIDs(t *testing.T) {
	path := writeFixture(t)
	outPath := filepath.Join(t.TempDir(), "cleaned.tsv")
	runCmd(t, "clean", path, "--output", outPath)
	out := runCmd(t, "audit", outPath, "tab")
	if !strings.Contains(out, "/ID: 0") {
		t.Fatalf("cleaned output must have no blank identifiers:\n%s", out)
	}
}
