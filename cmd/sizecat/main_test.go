package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CATALOG_PROFILE", "CATALOG_PROFILES_FILE", "CATALOG_SEED", "CATALOG_COUNT",
		"CATALOG_PER_CATEGORY", "CATALOG_MAX_CONCURRENT", "CATALOG_MISSING_MARKER", "REPORT_FORMAT",
		"REPORT_MAX_DIAGNOSTICS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// reportValue returns the last field of the report line starting with label.
func reportValue(t *testing.T, report, label string) string {
	t.Helper()
	for _, line := range strings.Split(report, "\n") {
		if strings.HasPrefix(line, label) {
			fields := strings.Fields(line)
			return fields[len(fields)-1]
		}
	}
	t.Fatalf("report has no %q line:\n%s", label, report)
	return ""
}

func TestGenerateThenInspect(t *testing.T) {
	for _, profile := range []string{"import", "described", "columns"} {
		t.Run(profile, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			file := filepath.Join(dir, "catalog.csv")

			_, err := run(t, "generate", "--profile", profile, "--count", "40", "--per-category", "3", "--seed", "11", "--out", file)
			require.NoError(t, err)

			out, err := run(t, "inspect", file, "--profile", profile, "--strict")
			require.NoError(t, err, out)

			assert.Contains(t, out, "Size report: catalog.csv ("+profile+")")
			assert.Equal(t, "0", reportValue(t, out, "Total mismatches:"))
			assert.Equal(t, "0", reportValue(t, out, "Malformed size fields:"))
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	clearEnv(t)

	first, err := run(t, "generate", "--count", "15", "--seed", "5")
	require.NoError(t, err)
	second, err := run(t, "generate", "--count", "15", "--seed", "5")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "ID,Name,Category,Price,Stock,Sizes\n"))
	assert.Len(t, strings.Split(strings.TrimSpace(first), "\n"), 16)
}

func TestInspectFlagsProblems(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.csv")
	annotated := filepath.Join(dir, "flagged.csv")
	data := "Name,Category,Price,Stock,Sizes\n" +
		"Suit,Suits,100,3,\"S:1,M:2\"\n" +
		"Shirt,Shirts,100,9,\"S:1,M:2\"\n" +
		"Tie,Accessories,100,3,\"S:1,Q:2\"\n"
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	out, err := run(t, "inspect", file, "--annotated", annotated)
	require.NoError(t, err)
	assert.Equal(t, "1", reportValue(t, out, "Total mismatches:"))
	assert.Equal(t, "1", reportValue(t, out, "Malformed size fields:"))

	flagged, err := os.ReadFile(annotated)
	require.NoError(t, err)
	assert.Contains(t, string(flagged), "mismatch: size quantities sum to 3, declared total is 9")
	assert.Contains(t, string(flagged), "malformed sizes:")

	_, err = run(t, "inspect", file, "--strict")
	assert.ErrorIs(t, err, errIssuesFound)
}

func TestInspectHTML(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), "c.csv")
	require.NoError(t, os.WriteFile(file, []byte("Name,Category,Price,Stock,Sizes\nSuit,Suits,1,2,S:2\n"), 0o600))

	out, err := run(t, "inspect", file, "--format", "html")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

func TestInspectErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err := run(t, "inspect", empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FILE002")

	_, err = run(t, "inspect", empty, "--format", "pdf")
	assert.ErrorContains(t, err, "unknown report format")

	_, err = run(t, "inspect", empty, "--profile", "nope")
	assert.ErrorContains(t, err, "unknown profile")

	_, err = run(t, "inspect")
	assert.Error(t, err)
}

func TestProfilesCommand(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(file, []byte("profiles:\n  kids:\n    sizes: [\"4\", \"6\", \"8\"]\n    layout: columns\n"), 0o600))

	out, err := run(t, "profiles", "--profiles-file", file, "--profile", "kids")
	require.NoError(t, err)

	for _, name := range []string{"columns", "described", "import", "*kids"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "4,6,8")
}

func TestInspectSeveralFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	header := "Name,Category,Price,Stock,Sizes\n"
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	require.NoError(t, os.WriteFile(first, []byte(header+"Suit,Suits,1,2,S:2\nShirt,Shirts,1,5,\"S:1,M:1\"\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte(header+"Tie,Accessories,1,1,L:x\nBelt,Accessories,1,3,No information\n"), 0o600))

	out, err := run(t, "inspect", first, second, "--jobs", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Size report: 2 files (import)")
	assert.Equal(t, "4", reportValue(t, out, "Products:"))
	assert.Contains(t, out, "first.csv line 3")
	assert.Contains(t, out, "second.csv line 2")

	_, err = run(t, "inspect", first, second, "--annotated", filepath.Join(dir, "a.csv"))
	assert.ErrorContains(t, err, "single input file")

	_, err = run(t, "inspect", first, filepath.Join(dir, "missing.csv"))
	assert.ErrorContains(t, err, "open catalog")
}

func TestConvertColumnsToImport(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "template.csv")
	data := "Name,Category,Price,Size S,Size M,Size L,Size XL,Size 2XL,Total,Description\n" +
		"Suit,Suits,100,1,2,0,0,0,3,Wool suit\n" +
		"Coat,Coats,100,0,0,0,0,4,4,Big coat\n" +
		"Tie,Accessories,1.5E3,,,,,,1,\n"
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	out, err := run(t, "convert", file, "--profile", "columns", "--to", "import")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "ID,Name,Category,Price,Stock,Sizes\n"))
	assert.Contains(t, out, ",Suit,Suits,100,3,\"S:1,M:2\"\n")
	assert.Contains(t, out, ",Tie,Accessories,1500,1,No information\n")
	assert.NotContains(t, out, "Coat")

	_, err = run(t, "convert", file, "--profile", "columns", "--to", "import", "--strict")
	assert.ErrorIs(t, err, errRowsSkipped)

	out, err = run(t, "convert", file, "--profile", "columns", "--to", "import-vi")
	require.NoError(t, err)
	assert.Contains(t, out, ",Tie,Accessories,1500,1,Không có thông tin\n")
}

func TestConvertThenInspect(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	flat := filepath.Join(dir, "flat.csv")
	described := filepath.Join(dir, "described.csv")

	_, err := run(t, "generate", "--profile", "import", "--count", "30", "--seed", "9", "--out", flat)
	require.NoError(t, err)

	_, err = run(t, "convert", flat, "--to", "described", "--out", described, "--strict")
	require.NoError(t, err)

	out, err := run(t, "inspect", described, "--profile", "described", "--strict")
	require.NoError(t, err, out)
	assert.Equal(t, "30", reportValue(t, out, "Products:"))
	assert.Equal(t, "0", reportValue(t, out, "Malformed size fields:"))

	back := filepath.Join(dir, "back.csv")
	_, err = run(t, "convert", described, "--profile", "described", "--to", "import", "--out", back, "--strict")
	require.NoError(t, err)
	out, err = run(t, "inspect", back, "--strict")
	require.NoError(t, err, out)
}

func TestConvertErrors(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), "c.csv")
	require.NoError(t, os.WriteFile(file, []byte("Name,Category,Price,Stock,Sizes\nSuit,Suits,1,2,S:2\n"), 0o600))

	_, err := run(t, "convert", file)
	assert.ErrorContains(t, err, "to")

	_, err = run(t, "convert", file, "--to", "nope")
	assert.ErrorContains(t, err, "unknown profile")

	_, err = run(t, "convert", filepath.Join(t.TempDir(), "missing.csv"), "--to", "described")
	assert.ErrorContains(t, err, "open catalog")
}
