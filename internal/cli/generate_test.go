// Package cli_test exercises the tessera commands end to end.
package cli_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/tessera/internal/cli"
)

// writeTestImage writes a 20x20 PNG with a red top half and a blue bottom half.
func writeTestImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := range 20 {
		for x := range 20 {
			c := color.RGBA{R: 220, G: 20, B: 20, A: 255}
			if y >= 10 {
				c = color.RGBA{R: 20, G: 20, B: 220, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, "mosaic.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

// run executes the root command with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	imgPath := writeTestImage(t, dir)
	outDir := filepath.Join(dir, "out")

	stdout, stderr, err := run(t, "generate", imgPath, "--width", "10", "--height", "10", "-o", outDir)
	if err != nil {
		t.Fatalf("generate failed: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "5 rows x 5 columns (25 tiles of 2cm)") {
		t.Errorf("Expected grid summary in output, got:\n%s", stdout)
	}
	if strings.Contains(stdout, "adjusted") {
		t.Errorf("Square image in a square frame should not be adjusted, got:\n%s", stdout)
	}

	for _, pattern := range []string{"mosaic-*_matrix.txt", "mosaic-*_matrix.json", "mosaic-*.png"} {
		matches, err := filepath.Glob(filepath.Join(outDir, pattern))
		if err != nil {
			t.Fatalf("Glob(%q) error = %v", pattern, err)
		}
		if len(matches) != 1 {
			t.Errorf("Expected one file matching %s, got %v", pattern, matches)
		}
	}

	txt, _ := filepath.Glob(filepath.Join(outDir, "mosaic-*_matrix.txt"))
	if len(txt) == 1 {
		data, err := os.ReadFile(txt[0])
		if err != nil {
			t.Fatalf("Failed to read text matrix: %v", err)
		}
		content := string(data)
		for _, want := range []string{"# Matrix dimensions: 5 rows x 5 columns", "# - CYAN:", "# Row 5"} {
			if !strings.Contains(content, want) {
				t.Errorf("Text matrix missing %q", want)
			}
		}
	}
}

func TestGenerateQuietCompressed(t *testing.T) {
	dir := t.TempDir()
	imgPath := writeTestImage(t, dir)

	stdout, stderr, err := run(t, "generate", imgPath, "--width", "10", "--height", "10",
		"-o", dir, "--format", "json", "--compress", "xz", "--quiet")
	if err != nil {
		t.Fatalf("generate failed: %v\nstderr: %s", err, stderr)
	}
	if stdout != "" {
		t.Errorf("Expected no output with --quiet, got:\n%s", stdout)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "mosaic-*_matrix.json.xz"))
	if len(matches) != 1 {
		t.Fatalf("Expected one compressed JSON matrix, got %v", matches)
	}

	stdout, stderr, err = run(t, "inspect", matches[0])
	if err != nil {
		t.Fatalf("inspect failed: %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{"5 rows x 5 columns", "25 tiles"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}
}

func TestGenerateRequiresDimensions(t *testing.T) {
	imgPath := writeTestImage(t, t.TempDir())

	_, _, err := run(t, "generate", imgPath, "--width", "10")
	if err == nil {
		t.Fatal("Expected error when height is missing and stdin is not a terminal")
	}
	if !strings.Contains(err.Error(), "--width and --height are required") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestGenerateEmptyGrid(t *testing.T) {
	imgPath := writeTestImage(t, t.TempDir())

	_, _, err := run(t, "generate", imgPath, "--width", "1", "--height", "1", "-o", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no complete tile") {
		t.Errorf("Expected empty grid error, got %v", err)
	}
}

func TestGenerateCreatesInputDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := run(t, "generate")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(stdout, `Created "input" directory`) {
		t.Errorf("Expected input directory hint, got:\n%s", stdout)
	}
	info, err := os.Stat(filepath.Join(dir, "input"))
	if err != nil || !info.IsDir() {
		t.Errorf("Expected input directory to be created, stat error = %v", err)
	}
}

func TestVerboseAndQuietConflict(t *testing.T) {
	_, _, err := run(t, "pigments", "--verbose", "--quiet")
	if err == nil {
		t.Error("Expected error when --verbose and --quiet are combined")
	}
}

func TestInventoryCommandJSON(t *testing.T) {
	imgPath := writeTestImage(t, t.TempDir())

	stdout, stderr, err := run(t, "inventory", imgPath, "--width", "10", "--height", "10", "--colours", "2", "--format", "json")
	if err != nil {
		t.Fatalf("inventory failed: %v\nstderr: %s", err, stderr)
	}

	var report struct {
		Stats struct {
			UniqueColours int `json:"unique_colours"`
			TotalTiles    int `json:"total_tiles"`
		} `json:"stats"`
		Inventory []struct {
			Hex   string `json:"hex"`
			Count int    `json:"count"`
		} `json:"inventory"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("Failed to decode inventory JSON: %v\n%s", err, stdout)
	}
	if report.Stats.UniqueColours != 2 {
		t.Errorf("Expected 2 paints after quantization, got %d", report.Stats.UniqueColours)
	}
	if report.Stats.TotalTiles != 25 {
		t.Errorf("Expected 25 tiles, got %d", report.Stats.TotalTiles)
	}
	if len(report.Inventory) != 2 || report.Inventory[0].Count < report.Inventory[1].Count {
		t.Errorf("Expected inventory sorted by count, got %+v", report.Inventory)
	}
}

func TestInventoryInvalidFormat(t *testing.T) {
	_, _, err := run(t, "inventory", "whatever.png", "--format", "yaml")
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("Expected invalid format error, got %v", err)
	}
}

func TestPigmentsCommand(t *testing.T) {
	stdout, _, err := run(t, "pigments")
	if err != nil {
		t.Fatalf("pigments failed: %v", err)
	}
	for _, want := range []string{"cyan", "magenta", "yellow", "black", "white", "#00FFFF", "#FFFFFF"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("pigments output missing %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "tessera version ") {
		t.Errorf("Unexpected version output: %q", stdout)
	}
}

func TestPaletteCommand(t *testing.T) {
	imgPath := writeTestImage(t, t.TempDir())

	stdout, stderr, err := run(t, "palette", imgPath, "--format", "hex")
	if err != nil {
		t.Fatalf("palette failed: %v\nstderr: %s", err, stderr)
	}
	got := strings.Fields(stdout)
	if len(got) != 2 || got[0] != "#DC1414" || got[1] != "#1414DC" {
		t.Errorf("palette hex output = %v, want [#DC1414 #1414DC]", got)
	}

	if _, _, err := run(t, "palette", imgPath, "--colours", "0"); err == nil {
		t.Error("Expected error for zero colours")
	}
	if _, _, err := run(t, "palette", imgPath, "--algorithm", "kmeans"); err == nil {
		t.Error("Expected error for unknown algorithm")
	}
}
