//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/mdindent"
	mainPkg = "./cmd/mdindent"
)

// Default builds the binary.
var Default = Build

// Aliases are short names for the everyday targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"fmt":  Lint.Fmt,
	"self": Bench.Self,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/mdindent when any source changed.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return goCmd("build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Install puts mdindent in $GOBIN.
func Install() error {
	return goCmd("install", "-ldflags", ldflags(), mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Default runs the tests with the race detector and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose is Default with per-test output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Cover renders coverage.out as HTML.
func (Test) Cover() error {
	st.Deps(Test.Default)
	return goCmd("tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs golangci-lint and applies its fixes.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt runs gofmt over the tree.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Gate is everything CI runs, in order.
func (CI) Gate() {
	st.SerialDeps(
		Lint.FmtCheck,
		CI.Vet,
		CI.Lint,
		Build,
		Test.Default,
		CI.Tidy,
		CI.Cross,
	)
}

// Vet runs go vet.
func (CI) Vet() error {
	return goCmd("vet", "./...")
}

// Lint runs golangci-lint without fixes.
func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Tidy fails when go mod tidy changes go.mod or go.sum.
func (CI) Tidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := goCmd("mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go mod tidy changed go.mod or go.sum")
	}
	return nil
}

// Cross builds every release target.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64", "openbsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return gotestsum("pkgname-and-test-fails", "-run=^$", "-bench=.", "-benchmem")
}

// Self times a summary lint of the repository's own Markdown.
func (Bench) Self() error {
	st.Deps(Build)
	start := time.Now()
	err := sh.RunV(binary, "lint", "--format", "summary", "--non-interactive", ".")
	fmt.Printf("Linted repository in %s\n", time.Since(start).Round(time.Millisecond))
	if err != nil {
		// Lint findings are expected here; only the timing matters.
		fmt.Printf("lint finished with: %v\n", err)
	}
	return nil
}

func goCmd(args ...string) error {
	return sh.RunV("go", args...)
}

func gotestsum(format string, testArgs ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}
	args = append(args, testArgs...)
	return goCmd(append(args, "./...")...)
}

func readModFiles() ([]byte, error) {
	var all []byte
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		all = append(all, data...)
	}
	return all, nil
}

func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, time.Now().UTC().Format(time.RFC3339))
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
