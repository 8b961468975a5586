package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// versionProbeTimeout bounds "<compiler> --version".
const versionProbeTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Compiler  compilerInfo  `json:"compiler"`
	Workspace workspaceInfo `json:"workspace"`
	Template  templateInfo  `json:"template"`
	Env       envInfo       `json:"environment"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// compilerInfo holds LaTeX compiler detection results.
type compilerInfo struct {
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// workspaceInfo holds workspace root checks.
type workspaceInfo struct {
	Root     string `json:"root"`
	Writable bool   `json:"writable"`
	Capacity int    `json:"capacity,omitempty"`
}

// templateInfo holds template resolution results.
type templateInfo struct {
	Name      string `json:"name"`
	AssetPath string `json:"asset_path,omitempty"`
	OK        bool   `json:"ok"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	f, _, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", usageError(err))
		return ExitUsage
	}

	cfg, err := loadSettings(&f.common, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", withHint(err, configHint(err, &f.common)))
		return exitCodeFor(err)
	}
	mergeCompilerFlags(&f.compiler, cfg)
	mergeWorkspaceFlags(&f.workspace, cfg)
	mergeTemplateFlags(&f.template, cfg)

	result := &doctorResult{
		Status: "ready",
		Compiler: compilerInfo{
			Command: cfg.Compiler.Command,
		},
		Workspace: workspaceInfo{Root: cfg.Workspace.Root},
		Template: templateInfo{
			Name:      cfg.Template.Name,
			AssetPath: cfg.Template.AssetPath,
		},
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		checkTemplate(result, cfg.Template.Name, cfg.Template.AssetPath, cfg.Compiler.Workers)
	}
	checkCompiler(ctx, result)
	checkWorkspace(result)
	checkEnvironment(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// checkCompiler locates the compiler and reads its version banner.
func checkCompiler(ctx context.Context, result *doctorResult) {
	path, err := exec.LookPath(result.Compiler.Command)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found. Install TeX Live or set RESUME2PDF_COMPILER", result.Compiler.Command))
		return
	}

	result.Compiler.Found = true
	result.Compiler.Path = path

	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- compiler is operator-configured
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get compiler version: %v", err))
		return
	}
	result.Compiler.Version = firstLine(out)
}

func firstLine(b []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(b))
	if sc.Scan() {
		return strings.TrimSpace(sc.Text())
	}
	return ""
}

// checkWorkspace verifies the workspace root can hold job directories.
func checkWorkspace(result *doctorResult) {
	root := result.Workspace.Root
	if err := fileutil.ProbeWritable(root); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Workspace root not writable: %s", root))
		return
	}
	result.Workspace.Writable = true

	if !filepath.IsAbs(root) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Workspace root %q is relative to the working directory", root))
	}
}

// checkTemplate loads the template and checks for the content placeholder
// by building a Converter, which also reports admission capacity.
func checkTemplate(result *doctorResult, name, assetPath string, workers int) {
	opts := []resume2pdf.Option{
		resume2pdf.WithTemplate(name),
		resume2pdf.WithConcurrency(workers),
	}
	if assetPath != "" {
		opts = append(opts, resume2pdf.WithAssetPath(assetPath))
	}

	conv, err := resume2pdf.NewConverter(opts...)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Template %q unusable: %v", name, err))
		return
	}
	defer conv.Close()

	result.Template.OK = true
	result.Workspace.Capacity = conv.Capacity()
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("RESUME2PDF_CONTAINER") == "1" {
		return true, "RESUME2PDF_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "resume2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "LaTeX compiler")
	if r.Compiler.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Compiler.Path)
		if r.Compiler.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Compiler.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %s not found\n", r.Compiler.Command)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Workspace")
	if r.Workspace.Writable {
		fmt.Fprintf(w, "  [OK] Root: %s (writable)\n", r.Workspace.Root)
	} else {
		fmt.Fprintf(w, "  [ERROR] Root: %s (not writable)\n", r.Workspace.Root)
	}
	if r.Workspace.Capacity > 0 {
		fmt.Fprintf(w, "  [OK] Concurrent compilations: %d\n", r.Workspace.Capacity)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Template")
	if r.Template.OK {
		fmt.Fprintf(w, "  [OK] %s\n", r.Template.Name)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s\n", r.Template.Name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
