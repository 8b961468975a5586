package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Compile a resume file to PDF")
	fmt.Fprintln(w, "  latex      Print the generated LaTeX source")
	fmt.Fprintln(w, "  serve      Run the HTTP API")
	fmt.Fprintln(w, "  sweep      Remove stale job workspaces")
	fmt.Fprintln(w, "  doctor     Check the LaTeX toolchain and settings")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'resume2pdf help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log pipeline details to stderr")
}

func printCompilerUsage(w io.Writer) {
	fmt.Fprintln(w, "Compiler:")
	fmt.Fprintln(w, "      --compiler <cmd>      LaTeX compiler executable (default pdflatex)")
	fmt.Fprintln(w, "      --compiler-arg <s>    Extra compiler argument (repeatable)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Compilation timeout per job (default 15s)")
	fmt.Fprintln(w, "      --passes <n>          Compiler passes per job (1-5)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent compilations (0 = auto)")
}

func printTemplateUsage(w io.Writer) {
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "      --template <name>     Template name (default \"default\")")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory holding templates/<name>.tex")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume2pdf render <resume.json|resume.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile a resume file to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default: input name with .pdf, \"-\" = stdout)")
	fmt.Fprintln(w, "      --workspace-root <d>  Directory for job workspaces (default ./temp)")
	fmt.Fprintln(w)
	printCompilerUsage(w)
	fmt.Fprintln(w)
	printTemplateUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printLatexUsage prints usage for the latex command.
func printLatexUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume2pdf latex <resume.json|resume.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the LaTeX source a resume compiles from, without running the compiler.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Write to a .tex file instead of stdout")
	fmt.Fprintln(w)
	printTemplateUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printSweepUsage prints usage for the sweep command.
func printSweepUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume2pdf sweep [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove job workspaces left behind by crashed or killed runs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Workspaces:")
	fmt.Fprintln(w, "      --workspace-root <d>  Directory for job workspaces (default ./temp)")
	fmt.Fprintln(w, "      --max-age <d>         Remove workspaces older than this (default 30m)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume2pdf serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP API:")
	fmt.Fprintln(w, "  GET  /health   Liveness and capacity")
	fmt.Fprintln(w, "  POST /pdf      Resume payload in, PDF out")
	fmt.Fprintln(w, "  POST /latex    Resume payload in, LaTeX source out")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8000)")
	fmt.Fprintln(w, "      --max-body <n>        Request body limit in bytes (default 1 MiB)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Workspaces:")
	fmt.Fprintln(w, "      --workspace-root <d>  Directory for job workspaces (default ./temp)")
	fmt.Fprintln(w, "      --max-age <d>         Stale workspace threshold (default 30m)")
	fmt.Fprintln(w, "      --sweep-interval <d>  Reaper period (default 5m)")
	fmt.Fprintln(w)
	printCompilerUsage(w)
	fmt.Fprintln(w)
	printTemplateUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume2pdf doctor [--json] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the compiler, workspace root and template are usable.")
	fmt.Fprintln(w, "Accepts the compiler, template and --workspace-root flags of render.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Machine-readable output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "latex":
		printLatexUsage(env.Stdout)
	case "sweep":
		printSweepUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: resume2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: resume2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
