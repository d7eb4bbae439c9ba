package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/quantumlang/qcc/internal/estimator"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	command := flag.Arg(0)

	switch command {
	case "estimate":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing job file argument\n", red("Error"))
			fmt.Println("Usage: qcc estimate <job.yaml>")
			os.Exit(1)
		}
		runEstimate(flag.Arg(1))

	case "frontier":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing job file argument\n", red("Error"))
			fmt.Println("Usage: qcc frontier <job.yaml>")
			os.Exit(1)
		}
		runFrontier(flag.Arg(1))

	case "repl":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing job file argument\n", red("Error"))
			fmt.Println("Usage: qcc repl <job.yaml>")
			os.Exit(1)
		}
		runRepl(flag.Arg(1))

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("qcc %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
	fmt.Println("\nQuantum compiler core + physical resource estimator")
}

func printHelp() {
	fmt.Println(bold("qcc - quantum compiler core + physical resource estimator"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  qcc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <job.yaml>    Estimate physical resources for a job\n", cyan("estimate"))
	fmt.Printf("  %s <job.yaml>    Print the Pareto-optimal qubits/runtime frontier\n", cyan("frontier"))
	fmt.Printf("  %s <job.yaml>        Start an interactive what-if constraint shell\n", cyan("repl"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version        Print version information")
	fmt.Println("  --help           Show this help message")
}

func loadAndBuild(path string) (*estimator.JobConfig, *estimator.Estimation[estimator.QubitParams, int, estimator.CatalogFactory, estimator.CatalogFactoryBuilder, estimator.LogicalProgram]) {
	cfg, err := estimator.LoadJobConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	est, err := estimator.BuildEstimation(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	return cfg, est
}

func runEstimate(path string) {
	_, est := loadAndBuild(path)
	result, err := est.Estimate()
	if err != nil {
		printEstimationError(err)
		os.Exit(1)
	}
	printResult(os.Stdout, result)
}

func runFrontier(path string) {
	_, est := loadAndBuild(path)
	frontier, err := est.BuildFrontier()
	if err != nil {
		printEstimationError(err)
		os.Exit(1)
	}
	fmt.Printf("%s %d Pareto-optimal configurations\n\n", cyan("→"), len(frontier))
	for i, result := range frontier {
		fmt.Printf("%s\n", bold(fmt.Sprintf("[%d]", i)))
		printResult(os.Stdout, &result)
		fmt.Println()
	}
}

func printResult[Q any, P any, F estimator.Factory[P], L estimator.LogicalOverhead](w io.Writer, result *estimator.PhysicalEstimationResult[Q, P, F, L]) {
	fmt.Fprintf(w, "%s Physical qubits: %s\n", green("✓"), bold(fmt.Sprint(result.PhysicalQubits())))
	fmt.Fprintf(w, "  %s algorithm, %s magic state factories\n",
		fmt.Sprint(result.PhysicalQubitsForAlgorithm()), fmt.Sprint(result.PhysicalQubitsForFactories()))
	fmt.Fprintf(w, "%s Runtime: %s ns\n", green("✓"), bold(fmt.Sprint(result.Runtime())))
	fmt.Fprintf(w, "  %s logical cycles\n", fmt.Sprint(result.NumCycles()))
	fmt.Fprintf(w, "%s Logical qubits: %s  Logical error rate: %s\n", cyan("→"),
		fmt.Sprint(result.LogicalPatch().LogicalQubits()), fmt.Sprintf("%.2e", result.RequiredLogicalPatchErrorRate()))
	if f := result.Factory(); f != nil {
		fmt.Fprintf(w, "%s Magic state factories: %s copies, %s runs\n", cyan("→"),
			fmt.Sprint(result.NumFactories()), fmt.Sprint(result.NumFactoryRuns()))
	} else {
		fmt.Fprintf(w, "%s No magic state factories needed\n", dim("·"))
	}
}

func printEstimationError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
}

// runRepl is an interactive what-if shell: it keeps one loaded job in
// memory and lets the user re-run Estimate after tweaking a
// constraint, mirroring the teacher's liner-based REPL loop.
func runRepl(path string) {
	_, est := loadAndBuild(path)

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)
	line.SetCompleter(func(s string) (c []string) {
		for _, cmd := range []string{":help", ":quit", ":estimate", ":frontier", ":set-max-duration", ":set-max-qubits", ":clear-constraints"} {
			if strings.HasPrefix(cmd, s) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Printf("%s %s - quantum resource estimator what-if shell\n", bold("qcc"), bold(Version))
	fmt.Println(dim("Type :help for help, :quit to exit"))
	fmt.Println()

	for {
		input, err := line.Prompt("qcc> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		parts := strings.Fields(input)
		switch parts[0] {
		case ":help", ":h":
			printReplHelp()

		case ":quit", ":q":
			fmt.Println(green("Goodbye!"))
			return

		case ":estimate":
			result, err := est.Estimate()
			if err != nil {
				printEstimationError(err)
				continue
			}
			printResult(os.Stdout, result)

		case ":frontier":
			frontier, err := est.BuildFrontier()
			if err != nil {
				printEstimationError(err)
				continue
			}
			fmt.Printf("%s %d Pareto-optimal configurations\n", cyan("→"), len(frontier))

		case ":set-max-duration":
			if len(parts) < 2 {
				fmt.Println("Usage: :set-max-duration <nanoseconds>")
				continue
			}
			n, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
				continue
			}
			est.SetMaxDuration(n)
			fmt.Printf("%s max duration set to %d ns\n", green("✓"), n)

		case ":set-max-qubits":
			if len(parts) < 2 {
				fmt.Println("Usage: :set-max-qubits <count>")
				continue
			}
			n, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
				continue
			}
			est.SetMaxPhysicalQubits(n)
			fmt.Printf("%s max physical qubits set to %d\n", green("✓"), n)

		case ":clear-constraints":
			_, est = loadAndBuild(path)
			fmt.Printf("%s constraints reset to job defaults\n", green("✓"))

		default:
			fmt.Printf("Unknown command: %s\n", parts[0])
			fmt.Println("Type :help for help")
		}
	}
}

func printReplHelp() {
	fmt.Println("Commands:")
	fmt.Println("  :help, :h               Show this help")
	fmt.Println("  :quit, :q               Exit the shell")
	fmt.Println("  :estimate               Re-run Estimate with current constraints")
	fmt.Println("  :frontier               Print the Pareto-optimal frontier size")
	fmt.Println("  :set-max-duration <ns>  Constrain the search to a max runtime")
	fmt.Println("  :set-max-qubits <n>     Constrain the search to a max physical qubit count")
	fmt.Println("  :clear-constraints      Reload the job, dropping any constraints set here")
}
