package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/trezcool/academia/core/grading"
	"github.com/trezcool/academia/core/performance"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sql.DB
	perfSvc    performance.Service
	normalizer grading.Normalizer
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...]  - run a goose command (up, down, status, version, redo, reset...)")
	_, _ = fmt.Fprintln(cli.out, "  stats -teacher ID          - print a teacher's performance snapshot")
	_, _ = fmt.Fprintln(cli.out, "  normalize P1 P2 P3         - normalize three partial grades (use \"\" for blank partials)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	statsCmd := flag.NewFlagSet("stats", flag.ContinueOnError)
	statsCmd.SetOutput(cli.out)
	statsTeacher := statsCmd.String("teacher", "", "The teacher's ID.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "stats":
		if err := statsCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *statsTeacher == "" {
			statsCmd.Usage()
			return errHelp
		}
		return cli.stats(*statsTeacher)
	case "normalize":
		if len(args) != 5 {
			cli.printUsage()
			return errHelp
		}
		cli.normalize(args[2], args[3], args[4])
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}
