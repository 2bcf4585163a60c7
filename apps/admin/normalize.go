package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/trezcool/academia/core/grading"
)

func (cli *commandLine) normalize(p1, p2, p3 string) {
	row := cli.normalizer.Row(grading.Row{Parcial1: p1, Parcial2: p2, Parcial3: p3})

	_, _ = fmt.Fprintf(cli.out, "P1: %q  P2: %q  P3: %q\n", row.Parcial1, row.Parcial2, row.Parcial3)

	final := color.New(color.FgGreen)
	if row.Final == grading.NA {
		final = color.New(color.FgRed)
	}
	_, _ = fmt.Fprint(cli.out, "Final: ")
	_, _ = final.Fprintf(cli.out, "%q", row.Final)
	_, _ = fmt.Fprintf(cli.out, "  Extraordinario: %q  Status: %s\n", row.Extraordinario, grading.StatusOf(row))
}
