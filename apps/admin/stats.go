package main

import (
	"context"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// stats prints a teacher's performance snapshot as tables.
func (cli *commandLine) stats(teacherID string) error {
	snap, err := cli.perfSvc.TeacherStats(context.Background(), teacherID)
	if err != nil {
		return err
	}

	_, _ = color.New(color.FgCyan).Fprintf(cli.out, "\n=== Performance of teacher %s ===\n", teacherID)

	table := tablewriter.NewWriter(cli.out)
	table.SetHeader([]string{"KPI", "Value"})
	table.AppendBulk([][]string{
		{"Group average", formatFloat(snap.PromedioFinalGrupo)},
		{"Approval rate (%)", formatFloat(snap.TasaAprobacion)},
		{"Students", strconv.Itoa(snap.TotalEstudiantes)},
		{"Students below pass mark", strconv.Itoa(snap.EstudiantesBajoRendimiento)},
		{"Subjects taught", strconv.Itoa(snap.MateriasImpartidas)},
		{"Groups assigned", strconv.Itoa(snap.GruposAsignados)},
		{"Average attendance (%)", formatFloat(snap.AsistenciaPromedio)},
		{"Critical attendance", strconv.Itoa(snap.EstudiantesAsistenciaCritica)},
	})
	table.Render()

	if len(snap.RendimientoMateria) > 0 {
		_, _ = color.New(color.FgYellow).Fprintln(cli.out, "\nPer subject")
		subjects := tablewriter.NewWriter(cli.out)
		subjects.SetHeader([]string{"Subject", "Average"})
		for _, sp := range snap.RendimientoMateria {
			subjects.Append([]string{sp.Materia, formatFloat(sp.Promedio)})
		}
		subjects.Render()
	}

	if snap.EstudiantesAsistenciaCritica > 0 {
		_, _ = color.New(color.FgRed).Fprintf(cli.out, "\n%d student(s) with critical attendance\n", snap.EstudiantesAsistenciaCritica)
	}
	return nil
}
