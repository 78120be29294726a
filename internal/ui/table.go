package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"adopr/internal/ado"
)

// RenderChangeTable renders the eligible changed files as a table.
// Example output:
//
//	┌───┬────────┬──────────────────┐
//	│ # │ Change │ File             │
//	├───┼────────┼──────────────────┤
//	│ 1 │ edit   │ src/a.ts         │
//	│ 2 │ add    │ src/b.ts         │
//	└───┴────────┴──────────────────┘
func RenderChangeTable(changes []ado.Change) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Padding(0, 1)
			}
			if col == 1 && row >= 0 && row < len(changes) {
				return GetChangeStyle(changes[row].ChangeType).Padding(0, 1)
			}
			return TableCellStyle
		}).
		Headers("#", "Change", "File")

	for i, c := range changes {
		t.Row(strconv.Itoa(i+1), c.ChangeType, strings.TrimPrefix(c.Item.Path, "/"))
	}

	return t.Render()
}
