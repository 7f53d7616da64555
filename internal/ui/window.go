package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
)

// WindowTable renders one row per slot: hour, rain, temperature, the
// physical pixel and a swatch of each strip's color. frames is indexed by
// strip name and physical pixel; missing strips are skipped.
func WindowTable(w forecast.Window, currentHour int, reversed bool, frames map[string][]led.Color) string {
	strips := make([]string, 0, 2)
	for _, name := range []string{"rain", "temperature"} {
		if _, ok := frames[name]; ok {
			strips = append(strips, name)
		}
	}

	headers := []string{"", "Hour", "Rain", "Temp", "Pixel"}
	headers = append(headers, strips...)

	current := -1
	rows := make([][]string, 0, len(w))
	for i, slot := range w {
		pixel := forecast.PixelIndex(i, len(w), reversed)
		marker := ""
		if slot.Hour == currentHour {
			marker = CurrentMarker
			current = i
		}
		row := []string{
			marker,
			fmt.Sprintf("%02d:00", slot.Hour),
			FormatRain(slot.Entry),
			FormatTemp(slot.Entry),
			strconv.Itoa(pixel),
		}
		for _, name := range strips {
			frame := frames[name]
			c := led.Off
			if pixel < len(frame) {
				c = frame[pixel]
			}
			row = append(row, Swatch(c))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(MutedColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case row == current:
				return CurrentRowStyle
			case row >= 0 && row < len(w) && !w[row].Present:
				return MutedCellStyle
			default:
				return TableCellStyle
			}
		})
	return t.Render()
}

// FormatRain renders the chance of rain, "-" when absent.
func FormatRain(e forecast.Entry) string {
	if e.Rain == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *e.Rain)
}

// FormatTemp renders the temperature, "-" when absent.
func FormatTemp(e forecast.Entry) string {
	if e.Temp == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f°", *e.Temp)
}

// Swatch is a colored block followed by the hex value.
func Swatch(c led.Color) string {
	if c.IsOff() {
		return lipgloss.NewStyle().Foreground(MutedColor).Render("·· off")
	}
	block := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("██")
	return block + " " + c.Hex()
}
