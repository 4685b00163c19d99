package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"querydeck/internal/domain"
)

const cellGap = "  "

// renderTable renders the header and the rows inside the viewport
func (r *Renderer) renderTable(state ViewState) string {
	widths := columnWidths(state.Columns, state.Width)

	var lines []string
	header := make([]string, len(state.Columns))
	for i, col := range state.Columns {
		header[i] = cell(col.Title, widths[i])
	}
	lines = append(lines, "  "+r.styles.Header.Render(strings.Join(header, cellGap)))

	total := len(state.Rows)
	height := state.ViewportHeight
	if height <= 0 {
		height = total
	}
	offset := min(max(state.ViewportOffset, 0), total)
	end := min(offset+height, total)

	if offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}
	for i := offset; i < end; i++ {
		cells := make([]string, len(widths))
		for j := range widths {
			value := ""
			if j < len(state.Rows[i]) {
				value = state.Rows[i][j]
			}
			cells[j] = cell(value, widths[j])
		}
		line := strings.Join(cells, cellGap)
		if i == state.Cursor {
			line = r.styles.SelectionBg.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if end < total {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", total-end)))
	}

	return strings.Join(lines, "\n")
}

// renderPagination renders the page tokens as "‹ 1 … 4 5 [6] 7 8 … 20 ›"
func (r *Renderer) renderPagination(state ViewState) string {
	if len(state.PageTokens) == 0 {
		return ""
	}
	parts := make([]string, 0, len(state.PageTokens)+2)
	if state.Page > 1 {
		parts = append(parts, r.styles.Page.Render("‹ prev"))
	} else {
		parts = append(parts, r.styles.Dim.Render("‹ prev"))
	}
	for _, token := range state.PageTokens {
		parts = append(parts, r.renderPageToken(token, state.Page))
	}
	if state.Page < state.TotalPages {
		parts = append(parts, r.styles.Page.Render("next ›"))
	} else {
		parts = append(parts, r.styles.Dim.Render("next ›"))
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) renderPageToken(token domain.PageToken, current int) string {
	if token.Gap {
		return r.styles.Dim.Render("…")
	}
	label := fmt.Sprintf("%d", token.Page)
	if token.Page == current {
		return r.styles.PageCurrent.Render("[" + label + "]")
	}
	return r.styles.Page.Render(label)
}

// columnWidths shrinks the widest columns until the row fits the terminal
func columnWidths(columns []Column, termWidth int) []int {
	widths := make([]int, len(columns))
	total := 0
	for i, col := range columns {
		widths[i] = max(col.Width, runewidth.StringWidth(col.Title))
		total += widths[i]
	}
	if termWidth <= 0 || len(columns) == 0 {
		return widths
	}

	// padding, cursor marker and gaps
	available := termWidth - 4 - 2 - len(cellGap)*(len(columns)-1)
	for total > available {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 4 {
			break
		}
		widths[widest]--
		total--
	}
	return widths
}

func cell(value string, width int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	return runewidth.FillRight(runewidth.Truncate(value, width, "…"), width)
}
