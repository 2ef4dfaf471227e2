package tui

import (
	"strconv"
	"strings"

	"labplan-cli/internal/model"
	"labplan-cli/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

// Day view: the anchor day's bucket on the left, the selected task's detail
// (markdown description and follow-up state) on the right.

func (m appModel) viewDay(width, height int) string {
	key := schedule.DayKey(m.vs.Anchor)
	bucket := m.visibleIndex()[key]

	listW := width / 2
	if listW < 30 {
		listW = 30
	}
	detailW := width - listW - 2
	if detailW < 24 {
		detailW = 24
	}

	head := lipgloss.NewStyle().Bold(true).Render(m.vs.Anchor.Format("Monday, January 2 2006"))
	lines := []string{head, ""}
	if len(bucket) == 0 {
		lines = append(lines, styleMuted().Render("No tasks due."))
	}
	for i, t := range bucket {
		selected := i == m.taskIdx && !m.drag.Active()
		lines = append(lines, m.taskLine(t, listW-1, selected))
	}
	left := normalizePane(strings.Join(lines, "\n"), listW, height)

	var detail string
	if t, ok := m.selectedTask(); ok {
		detail = m.renderTaskDetail(t, detailW, height)
	} else {
		detail = normalizePane(styleMuted().Render("Nothing selected."), detailW, height)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", detail)
}

func (m appModel) renderTaskDetail(t model.Task, width, height int) string {
	now := m.now()

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(truncateCell(t.Title, width)))

	meta := string(t.NormalizedCategory()) + " " + glyphBullet() + " " + string(t.Priority)
	if t.AssignedTo != "" {
		meta += " " + glyphBullet() + " " + t.AssignedTo
	}
	lines = append(lines, styleMuted().Render(truncateCell(meta, width)))

	if schedule.IsOverdue(t, now) {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorOverdueFg).Render(glyphOverdue()+" overdue"))
	}
	if t.WaitingForResponse {
		w := glyphWaiting() + " waiting for response"
		if schedule.IsFollowUpOverdue(t, now) {
			w += " (follow up!)"
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(colorWaitingFg).Render(w))
	}
	if schedule.HasPendingReminder(t, now) {
		lines = append(lines, glyphReminder()+" reminder pending")
	}
	if done, total := t.SubtaskProgress(); total > 0 {
		lines = append(lines, glyphSubtasks()+" subtasks "+strconv.Itoa(done)+"/"+strconv.Itoa(total))
	}

	if desc := strings.TrimSpace(t.Description); desc != "" {
		lines = append(lines, "")
		lines = append(lines, renderMarkdown(desc, width))
	}

	return normalizePane(strings.Join(lines, "\n"), width, height)
}
