package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/mastery"
	"github.com/at-ishikawa/studyplan/internal/statistics"
)

var (
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint)
	warning = color.New(color.FgRed, color.Bold)

	statusColors = map[mastery.Status]*color.Color{
		mastery.StatusNotStudied: color.New(color.FgHiBlack),
		mastery.StatusStudying:   color.New(color.FgYellow),
		mastery.StatusToReview:   color.New(color.FgRed),
		mastery.StatusMastered:   color.New(color.FgGreen),
	}
	priorityColors = map[allocation.Priority]*color.Color{
		allocation.PriorityLow:    color.New(color.FgHiBlack),
		allocation.PriorityMedium: color.New(color.FgCyan),
		allocation.PriorityHigh:   color.New(color.FgYellow),
		allocation.PriorityUrgent: color.New(color.FgRed, color.Bold),
	}
)

func statusLabel(status mastery.Status) string {
	label := fmt.Sprintf("%-11s", status)
	if c, ok := statusColors[status]; ok {
		return c.Sprint(label)
	}
	return label
}

func priorityLabel(priority allocation.Priority) string {
	label := fmt.Sprintf("%-6s", priority)
	if c, ok := priorityColors[priority]; ok {
		return c.Sprint(label)
	}
	return label
}

func printSubjects(w io.Writer, subjects []mastery.Subject) {
	if len(subjects) == 0 {
		fmt.Fprintln(w, "No subjects. Run `studyplan import` to load a syllabus.")
		return
	}
	for _, subject := range subjects {
		mastered := 0
		for _, topic := range subject.Topics {
			if topic.Status == mastery.StatusMastered {
				mastered++
			}
		}
		fmt.Fprintf(w, "%s %s  %d/%d mastered\n", bold.Sprint(subject.Name), faint.Sprintf("(%s)", subject.ID), mastered, len(subject.Topics))
		for _, topic := range subject.Topics {
			fmt.Fprint(w, "  ")
			printTopic(w, topic)
		}
	}
}

func printTopics(w io.Writer, topics []mastery.Topic) {
	if len(topics) == 0 {
		fmt.Fprintln(w, "No topics.")
		return
	}
	for _, topic := range topics {
		printTopic(w, topic)
	}
}

func printTopic(w io.Writer, topic mastery.Topic) {
	var details []string
	if topic.NextReviewDate != nil {
		details = append(details, "next review "+topic.NextReviewDate.String())
	}
	if topic.Status == mastery.StatusMastered {
		details = append(details, fmt.Sprintf("level %d", topic.ReviewLevel))
	}
	if topic.QuestionsTotal > 0 {
		details = append(details, fmt.Sprintf("%d/%d correct (%.0f%%)", topic.QuestionsCorrect, topic.QuestionsTotal, topic.Accuracy()*100))
	}
	line := fmt.Sprintf("%s %s %s", statusLabel(topic.Status), topic.Name, faint.Sprintf("(%s)", topic.ID))
	if len(details) > 0 {
		line += "  " + strings.Join(details, ", ")
	}
	fmt.Fprintln(w, line)
}

func printDue(w io.Writer, topics []mastery.Topic, today calendar.Date) {
	if len(topics) == 0 {
		fmt.Fprintln(w, "Nothing to review today.")
		return
	}
	bold.Fprintf(w, "%d topics to review\n", len(topics))
	for _, topic := range topics {
		suffix := ""
		if topic.NextReviewDate != nil && topic.NextReviewDate.Before(today.Time) {
			days := int(today.Sub(topic.NextReviewDate.Time).Hours() / 24)
			suffix = "  " + warning.Sprintf("overdue %d days", days)
		}
		fmt.Fprintf(w, "  %s %s%s\n", topic.Name, faint.Sprintf("(%s)", topic.ID), suffix)
	}
}

func printTasks(w io.Writer, tasks []allocation.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for _, task := range tasks {
		printTask(w, task)
	}
}

func printTask(w io.Writer, task allocation.Task) {
	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}
	when := "unscheduled"
	if task.IsScheduled() {
		when = fmt.Sprintf("%s %s-%s", task.ScheduledDate, task.StartTime, task.EndTime)
	}
	fmt.Fprintf(w, "%s %s %s %s  %gh  %s\n", check, priorityLabel(task.Priority), task.Title, faint.Sprintf("(%s)", task.ID), task.DurationHours, when)
}

func printBuckets(w io.Writer, fills []allocation.BucketFill) {
	for _, fill := range fills {
		var marks []string
		if fill.IsStartSlot {
			marks = append(marks, "start")
		}
		if fill.IsEndSlot {
			marks = append(marks, "end")
		}
		line := fmt.Sprintf("%s  %5.1f%%  %2d min", fill.Bucket, fill.FillPercentage, fill.OccupiedMinutes)
		if len(marks) > 0 {
			line += "  " + faint.Sprint(strings.Join(marks, ", "))
		}
		fmt.Fprintln(w, line)
	}
}

func printGrid(w io.Writer, grid allocation.DayGrid) {
	bold.Fprintln(w, grid.Date.String())
	empty := true
	for _, cell := range grid.Cells {
		if len(cell.Entries) == 0 {
			continue
		}
		empty = false
		parts := make([]string, 0, len(cell.Entries))
		for _, entry := range cell.Entries {
			label := entry.Title
			if entry.Continues {
				label = "..." + entry.TaskID
			}
			part := fmt.Sprintf("%s %.0f%%", label, entry.FillPercentage)
			if entry.Overlapping {
				part = warning.Sprint(part)
			}
			parts = append(parts, part)
		}
		fmt.Fprintf(w, "%s | %s\n", cell.Bucket, strings.Join(parts, " | "))
	}
	if empty {
		fmt.Fprintln(w, "No scheduled tasks.")
	}
}

func printOverlaps(w io.Writer, overlaps []allocation.Overlap) {
	if len(overlaps) == 0 {
		fmt.Fprintln(w, "No overlapping tasks.")
		return
	}
	for _, overlap := range overlaps {
		fmt.Fprintf(w, "%s  %s and %s overlap for %s\n", overlap.Date, overlap.First, overlap.Second, warning.Sprintf("%d min", overlap.Minutes))
	}
}

func printSummary(w io.Writer, summary statistics.Summary) {
	bold.Fprintf(w, "%s to %s\n", summary.From, summary.To)
	printHours(w, "Total", summary.Total)
	if len(summary.Days) > 0 {
		fmt.Fprintln(w, "By day:")
		for _, day := range summary.Days {
			printHours(w, "  "+day.Date.String(), day.Hours)
		}
	}
	if len(summary.Subjects) > 0 {
		fmt.Fprintln(w, "By subject:")
		for _, subject := range summary.Subjects {
			printHours(w, "  "+subject.SubjectRef, subject.Hours)
		}
	}
}

func printHours(w io.Writer, label string, hours statistics.Hours) {
	fmt.Fprintf(w, "%-14s %5.1fh planned  %5.1fh completed  %3.0f%%  (%d/%d tasks)\n",
		label, hours.PlannedHours, hours.CompletedHours, hours.CompletionRate()*100, hours.CompletedCount, hours.TaskCount)
}
