// Package datasync provides import/export orchestration between syllabus files and the planner.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/studyplan/internal/mastery"
	"github.com/at-ishikawa/studyplan/internal/planner"
)

// SyllabusPlanner is the part of planner.Planner used to sync syllabus files.
type SyllabusPlanner interface {
	ListSubjects(ctx context.Context, ownerID string) ([]mastery.Subject, error)
	ImportSubjects(ctx context.Context, ownerID string, subjects []mastery.Subject) ([]mastery.Subject, error)
	AddTopic(ctx context.Context, ownerID string, input planner.TopicInput) (mastery.Topic, error)
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	SubjectsNew     int
	SubjectsSkipped int
	TopicsNew       int
	TopicsSkipped   int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
	// UpdateExisting adds missing topics to subjects that already exist.
	UpdateExisting bool
}

// Importer reads syllabus documents and creates subjects and topics.
type Importer struct {
	planner SyllabusPlanner
	writer  io.Writer
}

// NewImporter creates a new Importer. Progress lines are written to writer.
func NewImporter(p SyllabusPlanner, writer io.Writer) *Importer {
	return &Importer{
		planner: p,
		writer:  writer,
	}
}

// Import creates the subjects of syllabus that do not exist yet, matched by name.
// New topics always start as NOT_STUDIED.
func (imp *Importer) Import(ctx context.Context, ownerID string, syllabus *Syllabus, opts ImportOptions) (*ImportResult, error) {
	if err := syllabus.Validate(); err != nil {
		return nil, err
	}
	existing, err := imp.planner.ListSubjects(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListSubjects() > %w", err)
	}
	byName := make(map[string]mastery.Subject, len(existing))
	for _, subject := range existing {
		byName[subject.Name] = subject
	}

	var result ImportResult
	var created []mastery.Subject
	for _, entry := range syllabus.Subjects {
		subject, ok := byName[entry.Name]
		if !ok {
			created = append(created, newSubject(entry))
			fmt.Fprintf(imp.writer, "  [NEW]  %q (%d topics)\n", entry.Name, len(entry.Topics))
			result.SubjectsNew++
			result.TopicsNew += len(entry.Topics)
			continue
		}

		result.SubjectsSkipped++
		if !opts.UpdateExisting {
			fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", entry.Name)
			result.TopicsSkipped += len(entry.Topics)
			continue
		}
		if err := imp.addMissingTopics(ctx, ownerID, subject, entry, opts, &result); err != nil {
			return nil, err
		}
	}

	if len(created) > 0 && !opts.DryRun {
		if _, err := imp.planner.ImportSubjects(ctx, ownerID, created); err != nil {
			return nil, fmt.Errorf("ImportSubjects() > %w", err)
		}
	}
	return &result, nil
}

func (imp *Importer) addMissingTopics(ctx context.Context, ownerID string, subject mastery.Subject, entry SyllabusSubject, opts ImportOptions, result *ImportResult) error {
	known := make(map[string]bool, len(subject.Topics))
	for _, topic := range subject.Topics {
		known[topic.Name] = true
	}
	for _, topic := range entry.Topics {
		if known[topic.Name] {
			fmt.Fprintf(imp.writer, "  [SKIP]  %q / %q\n", entry.Name, topic.Name)
			result.TopicsSkipped++
			continue
		}
		if !opts.DryRun {
			input := planner.TopicInput{SubjectID: subject.ID, Name: topic.Name, Notes: topic.Notes}
			if _, err := imp.planner.AddTopic(ctx, ownerID, input); err != nil {
				return fmt.Errorf("AddTopic(%s, %s) > %w", subject.ID, topic.Name, err)
			}
		}
		known[topic.Name] = true
		fmt.Fprintf(imp.writer, "  [NEW]  %q / %q\n", entry.Name, topic.Name)
		result.TopicsNew++
	}
	return nil
}

func newSubject(entry SyllabusSubject) mastery.Subject {
	subject := mastery.Subject{
		Name:   entry.Name,
		Topics: make([]mastery.Topic, 0, len(entry.Topics)),
	}
	for _, topic := range entry.Topics {
		subject.Topics = append(subject.Topics, mastery.Topic{Name: topic.Name, Notes: topic.Notes})
	}
	return subject
}

// Exporter reads the planner and returns syllabus documents.
type Exporter struct {
	planner SyllabusPlanner
}

// NewExporter creates a new Exporter.
func NewExporter(p SyllabusPlanner) *Exporter {
	return &Exporter{planner: p}
}

// Export returns every subject of the owner with the progress of its topics.
func (e *Exporter) Export(ctx context.Context, ownerID string) (*Syllabus, error) {
	subjects, err := e.planner.ListSubjects(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListSubjects() > %w", err)
	}
	return FromSubjects(subjects), nil
}
