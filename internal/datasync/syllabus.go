package datasync

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/mastery"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

// Syllabus is the file format of a subject list.
//
//	subjects:
//	  - name: Algorithms
//	    topics:
//	      - name: Graphs
//	        notes: BFS and DFS
//
// Progress fields are written by Export and ignored on import.
type Syllabus struct {
	Subjects []SyllabusSubject `yaml:"subjects"`
}

type SyllabusSubject struct {
	Name   string          `yaml:"name"`
	Topics []SyllabusTopic `yaml:"topics"`
}

type SyllabusTopic struct {
	Name             string         `yaml:"name"`
	Notes            string         `yaml:"notes,omitempty"`
	Status           mastery.Status `yaml:"status,omitempty"`
	ReviewLevel      int            `yaml:"review_level,omitempty"`
	NextReviewDate   *calendar.Date `yaml:"next_review_date,omitempty"`
	QuestionsTotal   int            `yaml:"questions_total,omitempty"`
	QuestionsCorrect int            `yaml:"questions_correct,omitempty"`
}

// Validate rejects unnamed entries and subject names used twice.
func (s *Syllabus) Validate() error {
	seen := make(map[string]bool, len(s.Subjects))
	for i, subject := range s.Subjects {
		if strings.TrimSpace(subject.Name) == "" {
			return validation.Errorf(fmt.Sprintf("subjects[%d].name", i), "must not be empty")
		}
		if seen[subject.Name] {
			return validation.Errorf(fmt.Sprintf("subjects[%d].name", i), "duplicate subject %q", subject.Name)
		}
		seen[subject.Name] = true
		for j, topic := range subject.Topics {
			if strings.TrimSpace(topic.Name) == "" {
				return validation.Errorf(fmt.Sprintf("subjects[%d].topics[%d].name", i, j), "must not be empty")
			}
		}
	}
	return nil
}

// FromSubjects builds the export document of subjects.
func FromSubjects(subjects []mastery.Subject) *Syllabus {
	syllabus := &Syllabus{Subjects: make([]SyllabusSubject, 0, len(subjects))}
	for _, subject := range subjects {
		entry := SyllabusSubject{
			Name:   subject.Name,
			Topics: make([]SyllabusTopic, 0, len(subject.Topics)),
		}
		for _, topic := range subject.Topics {
			entry.Topics = append(entry.Topics, SyllabusTopic{
				Name:             topic.Name,
				Notes:            topic.Notes,
				Status:           topic.Status,
				ReviewLevel:      topic.ReviewLevel,
				NextReviewDate:   topic.NextReviewDate,
				QuestionsTotal:   topic.QuestionsTotal,
				QuestionsCorrect: topic.QuestionsCorrect,
			})
		}
		syllabus.Subjects = append(syllabus.Subjects, entry)
	}
	return syllabus
}

// ReadYAML decodes a syllabus document. Unknown keys are rejected.
func ReadYAML(r io.Reader) (*Syllabus, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var syllabus Syllabus
	if err := decoder.Decode(&syllabus); err != nil {
		if err == io.EOF {
			return &syllabus, nil
		}
		return nil, fmt.Errorf("yaml.Decode > %w", err)
	}
	if err := syllabus.Validate(); err != nil {
		return nil, err
	}
	return &syllabus, nil
}

// WriteYAML encodes syllabus with a two-space indent.
func WriteYAML(w io.Writer, syllabus *Syllabus) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(syllabus); err != nil {
		return fmt.Errorf("yaml.Encode > %w", err)
	}
	return encoder.Close()
}

// ReadXLSX reads a sheet whose header row names the columns subject, topic and notes.
// An empty subject cell continues the subject of the row above. An empty sheet name
// selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (*Syllabus, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenReader > %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, validation.Errorf("sheet", "workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("GetRows(%s) > %w", sheet, err)
	}
	if len(rows) == 0 {
		return &Syllabus{}, nil
	}

	columns := map[string]int{"subject": -1, "topic": -1, "notes": -1}
	for i, header := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(header))
		if _, ok := columns[key]; ok {
			columns[key] = i
		}
	}
	if columns["subject"] < 0 || columns["topic"] < 0 {
		return nil, validation.Errorf("header", "sheet %s needs subject and topic columns", sheet)
	}

	var syllabus Syllabus
	index := make(map[string]int)
	current := -1
	for n, row := range rows[1:] {
		subject := cell(row, columns["subject"])
		topic := cell(row, columns["topic"])
		if subject == "" && topic == "" {
			continue
		}
		if subject != "" {
			i, ok := index[subject]
			if !ok {
				i = len(syllabus.Subjects)
				index[subject] = i
				syllabus.Subjects = append(syllabus.Subjects, SyllabusSubject{Name: subject})
			}
			current = i
		}
		if current < 0 {
			return nil, validation.Errorf(fmt.Sprintf("row %d", n+2), "topic %q has no subject", topic)
		}
		if topic != "" {
			syllabus.Subjects[current].Topics = append(syllabus.Subjects[current].Topics, SyllabusTopic{
				Name:  topic,
				Notes: cell(row, columns["notes"]),
			})
		}
	}
	if err := syllabus.Validate(); err != nil {
		return nil, err
	}
	return &syllabus, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
