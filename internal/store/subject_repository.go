package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studyplan/internal/database"
	"github.com/at-ishikawa/studyplan/internal/mastery"
)

const insertBatchSize = 100

// DBSubjectRepository implements SubjectRepository using sqlx.
type DBSubjectRepository struct {
	db *sqlx.DB
}

// NewDBSubjectRepository creates a new DBSubjectRepository.
func NewDBSubjectRepository(db *sqlx.DB) *DBSubjectRepository {
	return &DBSubjectRepository{db: db}
}

// FindAll returns the owner's subjects with their topics, both in syllabus order.
func (r *DBSubjectRepository) FindAll(ctx context.Context, ownerID string) ([]mastery.Subject, error) {
	var subjects []mastery.Subject
	if err := r.db.SelectContext(ctx, &subjects,
		r.db.Rebind("SELECT id, name FROM subjects WHERE owner_id = ? ORDER BY position, id"),
		ownerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(subjects) > %w", err)
	}
	if len(subjects) == 0 {
		return subjects, nil
	}

	var topics []mastery.Topic
	if err := r.db.SelectContext(ctx, &topics,
		r.db.Rebind("SELECT "+topicColumns+" FROM topics WHERE owner_id = ? ORDER BY position, id"),
		ownerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(topics) > %w", err)
	}

	index := make(map[string]int, len(subjects))
	for i := range subjects {
		index[subjects[i].ID] = i
		subjects[i].Topics = []mastery.Topic{}
	}
	for _, topic := range topics {
		i, ok := index[topic.SubjectID]
		if !ok {
			continue
		}
		subjects[i].Topics = append(subjects[i].Topics, topic)
	}
	return subjects, nil
}

// Create appends subjects and their topics to the owner's syllabus in one transaction.
func (r *DBSubjectRepository) Create(ctx context.Context, ownerID string, subjects []mastery.Subject) error {
	if len(subjects) == 0 {
		return nil
	}
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var offset int
		if err := tx.GetContext(ctx, &offset,
			tx.Rebind("SELECT COUNT(*) FROM subjects WHERE owner_id = ?"), ownerID); err != nil {
			return fmt.Errorf("tx.GetContext(count subjects) > %w", err)
		}

		columns := []string{"owner_id", "id", "name", "position"}
		for start := 0; start < len(subjects); start += insertBatchSize {
			end := min(start+insertBatchSize, len(subjects))
			args := make([]interface{}, 0, (end-start)*len(columns))
			for i := start; i < end; i++ {
				args = append(args, ownerID, subjects[i].ID, subjects[i].Name, offset+i)
			}
			query := database.BuildMultiRowInsert("subjects", columns, end-start)
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("tx.ExecContext(insert subjects) > %w", err)
			}
		}

		var args []interface{}
		rows := 0
		flush := func() error {
			if rows == 0 {
				return nil
			}
			query := database.BuildMultiRowInsert("topics", topicInsertColumns, rows)
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("tx.ExecContext(insert topics) > %w", err)
			}
			args = args[:0]
			rows = 0
			return nil
		}
		for _, subject := range subjects {
			for position, topic := range subject.Topics {
				topic.SubjectID = subject.ID
				args = append(args, topicInsertArgs(ownerID, topic, position)...)
				rows++
				if rows == insertBatchSize {
					if err := flush(); err != nil {
						return err
					}
				}
			}
		}
		return flush()
	})
}
