package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studyplan/internal/database"
	"github.com/at-ishikawa/studyplan/internal/mastery"
)

const topicColumns = "id, subject_id, name, status, review_level, next_review_date, questions_total, questions_correct, notes"

// qualifiedTopicColumns is topicColumns prefixed with the alias t, for joins with subjects.
var qualifiedTopicColumns = "t." + strings.ReplaceAll(topicColumns, ", ", ", t.")

// DBTopicRepository implements TopicRepository using sqlx.
type DBTopicRepository struct {
	db *sqlx.DB
}

// NewDBTopicRepository creates a new DBTopicRepository.
func NewDBTopicRepository(db *sqlx.DB) *DBTopicRepository {
	return &DBTopicRepository{db: db}
}

// FindByID returns the topic or an error wrapping mastery.ErrTopicNotFound.
func (r *DBTopicRepository) FindByID(ctx context.Context, ownerID, id string) (*mastery.Topic, error) {
	var topic mastery.Topic
	err := r.db.GetContext(ctx, &topic,
		r.db.Rebind("SELECT "+topicColumns+" FROM topics WHERE owner_id = ? AND id = ?"),
		ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", mastery.ErrTopicNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(topic) > %w", err)
	}
	return &topic, nil
}

// FindAll returns every topic of the owner in syllabus order: by the position of the
// subject, then by the position of the topic within it.
func (r *DBTopicRepository) FindAll(ctx context.Context, ownerID string) ([]mastery.Topic, error) {
	var topics []mastery.Topic
	if err := r.db.SelectContext(ctx, &topics,
		r.db.Rebind(`SELECT `+qualifiedTopicColumns+` FROM topics t
		JOIN subjects s ON s.owner_id = t.owner_id AND s.id = t.subject_id
		WHERE t.owner_id = ? ORDER BY s.position, s.id, t.position, t.id`),
		ownerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(topics) > %w", err)
	}
	return topics, nil
}

// Create appends a topic to the end of its subject.
func (r *DBTopicRepository) Create(ctx context.Context, ownerID string, topic mastery.Topic) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var position int
		if err := tx.GetContext(ctx, &position,
			tx.Rebind("SELECT COUNT(*) FROM topics WHERE owner_id = ? AND subject_id = ?"),
			ownerID, topic.SubjectID); err != nil {
			return fmt.Errorf("tx.GetContext(count topics) > %w", err)
		}
		query := database.BuildMultiRowInsert("topics", topicInsertColumns, 1)
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), topicInsertArgs(ownerID, topic, position)...); err != nil {
			return fmt.Errorf("tx.ExecContext(insert topic) > %w", err)
		}
		return nil
	})
}

// Update overwrites the review state and notes of a topic.
func (r *DBTopicRepository) Update(ctx context.Context, ownerID string, topic mastery.Topic) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE topics SET name = ?, status = ?, review_level = ?, next_review_date = ?,
		questions_total = ?, questions_correct = ?, notes = ? WHERE owner_id = ? AND id = ?`),
		topic.Name, topic.Status, topic.ReviewLevel, topic.NextReviewDate,
		topic.QuestionsTotal, topic.QuestionsCorrect, topic.Notes, ownerID, topic.ID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update topic) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("%w: %s", mastery.ErrTopicNotFound, topic.ID))
}

var topicInsertColumns = []string{
	"owner_id", "id", "subject_id", "name", "position", "status", "review_level",
	"next_review_date", "questions_total", "questions_correct", "notes",
}

func topicInsertArgs(ownerID string, topic mastery.Topic, position int) []interface{} {
	status := topic.Status
	if status == "" {
		status = mastery.StatusNotStudied
	}
	return []interface{}{
		ownerID, topic.ID, topic.SubjectID, topic.Name, position, status, topic.ReviewLevel,
		topic.NextReviewDate, topic.QuestionsTotal, topic.QuestionsCorrect, topic.Notes,
	}
}

func expectAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
