package mastery

import "github.com/at-ishikawa/studyplan/internal/calendar"

// IsDue reports whether topic must be reviewed on today.
// A topic explicitly flagged TO_REVIEW is always due; otherwise it is due once its
// next review date is today or earlier.
func IsDue(topic Topic, today calendar.Date) bool {
	if topic.Status == StatusToReview {
		return true
	}
	return topic.NextReviewDate != nil && topic.NextReviewDate.OnOrBefore(today)
}

// DueTopics returns every due topic. The result is ordered by the position of the
// subject in subjects, then by the position of the topic within its subject.
func DueTopics(subjects []Subject, today calendar.Date) []Topic {
	var due []Topic
	for _, subject := range subjects {
		for _, topic := range subject.Topics {
			if IsDue(topic, today) {
				due = append(due, topic)
			}
		}
	}
	return due
}
