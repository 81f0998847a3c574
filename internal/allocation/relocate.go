package allocation

import (
	"math"

	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

// NewTask returns an unscheduled task with medium priority.
func NewTask(id, subjectRef, title string, durationHours float64) (Task, error) {
	task := Task{
		ID:            id,
		SubjectRef:    subjectRef,
		Title:         title,
		Priority:      PriorityMedium,
		DurationHours: durationHours,
	}
	if err := Validate(task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Validate checks the invariants every stored task must hold.
// Times are only meaningful together with a date, so a task in the pool carries none.
func Validate(task Task) error {
	if task.SubjectRef == "" {
		return validation.Errorf("subject_ref", "is required")
	}
	if !task.Priority.IsValid() {
		return validation.Errorf("priority", "unknown priority %q", string(task.Priority))
	}
	if err := validateDuration(task.DurationHours); err != nil {
		return err
	}

	if !task.IsScheduled() {
		if task.StartTime != nil || task.EndTime != nil {
			return validation.Errorf("scheduled_date", "is required when start_time or end_time is set")
		}
		return nil
	}

	if task.StartTime == nil || task.EndTime == nil {
		return validation.Errorf("start_time", "start_time and end_time are required for a scheduled task")
	}
	start, end := task.StartTime.Minutes(), task.EndTime.Minutes()
	if end <= start {
		return validation.Errorf("end_time", "%s must be after start_time %s", task.EndTime, task.StartTime)
	}
	if end-start != task.DurationMinutes() {
		return validation.Errorf("end_time", "%s to %s is %d minutes but the task lasts %d minutes",
			task.StartTime, task.EndTime, end-start, task.DurationMinutes())
	}
	return nil
}

func validateDuration(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return validation.Errorf("duration_hours", "must be positive, got %v", hours)
	}
	if durationMinutes(hours) < 1 {
		return validation.Errorf("duration_hours", "%v hours is shorter than one minute", hours)
	}
	return nil
}

// Relocate moves task to date, starting at start. The duration is kept as is and the
// end time is derived from it; only the date, start and end change.
// A task may end at 24:00; one that would run past it is rejected.
func Relocate(task Task, date calendar.Date, start calendar.ClockTime) (Task, error) {
	if task.SubjectRef == "" {
		return Task{}, validation.Errorf("subject_ref", "is required to schedule a task")
	}
	if err := validateDuration(task.DurationHours); err != nil {
		return Task{}, err
	}
	end, err := start.AddMinutes(task.DurationMinutes())
	if err != nil {
		return Task{}, validation.Errorf("start_time", "a %d minute task starting at %s ends after 24:00",
			task.DurationMinutes(), start)
	}

	task.ScheduledDate = &date
	task.StartTime = &start
	task.EndTime = &end
	return task, nil
}

// RelocateByID relocates the task with the given id inside tasks.
func RelocateByID(tasks []Task, id string, date calendar.Date, start calendar.ClockTime) (Task, error) {
	target, err := FindTask(tasks, id)
	if err != nil {
		return Task{}, err
	}
	relocated, err := Relocate(*target, date, start)
	if err != nil {
		return Task{}, err
	}
	*target = relocated
	return relocated, nil
}

// Unschedule returns task to the unscheduled pool.
func Unschedule(task Task) Task {
	task.ScheduledDate = nil
	task.StartTime = nil
	task.EndTime = nil
	return task
}

// Pool returns the unscheduled tasks in their original order.
func Pool(tasks []Task) []Task {
	var pool []Task
	for _, task := range tasks {
		if !task.IsScheduled() {
			pool = append(pool, task)
		}
	}
	return pool
}

// SetCompleted marks task as done or not done. The schedule is left untouched.
func SetCompleted(task Task, completed bool) Task {
	task.Completed = completed
	return task
}
