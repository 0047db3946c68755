package entities

import (
	"github.com/tavernkeep/gm-engine/internal/errors"
)

// QuestStatus is a strictly forward-moving enumeration. There is no
// transition back from a later status to an earlier one.
type QuestStatus string

// Quest statuses, in order.
const (
	QuestNotStarted QuestStatus = "not_started"
	QuestInProgress QuestStatus = "in_progress"
	QuestCompleted  QuestStatus = "completed"
)

func (s QuestStatus) rank() int {
	switch s {
	case QuestNotStarted:
		return 0
	case QuestInProgress:
		return 1
	case QuestCompleted:
		return 2
	default:
		return -1
	}
}

// Quest is a tracked objective chain.
type Quest struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Objectives  []string    `json:"objectives"`
	Status      QuestStatus `json:"status"`
	XPReward    int         `json:"xp_reward,omitempty"`
	GoldReward  int         `json:"gold_reward,omitempty"`
}

// Transition moves the quest to a later status. Regressions and unknown
// statuses are rejected without mutating the quest.
func (q *Quest) Transition(to QuestStatus) error {
	if to.rank() < 0 {
		return errors.InvalidArgumentf("unknown quest status: %s", to)
	}
	if to.rank() < q.Status.rank() {
		return errors.FailedPreconditionf("quest status cannot regress from %s to %s", q.Status, to)
	}
	q.Status = to
	return nil
}

// Start marks the quest in progress.
func (q *Quest) Start() error {
	return q.Transition(QuestInProgress)
}

// Complete marks the quest completed.
func (q *Quest) Complete() error {
	return q.Transition(QuestCompleted)
}
