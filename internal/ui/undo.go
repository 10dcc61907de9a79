package ui

import (
	"fmt"
	"sync"

	"habitflow/internal/session"
	"habitflow/internal/storage"
)

// maxUndoHistory bounds the undo and redo stacks.
const maxUndoHistory = 50

// UndoableAction represents a reversible operation.
type UndoableAction struct {
	// Description is shown in the status bar, e.g. "delete habit 'Meditate'".
	Description string

	// Undo reverses the action.
	Undo func() error

	// Redo re-applies the action after an undo.
	Redo func() error
}

// UndoManager maintains bounded undo and redo stacks.
type UndoManager struct {
	mu        sync.Mutex
	undoStack []UndoableAction
	redoStack []UndoableAction
}

// NewUndoManager creates an empty undo manager.
func NewUndoManager() *UndoManager {
	return &UndoManager{}
}

// Push records an action that can be undone. Pushing clears the redo
// stack, since the new action invalidates any undone history.
func (m *UndoManager) Push(action UndoableAction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.undoStack = append(m.undoStack, action)
	if len(m.undoStack) > maxUndoHistory {
		m.undoStack = m.undoStack[1:]
	}
	m.redoStack = nil
}

// Undo reverses the most recent action. The action is returned so the
// caller can report what was undone.
func (m *UndoManager) Undo() (UndoableAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undoStack) == 0 {
		return UndoableAction{}, fmt.Errorf("nothing to undo")
	}

	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]

	if err := action.Undo(); err != nil {
		// Put it back so the user can retry.
		m.undoStack = append(m.undoStack, action)
		return UndoableAction{}, fmt.Errorf("undo failed: %w", err)
	}

	m.redoStack = append(m.redoStack, action)
	if len(m.redoStack) > maxUndoHistory {
		m.redoStack = m.redoStack[1:]
	}
	return action, nil
}

// Redo re-applies the most recently undone action.
func (m *UndoManager) Redo() (UndoableAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redoStack) == 0 {
		return UndoableAction{}, fmt.Errorf("nothing to redo")
	}

	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]

	if err := action.Redo(); err != nil {
		m.redoStack = append(m.redoStack, action)
		return UndoableAction{}, fmt.Errorf("redo failed: %w", err)
	}

	m.undoStack = append(m.undoStack, action)
	if len(m.undoStack) > maxUndoHistory {
		m.undoStack = m.undoStack[1:]
	}
	return action, nil
}

// CanUndo reports whether the undo stack is non-empty.
func (m *UndoManager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (m *UndoManager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// Clear drops both stacks. Called on logout so one user's history
// cannot leak into another's session.
func (m *UndoManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undoStack = nil
	m.redoStack = nil
}

// =============================================================================
// Action factories
// =============================================================================

// newToggleHabitAction builds an undoable action for a completion flip.
// Toggling is its own inverse, so undo and redo both toggle.
func newToggleHabitAction(sess *session.Session, habit storage.Habit) UndoableAction {
	verb := "complete"
	if !habit.CompletedToday {
		verb = "uncomplete"
	}
	toggle := func() error {
		_, err := sess.ToggleHabit(habit.ID)
		return err
	}
	return UndoableAction{
		Description: fmt.Sprintf("%s habit '%s'", verb, habit.Title),
		Undo:        toggle,
		Redo:        toggle,
	}
}

// newDeleteHabitAction builds an undoable action for a habit deletion,
// capturing the removed habit so undo can restore it.
func newDeleteHabitAction(sess *session.Session, habit storage.Habit) UndoableAction {
	return UndoableAction{
		Description: fmt.Sprintf("delete habit '%s'", habit.Title),
		Undo: func() error {
			return sess.RestoreHabit(habit)
		},
		Redo: func() error {
			_, err := sess.DeleteHabit(habit.ID)
			return err
		},
	}
}

// newUpdateGoalAction builds an undoable action for a progress change.
func newUpdateGoalAction(sess *session.Session, goal storage.Goal, delta int) UndoableAction {
	verb := "advance"
	if delta < 0 {
		verb = "regress"
	}
	return UndoableAction{
		Description: fmt.Sprintf("%s goal '%s'", verb, goal.Title),
		Undo: func() error {
			_, err := sess.UpdateGoal(goal.ID, -delta)
			return err
		},
		Redo: func() error {
			_, err := sess.UpdateGoal(goal.ID, delta)
			return err
		},
	}
}

// newDeleteGoalAction builds an undoable action for a goal deletion.
func newDeleteGoalAction(sess *session.Session, goal storage.Goal) UndoableAction {
	return UndoableAction{
		Description: fmt.Sprintf("delete goal '%s'", goal.Title),
		Undo: func() error {
			return sess.RestoreGoal(goal)
		},
		Redo: func() error {
			_, err := sess.DeleteGoal(goal.ID)
			return err
		},
	}
}
