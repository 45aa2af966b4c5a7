package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamAssignment_AssigneeFor(t *testing.T) {
	a := TeamAssignment{"writer": "user-2", "reviewer": ""}

	id, ok := a.AssigneeFor("writer")
	assert.True(t, ok)
	assert.Equal(t, "user-2", id)

	_, ok = a.AssigneeFor("reviewer")
	assert.False(t, ok, "empty id counts as unassigned")

	_, ok = a.AssigneeFor("calculator")
	assert.False(t, ok)
}

func TestTeamAssignment_PersonIDs_DistinctSorted(t *testing.T) {
	a := TeamAssignment{
		"tendermanager": "user-1",
		"writer":        "user-2",
		"coordinator":   "user-1",
		"reviewer":      "",
	}
	assert.Equal(t, []string{"user-1", "user-2"}, a.PersonIDs())
}

func TestTemplateTask_EffectiveDuration(t *testing.T) {
	assert.Equal(t, 1, TemplateTask{DurationWorkdays: 0}.EffectiveDuration())
	assert.Equal(t, 1, TemplateTask{DurationWorkdays: -3}.EffectiveDuration())
	assert.Equal(t, 5, TemplateTask{DurationWorkdays: 5}.EffectiveDuration())
}
