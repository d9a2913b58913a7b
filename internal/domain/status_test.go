package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_RankIsLifecycleOrder(t *testing.T) {
	order := []TaskStatus{
		TaskStatusEnqueued,
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
	}

	for i, s := range order {
		assert.Equal(t, i, s.Rank(), "rank of %s", s)
	}

	assert.Equal(t, -1, TaskStatus("failed").Rank())
	assert.True(t, TaskStatusCompleted.IsTerminal())
	assert.False(t, TaskStatusInProgress.IsTerminal())
}

func TestTaskFilterRequest_CloneIsDeep(t *testing.T) {
	req := TaskFilterRequest{
		ProviderA: ProviderFilter{YearFrom: 2020, YearTo: 2021, Countries: []string{"US"}, ThreatLevels: []int{3}},
		ProviderB: ProviderFilter{YearFrom: 2019, YearTo: 2022, Countries: []string{"DE"}},
	}

	clone := req.Clone()
	req.ProviderA.Countries[0] = "FR"
	req.ProviderA.ThreatLevels[0] = 1

	assert.Equal(t, []string{"US"}, clone.ProviderA.Countries)
	assert.Equal(t, []int{3}, clone.ProviderA.ThreatLevels)
	assert.Nil(t, clone.ProviderB.Severity)
}

func TestValidateTaskName(t *testing.T) {
	assert.NoError(t, ValidateTaskName("alpha"))

	err := ValidateTaskName("")
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrEmptyTaskName)
}
