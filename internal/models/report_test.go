package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsFor(t *testing.T) {
	reports := []Report{
		{Status: StatusPending},
		{Status: StatusPending},
		{Status: StatusInProgress},
		{Status: StatusResolved},
	}

	stats := StatsFor(reports)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, stats.Total, stats.Pending+stats.InProgress+stats.Resolved)
}

func TestStatsFor_Empty(t *testing.T) {
	stats := StatsFor(nil)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Pending)
	assert.Zero(t, stats.InProgress)
	assert.Zero(t, stats.Resolved)
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("graffiti"))
}

func TestUpdateReportInputEmpty(t *testing.T) {
	assert.True(t, UpdateReportInput{}.Empty())

	status := StatusResolved
	assert.False(t, UpdateReportInput{Status: &status}.Empty())
}
