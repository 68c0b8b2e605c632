package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bargainbay/internal/domain"
	"bargainbay/internal/services"
)

func reached(tl services.Timeline) []bool {
	out := make([]bool, 0, len(tl.Steps))
	for _, s := range tl.Steps {
		out = append(out, s.Reached)
	}
	return out
}

func TestProject(t *testing.T) {
	cases := []struct {
		status  domain.OrderStatus
		current int
		reached []bool
	}{
		{domain.StatusPlaced, 0, []bool{true, false, false, false}},
		{domain.StatusPacked, 1, []bool{true, true, false, false}},
		{domain.StatusShipped, 2, []bool{true, true, true, false}},
		{domain.StatusDelivered, 3, []bool{true, true, true, true}},
		{"RETURNED", 0, []bool{true, false, false, false}},
		{"", 0, []bool{true, false, false, false}},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			tl := services.Project(tc.status)
			assert.False(t, tl.Cancelled)
			assert.Equal(t, tc.current, tl.Current)
			assert.Equal(t, tc.reached, reached(tl))
			assert.Equal(t, domain.StatusPlaced, tl.Steps[0].Name)
		})
	}
}

func TestProjectCancelled(t *testing.T) {
	tl := services.Project(domain.StatusCancelled)
	assert.True(t, tl.Cancelled)
	assert.Equal(t, -1, tl.Current)
	assert.Empty(t, tl.Steps)

	assert.False(t, services.CanCancel(domain.StatusCancelled))
	assert.True(t, services.CanCancel(domain.StatusShipped))
}
