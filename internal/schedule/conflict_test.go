package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func TestHasConflict(t *testing.T) {
	loc := time.UTC
	shifts := []*domain.Shift{
		{ID: 1, EmployeeID: 1, StartTime: time.Date(2024, 6, 1, 9, 0, 0, 0, loc)},
		{ID: 2, EmployeeID: 2, StartTime: time.Date(2024, 6, 1, 9, 0, 0, 0, loc)},
	}

	// 同一员工同一天冲突，别的员工或别的日期不冲突
	require.True(t, HasConflict(shifts, 1, "2024-06-01", 0, loc))
	require.False(t, HasConflict(shifts, 1, "2024-06-02", 0, loc))
	require.False(t, HasConflict(shifts, 3, "2024-06-01", 0, loc))
}

func TestHasConflictExcludesSelf(t *testing.T) {
	loc := time.UTC
	shifts := []*domain.Shift{
		{ID: 1, EmployeeID: 1, StartTime: time.Date(2024, 6, 1, 9, 0, 0, 0, loc)},
	}

	// 编辑或移动自己时要把自己排除掉，否则永远冲突
	require.False(t, HasConflict(shifts, 1, "2024-06-01", 1, loc))
	require.True(t, HasConflict(shifts, 1, "2024-06-01", 2, loc))
}

func TestHasConflictAcrossTimezone(t *testing.T) {
	newYork := time.FixedZone("UTC-5", -5*60*60)

	// UTC 6 月 2 日凌晨的班次，在 UTC-5 下属于 6 月 1 日
	shifts := []*domain.Shift{
		{ID: 1, EmployeeID: 1, StartTime: time.Date(2024, 6, 2, 1, 0, 0, 0, time.UTC)},
	}

	require.True(t, HasConflict(shifts, 1, "2024-06-01", 0, newYork))
	require.False(t, HasConflict(shifts, 1, "2024-06-02", 0, newYork))
}
